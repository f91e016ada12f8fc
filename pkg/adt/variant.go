package adt

import "fmt"

// Tag names one variant of a schema.
type Tag string

// Unit is the data shape of variants that carry nothing.
type Unit = struct{}

// Variant is a tagged instance of schema S. The zero Variant has an empty
// tag and belongs to no definition.
type Variant[S any] struct {
	tag  Tag
	data any
}

func (v Variant[S]) Tag() Tag {
	return v.tag
}

func (v Variant[S]) Data() any {
	return v.data
}

func (v Variant[S]) IsZero() bool {
	return v.tag == ""
}

func (v Variant[S]) String() string {
	if v.IsZero() {
		return "<zero variant>"
	}
	if _, ok := v.data.(Unit); ok || IsNil(v.data) {
		return string(v.tag)
	}
	return fmt.Sprintf("%s%+v", v.tag, v.data)
}
