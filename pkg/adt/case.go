package adt

import (
	"fmt"
	"reflect"
)

// Factory binds a data shape to a tag.
type Factory[S, D any] func(tag Tag) Constructor[S, D]

// Case returns the factory for variants of schema S carrying D.
func Case[S, D any]() Factory[S, D] {
	return func(tag Tag) Constructor[S, D] {
		return Constructor[S, D]{tag: tag}
	}
}

// Constructor builds variants of schema S carrying D. Declare one as a field
// of the schema struct; Cases binds it to the field's tag.
type Constructor[S, D any] struct {
	tag Tag
}

// Tag returns the bound tag, empty until the constructor is bound.
func (c Constructor[S, D]) Tag() Tag {
	return c.tag
}

func (c Constructor[S, D]) New(data D) Variant[S] {
	return Variant[S]{tag: c.tag, data: data}
}

// Is reports whether v was built for this constructor's tag.
func (c Constructor[S, D]) Is(v Variant[S]) bool {
	return c.tag != "" && v.tag == c.tag
}

// Data narrows v to the payload of this variant.
func (c Constructor[S, D]) Data(v Variant[S]) (D, bool) {
	var zero D
	if !c.Is(v) {
		return zero, false
	}
	if v.data == nil {
		// a nil interface payload
		return zero, true
	}
	d, ok := v.data.(D)
	return d, ok
}

// MustData is Data that panics on mismatch: with an *UnresolvedVariantError
// for another tag, with a *PayloadMismatchError for another data shape.
func (c Constructor[S, D]) MustData(v Variant[S]) D {
	if !c.Is(v) {
		panic(&UnresolvedVariantError{Tag: v.tag, Handled: []Tag{c.tag}})
	}
	d, ok := c.Data(v)
	if !ok {
		panic(&PayloadMismatchError{Tag: v.tag, Data: v.data})
	}
	return d
}

type binder interface {
	bind(tag Tag, schema reflect.Type) error
}

func (c *Constructor[S, D]) bind(tag Tag, schema reflect.Type) error {
	if own := reflect.TypeFor[S](); own != schema {
		return fmt.Errorf("%w: constructor for %q belongs to %s, not %s", ErrInvalidSchema, tag, own, schema)
	}
	*c = Case[S, D]()(tag)
	return nil
}
