package adt

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Definition is the compiled form of schema S. It is immutable and safe for
// concurrent use.
type Definition[S any] struct {
	id    uuid.UUID
	name  string
	cases S
	tags  []Tag
	index map[Tag]int
}

// Cases builds the definition of schema S. Every exported field of S must be
// an adt.Constructor[S, D]; its tag is the field's `adt` struct tag or, when
// absent, the field name passed through the tag namer. Fields tagged `adt:"-"`
// and unexported fields are skipped.
func Cases[S any](opts ...Option) (*Definition[S], error) {
	schema := reflect.TypeFor[S]()
	if schema.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, schema)
	}

	o := newOptions(schema.Name(), opts)
	d := &Definition[S]{
		id:    uuid.New(),
		name:  o.name,
		index: make(map[Tag]int),
	}

	cases := reflect.New(schema).Elem()
	var errs []error
	for i := 0; i < schema.NumField(); i++ {
		field := schema.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, explicit := field.Tag.Lookup("adt")
		if tag == "-" {
			continue
		}
		if !explicit {
			tag = string(o.tagNamer(field.Name))
		}

		b, ok := cases.Field(i).Addr().Interface().(binder)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: field %s.%s is %s, not a constructor",
				ErrInvalidSchema, schema.Name(), field.Name, field.Type))
			continue
		}
		if tag == "" {
			errs = append(errs, fmt.Errorf("%w: field %s.%s has an empty tag", ErrInvalidSchema, schema.Name(), field.Name))
			continue
		}
		if _, dup := d.index[Tag(tag)]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate tag %q on field %s.%s", ErrInvalidSchema, tag, schema.Name(), field.Name))
			continue
		}
		if err := b.bind(Tag(tag), schema); err != nil {
			errs = append(errs, err)
			continue
		}

		d.index[Tag(tag)] = len(d.tags)
		d.tags = append(d.tags, Tag(tag))
	}

	if len(errs) == 0 && len(d.tags) == 0 {
		errs = append(errs, fmt.Errorf("%w: %s declares no variants", ErrInvalidSchema, schema))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	d.cases = cases.Interface().(S)
	return d, nil
}

// MustCases is Cases that panics on an invalid schema.
func MustCases[S any](opts ...Option) *Definition[S] {
	d, err := Cases[S](opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Cases returns the bound constructors.
func (d *Definition[S]) Cases() S {
	return d.cases
}

// Tags returns the declared tags in field order.
func (d *Definition[S]) Tags() []Tag {
	return append([]Tag(nil), d.tags...)
}

func (d *Definition[S]) Has(tag Tag) bool {
	_, ok := d.index[tag]
	return ok
}

func (d *Definition[S]) Name() string {
	return d.name
}

func (d *Definition[S]) ID() uuid.UUID {
	return d.id
}

func (d *Definition[S]) String() string {
	return fmt.Sprintf("%s(%s)", d.name, joinTags(d.tags))
}

// IsCase reports whether v carries one of tags. No tags never match, and
// neither does the empty tag, so the zero Variant is never a case.
func (d *Definition[S]) IsCase(v Variant[S], tags ...Tag) bool {
	for _, t := range tags {
		if t != "" && v.tag == t {
			return true
		}
	}
	return false
}

// Validate returns an *UnresolvedVariantError when v's tag is not declared
// by d, as happens for the zero Variant.
func (d *Definition[S]) Validate(v Variant[S]) error {
	if d.Has(v.tag) {
		return nil
	}
	return fmt.Errorf("%s %s: %w", d.name, d.id, &UnresolvedVariantError{Tag: v.tag, Handled: d.Tags()})
}
