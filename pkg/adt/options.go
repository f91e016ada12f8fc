package adt

// Option configures Cases.
type Option func(*options)

type options struct {
	name     string
	tagNamer func(field string) Tag
}

// WithName sets the name used in diagnostics. Defaults to the schema
// type's name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithTagNamer derives tags from field names that carry no `adt` struct tag.
// Defaults to LowerFirst.
func WithTagNamer(namer func(field string) Tag) Option {
	return func(o *options) {
		if namer != nil {
			o.tagNamer = namer
		}
	}
}

func newOptions(name string, opts []Option) options {
	o := options{name: name, tagNamer: LowerFirst}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
