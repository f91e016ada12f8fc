// Package adt provides algebraic sum types: a value chosen from a fixed set
// of named variants, each carrying its own data shape.
//
// A schema is a struct whose exported fields are constructors. Cases binds
// every field to its variant tag and returns an immutable Definition.
//
// Key operations:
// - Case/Factory: bind a data shape to a tag, yielding a Constructor
// - Cases/MustCases: build a Definition from a schema struct
// - Constructor.New: create a tagged Variant
// - Match/Matcher: dispatch on the tag with one handler per variant
// - IsCase/Subset/Constructor.Data: narrow a Variant to some of its variants
// - AllCasesCovered/Unreachable: mark branches that can never run
// - Start/Chain: rewrite a Variant step by step
//
// The runtime cannot prove a handler list total. Code generated by
// cmd/adtgen offers positional Match functions and Visitor interfaces that
// stop compiling when a variant is added.
package adt
