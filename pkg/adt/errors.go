package adt

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema      = errors.New("adt: invalid schema")
	ErrUnresolvedVariant  = errors.New("adt: unresolved variant")
	ErrDuplicateHandler   = errors.New("adt: duplicate handler")
	ErrUnboundConstructor = errors.New("adt: constructor is not bound")
	ErrNotExhaustive      = errors.New("adt: handlers are not exhaustive")
	ErrUnreachable        = errors.New("adt: unreachable case")
	ErrPayloadMismatch    = errors.New("adt: payload does not match tag")
)

// UnresolvedVariantError reports a variant whose tag has no handler.
type UnresolvedVariantError struct {
	Tag     Tag
	Handled []Tag
}

func (e *UnresolvedVariantError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: zero variant (handled: %s)", ErrUnresolvedVariant, joinTags(e.Handled))
	}
	return fmt.Sprintf("%s %q (handled: %s)", ErrUnresolvedVariant, e.Tag, joinTags(e.Handled))
}

func (e *UnresolvedVariantError) Unwrap() error {
	return ErrUnresolvedVariant
}

// PayloadMismatchError reports a variant whose tag has a handler built for
// another data shape, as made by a second constructor for the same tag.
type PayloadMismatchError struct {
	Tag  Tag
	Data any
}

func (e *PayloadMismatchError) Error() string {
	return fmt.Sprintf("%s: %q carries %T", ErrPayloadMismatch, e.Tag, e.Data)
}

func (e *PayloadMismatchError) Unwrap() error {
	return ErrPayloadMismatch
}

// UnreachableError carries the value that reached a branch every variant
// was supposed to exclude.
type UnreachableError struct {
	Value any
}

func (e *UnreachableError) Error() string {
	if !IsNil(e.Value) {
		if t, ok := e.Value.(Tagged); ok {
			return fmt.Sprintf("%s %q: %v", ErrUnreachable, t.Tag(), e.Value)
		}
	}
	return fmt.Sprintf("%s: %v", ErrUnreachable, e.Value)
}

func (e *UnreachableError) Unwrap() error {
	return ErrUnreachable
}

// AllCasesCovered marks the default branch of a switch over every tag.
// It always panics with an *UnreachableError.
//
//	switch v.Tag() {
//	case "loading":
//	case "loaded":
//	default:
//		adt.AllCasesCovered(v)
//	}
func AllCasesCovered(v any) {
	panic(&UnreachableError{Value: v})
}

// Unreachable is AllCasesCovered for expression positions.
func Unreachable[Out any](v any) Out {
	panic(&UnreachableError{Value: v})
}
