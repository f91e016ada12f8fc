package adt

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	switch v := reflect.ValueOf(i); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Errors flattens errors built with errors.Join, at any depth, into the
// leaf errors they carry. Schema and handler problems are reported this way.
func Errors(err error) []error {
	var leaves []error
	var walk func(error)
	walk = func(err error) {
		if IsNil(err) {
			return
		}
		joined, ok := err.(interface{ Unwrap() []error })
		if !ok {
			leaves = append(leaves, err)
			return
		}
		for _, e := range joined.Unwrap() {
			walk(e)
		}
	}
	walk(err)
	if leaves == nil {
		return []error{}
	}
	return leaves
}

// LowerFirst is the default tag namer: the field name with its first rune
// lower-cased.
func LowerFirst(field string) Tag {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return Tag(field)
	}
	return Tag(string(unicode.ToLower(r)) + field[size:])
}

func joinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}
