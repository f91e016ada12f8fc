package adt

import (
	"errors"
	"fmt"
)

// Handler maps the variant of one tag to Out.
type Handler[S, Out any] struct {
	tag Tag
	fn  func(Variant[S]) (Out, bool)
}

// On builds the handler for c's variant. f receives the narrowed payload.
func On[S, D, Out any](c Constructor[S, D], f func(D) Out) Handler[S, Out] {
	return Handler[S, Out]{
		tag: c.tag,
		fn: func(v Variant[S]) (Out, bool) {
			d, ok := c.Data(v)
			if !ok {
				var zero Out
				return zero, false
			}
			return f(d), true
		},
	}
}

func (h Handler[S, Out]) Tag() Tag {
	return h.tag
}

func indexHandlers[S, Out any](handlers []Handler[S, Out]) (map[Tag]Handler[S, Out], error) {
	index := make(map[Tag]Handler[S, Out], len(handlers))
	var errs []error
	for i, h := range handlers {
		if h.tag == "" || h.fn == nil {
			errs = append(errs, fmt.Errorf("%w: handler #%d", ErrUnboundConstructor, i))
			continue
		}
		if _, dup := index[h.tag]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateHandler, h.tag))
			continue
		}
		index[h.tag] = h
	}
	return index, errors.Join(errs...)
}

func handledTags[S, Out any](handlers []Handler[S, Out]) []Tag {
	tags := make([]Tag, 0, len(handlers))
	for _, h := range handlers {
		tags = append(tags, h.tag)
	}
	return tags
}

// Match calls the handler whose tag equals v's tag and returns its result.
// It fails with an *UnresolvedVariantError when no handler names the tag and
// with ErrDuplicateHandler when two handlers name the same tag.
func Match[S, Out any](v Variant[S], handlers ...Handler[S, Out]) (Out, error) {
	var zero Out

	index, err := indexHandlers(handlers)
	if err != nil {
		return zero, err
	}

	h, ok := index[v.tag]
	if !ok {
		return zero, &UnresolvedVariantError{Tag: v.tag, Handled: handledTags(handlers)}
	}
	return h.call(v)
}

// call runs h, failing with a *PayloadMismatchError when v carries h's tag
// with another data shape.
func (h Handler[S, Out]) call(v Variant[S]) (Out, error) {
	out, ok := h.fn(v)
	if !ok {
		return out, &PayloadMismatchError{Tag: v.tag, Data: v.data}
	}
	return out, nil
}

// Matcher is a handler table proven at construction to cover a set of tags
// exactly.
type Matcher[S, Out any] struct {
	covered  Subset[S]
	handlers map[Tag]Handler[S, Out]
}

// NewMatcher requires one handler per tag declared by d.
func NewMatcher[S, Out any](d *Definition[S], handlers ...Handler[S, Out]) (*Matcher[S, Out], error) {
	return NewMatcherOn(d.subsetWhere(func(Tag) bool { return true }), handlers...)
}

// NewMatcherOn requires one handler per tag of covered and none outside it.
func NewMatcherOn[S, Out any](covered Subset[S], handlers ...Handler[S, Out]) (*Matcher[S, Out], error) {
	index, err := indexHandlers(handlers)
	errs := Errors(err)

	var missing, extra []Tag
	for _, t := range covered.tags {
		if _, ok := index[t]; !ok {
			missing = append(missing, t)
		}
	}
	for _, h := range handlers {
		if h.tag != "" && !covered.Has(h.tag) {
			extra = append(extra, h.tag)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: missing handlers for %s", ErrNotExhaustive, joinTags(missing)))
	}
	if len(extra) > 0 {
		errs = append(errs, fmt.Errorf("%w: handlers for %s are outside %s", ErrNotExhaustive, joinTags(extra), covered))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Matcher[S, Out]{covered: covered, handlers: index}, nil
}

// Match dispatches v. A variant outside the covered set, or one whose payload
// does not fit its tag, is unreachable and panics with an *UnreachableError.
func (m *Matcher[S, Out]) Match(v Variant[S]) Out {
	h, ok := m.handlers[v.tag]
	if !ok {
		return Unreachable[Out](v)
	}
	out, ok := h.fn(v)
	if !ok {
		return Unreachable[Out](v)
	}
	return out
}

func (m *Matcher[S, Out]) Covers() Subset[S] {
	return m.covered
}
