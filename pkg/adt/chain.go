package adt

// Chain rewrites a variant through a sequence of handler tables. The first
// error stops the chain.
type Chain[S any] struct {
	v   Variant[S]
	err error
}

func Start[S any](v Variant[S]) Chain[S] {
	return Chain[S]{v: v}
}

func (c Chain[S]) Result() (Variant[S], error) {
	return c.v, c.err
}

// Then replaces the variant with the result of the handler for its tag.
// The variant passes through when no handler names its tag.
func (c Chain[S]) Then(handlers ...Handler[S, Variant[S]]) Chain[S] {
	if c.err != nil {
		return c
	}
	index, err := indexHandlers(handlers)
	if err != nil {
		return Chain[S]{v: c.v, err: err}
	}
	if h, ok := index[c.v.tag]; ok {
		next, err := h.call(c.v)
		if err != nil {
			return Chain[S]{v: c.v, err: err}
		}
		return Chain[S]{v: next}
	}
	return c
}

// Ensure runs the side effect for the current tag without changing the
// variant.
func (c Chain[S]) Ensure(handlers ...Handler[S, Unit]) Chain[S] {
	if c.err != nil {
		return c
	}
	index, err := indexHandlers(handlers)
	if err != nil {
		return Chain[S]{v: c.v, err: err}
	}
	if h, ok := index[c.v.tag]; ok {
		if _, err := h.call(c.v); err != nil {
			return Chain[S]{v: c.v, err: err}
		}
	}
	return c
}

// Finally collapses the chain with Match.
func Finally[S, Out any](c Chain[S], handlers ...Handler[S, Out]) (Out, error) {
	if c.err != nil {
		var zero Out
		return zero, c.err
	}
	return Match(c.v, handlers...)
}
