package adt

// Subset is a set of tags declared by one definition. A false Contains
// narrows a variant to the Complement.
type Subset[S any] struct {
	def  *Definition[S]
	tags []Tag
}

// Subset returns the declared tags among tags, in declaration order.
// Tags the definition does not declare are dropped.
func (d *Definition[S]) Subset(tags ...Tag) Subset[S] {
	want := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	return d.subsetWhere(func(t Tag) bool {
		_, ok := want[t]
		return ok
	})
}

func (d *Definition[S]) subsetWhere(keep func(Tag) bool) Subset[S] {
	s := Subset[S]{def: d}
	for _, t := range d.tags {
		if keep(t) {
			s.tags = append(s.tags, t)
		}
	}
	return s
}

func (s Subset[S]) Has(tag Tag) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Contains reports whether v carries one of the subset's tags.
func (s Subset[S]) Contains(v Variant[S]) bool {
	return s.Has(v.tag)
}

// Complement returns the declared tags outside s.
func (s Subset[S]) Complement() Subset[S] {
	if s.def == nil {
		return s
	}
	return s.def.subsetWhere(func(t Tag) bool { return !s.Has(t) })
}

func (s Subset[S]) Tags() []Tag {
	return append([]Tag(nil), s.tags...)
}

func (s Subset[S]) Len() int {
	return len(s.tags)
}

func (s Subset[S]) String() string {
	return "{" + joinTags(s.tags) + "}"
}
