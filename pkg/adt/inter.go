package adt

// Tagged is implemented by values that carry a variant tag
type Tagged interface {
	// Tag returns the variant name
	Tag() Tag
}

// DataProvider defines a tagged value that exposes its payload
type DataProvider interface {
	Tagged
	// Data returns the payload given to the constructor
	Data() any
}

var (
	_ DataProvider = Variant[struct{}]{}
	_ Tagged       = Constructor[struct{}, Unit]{}
	_ Tagged       = Handler[struct{}, int]{}
)
