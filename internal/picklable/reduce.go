package picklable

// Reduction is the recipe a serialization protocol records instead of an
// object's fields: call Reconstruct with Args to get an equivalent value.
type Reduction[T any] struct {
	Reconstruct func(Source) (T, error)
	Args        Bytes
}

// Apply runs the recipe.
func (r Reduction[T]) Apply() (T, error) {
	if r.Reconstruct == nil {
		var zero T
		return zero, ErrUnsupportedSource
	}
	return r.Reconstruct(r.Args)
}
