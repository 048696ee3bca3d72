package lattice

// Option is a value that is either present with a payload or absent.
// It follows the database/sql Null* convention: exported Value and Valid
// fields so the codec can populate options through reflection.
//
// An absent option is distinct from an explicit null (a nil pointer field)
// and from the element's zero value.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present option.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the payload and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}
