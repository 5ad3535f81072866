package objects

// Value is an optional result. It separates "no value" (a missing field, an
// empty queue, a blocking pop that timed out) from both valid zero values
// and operation failures, which are reported as errors.
type Value[T any] struct {
	val     T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{val: v, present: true}
}

// None is the absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the contained value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.val, v.present
}

// Present reports whether a value is contained.
func (v Value[T]) Present() bool {
	return v.present
}

// Or returns the contained value, or def when absent.
func (v Value[T]) Or(def T) T {
	if v.present {
		return v.val
	}
	return def
}
