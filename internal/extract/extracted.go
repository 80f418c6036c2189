package extract

// Extracted holds a field pulled out of the DOM. A missing node yields
// Missing instead of a sentinel string, so downstream logic can tell
// "unextractable" apart from any real value.
type Extracted[T any] struct {
	value   T
	present bool
}

// Present wraps a successfully extracted value.
func Present[T any](v T) Extracted[T] {
	return Extracted[T]{value: v, present: true}
}

// Missing marks a field that could not be extracted.
func Missing[T any]() Extracted[T] {
	return Extracted[T]{}
}

// Get returns the value and whether it was extracted.
func (e Extracted[T]) Get() (T, bool) {
	return e.value, e.present
}

// IsPresent reports whether the field was extracted.
func (e Extracted[T]) IsPresent() bool {
	return e.present
}

// Or returns the value, or fallback when the field is missing.
func (e Extracted[T]) Or(fallback T) T {
	if e.present {
		return e.value
	}
	return fallback
}

// Map applies fn to a present value and leaves Missing untouched.
func Map[T, U any](e Extracted[T], fn func(T) U) Extracted[U] {
	if !e.present {
		return Missing[U]()
	}
	return Present(fn(e.value))
}
