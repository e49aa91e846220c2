package localize

// Optional is a resolved value that may be absent. Absent is distinct from an empty value.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// Absent returns the absent marker for T.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value was resolved.
func (o Optional[T]) Present() bool {
	return o.present
}

// OrElse returns the value or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

func fromPtr(p *string) Optional[string] {
	if p == nil {
		return Absent[string]()
	}
	return Some(*p)
}

func fromSlice(s []string) Optional[[]string] {
	if s == nil {
		return Absent[[]string]()
	}
	out := make([]string, len(s))
	copy(out, s)
	return Some(out)
}
