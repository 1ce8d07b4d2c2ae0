package domain

import "encoding/json"

// Sentinel strings used instead of absent fields.
const (
	Unknown  = "Unknown"
	NotFound = "Not found"
	None     = "None"
)

// Value is a numeric field that may not have been observed.
// The zero value is the "unknown" sentinel.
type Value[T int64 | float64] struct {
	V     T
	Known bool
}

// Known wraps an observed value.
func Known[T int64 | float64](v T) Value[T] {
	return Value[T]{V: v, Known: true}
}

// Or returns the value, or def when unknown.
func (v Value[T]) Or(def T) T {
	if !v.Known {
		return def
	}
	return v.V
}

// MarshalJSON renders unknown values as the "Unknown" sentinel.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Known {
		return json.Marshal(Unknown)
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON accepts either a number or the "Unknown" sentinel.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value[T]{}
		return nil
	}
	var n T
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Known(n)
	return nil
}
