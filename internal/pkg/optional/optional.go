// Package optional provides a tri-state JSON field for partial updates,
// distinguishing a key that is absent from one that is explicitly null.
// Absent means "leave the stored value untouched"; null means "clear it".
package optional

import (
	"bytes"
	"encoding/json"
)

// Field holds an optional JSON value. The zero value is "absent".
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Some builds a present, non-null field.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Null builds a present field carrying an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the key appeared in the JSON document at all.
func (f Field[T]) Present() bool {
	return f.present
}

// Null reports whether the key appeared with an explicit null value.
func (f Field[T]) Null() bool {
	return f.null
}

// Value returns the decoded value and whether one was provided (present and
// not null).
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is exactly what makes the absent/present distinction work.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(data, []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON renders null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
