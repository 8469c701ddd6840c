package model

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present and, if so, whether it was null.
//
//	absent        -> Set=false
//	"field": null -> Set=true, Null=true
//	"field": v    -> Set=true, Value=v
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, which is what
// distinguishes absent from null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil for null, a pointer to the value otherwise. Only meaningful when Set.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func (o Optional[T]) isNull() bool {
	return o.Set && o.Null
}
