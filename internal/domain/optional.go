package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Optional tracks whether a field was present in an input and whether it was explicitly null
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional holding an explicit null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// ParseNumber casts text to a number field the way a Number schema type does:
// surrounding spaces are ignored and blank text is a null.
func ParseNumber(s string) (Optional[float64], error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Null[float64](), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Optional[float64]{}, fmt.Errorf("cannot cast %q to number", s)
	}
	return Some(f), nil
}

// UnmarshalJSON marks the field as present. A JSON null clears the value.
// Number fields also take numeric strings and booleans; string fields take
// numbers and booleans as their text.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var zero T
	o.Value = zero
	o.Set = true
	o.Null = false

	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}

	switch v := any(&o.Value).(type) {
	case *float64:
		return o.castNumber(v, data)
	case *string:
		return castString(v, data)
	}
	return json.Unmarshal(data, &o.Value)
}

func (o *Optional[T]) castNumber(v *float64, data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*v = 1
	case bytes.Equal(data, []byte("false")):
		*v = 0
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*v = n.Value
		o.Null = n.Null
	default:
		return json.Unmarshal(data, v)
	}
	return nil
}

func castString(v *string, data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = string(data)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("cannot cast %s to string", data)
		}
		*v = strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return json.Unmarshal(data, v)
	}
	return nil
}

// Ptr returns a pointer to the value, or nil when the field is absent or null
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
