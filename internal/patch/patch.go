// Package patch models request payloads where every member is independently
// present or absent, so partial updates can tell "not sent" from "sent as null".
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Field is a JSON object member that remembers whether it appeared in the payload.
type Field[T any] struct {
	Set   bool // key was present
	Null  bool // key was present with a JSON null
	Value T
}

// Value returns a present, non-null field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a field that was sent as an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the object.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null, f.Value = true, zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool { return f.Set && !f.Null }

// ErrNotNumeric is returned when a Numeric does not hold a usable number.
var ErrNotNumeric = errors.New("patch: value is not numeric")

// Numeric keeps the raw JSON of a number-ish member. Both 10.5 and "10.5" are
// accepted; conversion is deferred so the caller decides how to report a bad value.
type Numeric struct {
	raw []byte
}

// NumberOf builds a Numeric from a float.
func NumberOf(f float64) Numeric {
	return Numeric{raw: strconv.AppendFloat(nil, f, 'g', -1, 64)}
}

// TextOf builds a Numeric as if the client had sent a JSON string.
func TextOf(s string) Numeric {
	b, _ := json.Marshal(s)
	return Numeric{raw: b}
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// text returns the numeric literal and whether it was quoted.
func (n Numeric) text() (string, bool, error) {
	s := strings.TrimSpace(string(n.raw))
	if !strings.HasPrefix(s, `"`) {
		return s, false, nil
	}
	var str string
	if err := json.Unmarshal([]byte(s), &str); err != nil {
		return "", true, ErrNotNumeric
	}
	return strings.TrimSpace(str), true, nil
}

// Float parses the value as a finite float64.
func (n Numeric) Float() (float64, error) {
	s, _, err := n.text()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotNumeric
	}
	return f, nil
}

// Int coerces the value to an int. JSON numbers are truncated toward zero;
// strings must hold a plain integer.
func (n Numeric) Int() (int, error) {
	s, quoted, err := n.text()
	if err != nil {
		return 0, err
	}
	if quoted {
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, ErrNotNumeric
		}
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotNumeric
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, ErrNotNumeric
	}
	return int(f), nil
}
