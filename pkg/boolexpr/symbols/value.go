// Package symbols provides the symbol-table collaborator of the expression
// engine: the values identifiers resolve to and the tables that hold them.
package symbols

import (
	"fmt"
	"strconv"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// Kind is the semantic type of a value.
type Kind int

const (
	// Boolean values are true or false.
	Boolean Kind = iota + 1
	// Numeric values are float64.
	Numeric
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Numeric:
		return "numeric"
	default:
		return "invalid"
	}
}

// Value is a boolean or numeric value. The zero Value is invalid.
type Value struct {
	kind Kind
	b    bool
	n    float64
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: Boolean, b: b}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: Numeric, n: n}
}

// Kind returns the semantic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a boolean or numeric value.
func (v Value) IsValid() bool { return v.kind == Boolean || v.kind == Numeric }

// Bool returns the boolean held by v. It is false for numeric values.
func (v Value) Bool() bool { return v.b }

// Number returns the number held by v. It is 0 for boolean values.
func (v Value) Number() float64 { return v.n }

// Truthy returns whether v is truthy.
// Booleans return their value, numbers are false only when zero.
func (v Value) Truthy() bool {
	switch v.kind {
	case Boolean:
		return v.b
	case Numeric:
		return v.n != 0
	default:
		return false
	}
}

// Equal reports whether v and o have the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == Boolean {
		return v.b == o.b
	}
	return v.n == o.n
}

// String renders v the way literals are written in expressions.
func (v Value) String() string {
	switch v.kind {
	case Boolean:
		if v.b {
			return "True"
		}
		return "False"
	case Numeric:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}

// FromAny converts a Go value into a Value.
// It accepts bool, every integer and float type, and Value itself.
// Any other type fails with ErrUnsupportedValue.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case Value:
		if !val.IsValid() {
			return Value{}, fmt.Errorf("%w: zero Value", exprerrors.ErrUnsupportedValue)
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case float32:
		return Number(float64(val)), nil
	case int:
		return Number(float64(val)), nil
	case int8:
		return Number(float64(val)), nil
	case int16:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint:
		return Number(float64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", exprerrors.ErrUnsupportedValue, v)
	}
}
