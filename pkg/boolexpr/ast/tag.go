package ast

import (
	"fmt"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Type is the semantic type an expression yields, known at parse time.
// Identifiers are TypeAny until they are resolved during evaluation.
type Type int

const (
	// TypeAny matches any value. Identifiers report it.
	TypeAny Type = iota
	// TypeBoolean is a boolean result.
	TypeBoolean
	// TypeNumeric is a numeric result.
	TypeNumeric
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeNumeric:
		return "numeric"
	default:
		return "any"
	}
}

// Accepts reports whether a value of kind k satisfies t.
func (t Type) Accepts(k symbols.Kind) bool {
	switch t {
	case TypeBoolean:
		return k == symbols.Boolean
	case TypeNumeric:
		return k == symbols.Numeric
	default:
		return k == symbols.Boolean || k == symbols.Numeric
	}
}

// ParseType parses a type name as written in grammar files.
func ParseType(s string) (Type, error) {
	switch s {
	case "boolean", "bool":
		return TypeBoolean, nil
	case "numeric", "number":
		return TypeNumeric, nil
	case "any":
		return TypeAny, nil
	default:
		return TypeAny, fmt.Errorf("unknown type %q", s)
	}
}

// Tag identifies an operator expression variant.
type Tag int

// Operator variants. The set is closed; grammars choose which ones to
// enable, with which symbols and in which precedence tiers.
const (
	TagNot Tag = iota + 1
	TagAnd
	TagOr
	TagXor
	TagEqual
	TagNotEqual
	TagLess
	TagLessEqual
	TagGreater
	TagGreaterEqual
	TagAdd
	TagSubtract
	TagMultiply
	TagDivide
)

// Tags lists every operator variant in declaration order.
var Tags = []Tag{
	TagNot, TagAnd, TagOr, TagXor,
	TagEqual, TagNotEqual,
	TagLess, TagLessEqual, TagGreater, TagGreaterEqual,
	TagAdd, TagSubtract, TagMultiply, TagDivide,
}

type unaryFunc func(v symbols.Value) (symbols.Value, error)

type binaryFunc func(l, r symbols.Value) (symbols.Value, error)

// variant describes the shape and semantics of one tag.
type variant struct {
	name    string
	arity   int
	operand Type
	returns Type
	unary   unaryFunc
	binary  binaryFunc
}

var variants = map[Tag]variant{
	TagNot: {name: "not", arity: 1, operand: TypeBoolean, returns: TypeBoolean,
		unary: func(v symbols.Value) (symbols.Value, error) { return symbols.Bool(!v.Bool()), nil }},
	TagAnd: {name: "and", arity: 2, operand: TypeBoolean, returns: TypeBoolean,
		binary: logical(func(l, r bool) bool { return l && r })},
	TagOr: {name: "or", arity: 2, operand: TypeBoolean, returns: TypeBoolean,
		binary: logical(func(l, r bool) bool { return l || r })},
	TagXor: {name: "xor", arity: 2, operand: TypeBoolean, returns: TypeBoolean,
		binary: logical(func(l, r bool) bool { return l != r })},
	TagEqual: {name: "equal", arity: 2, operand: TypeAny, returns: TypeBoolean,
		binary: func(l, r symbols.Value) (symbols.Value, error) { return symbols.Bool(l.Equal(r)), nil }},
	TagNotEqual: {name: "not_equal", arity: 2, operand: TypeAny, returns: TypeBoolean,
		binary: func(l, r symbols.Value) (symbols.Value, error) { return symbols.Bool(!l.Equal(r)), nil }},
	TagLess: {name: "less", arity: 2, operand: TypeNumeric, returns: TypeBoolean,
		binary: compare(func(l, r float64) bool { return l < r })},
	TagLessEqual: {name: "less_equal", arity: 2, operand: TypeNumeric, returns: TypeBoolean,
		binary: compare(func(l, r float64) bool { return l <= r })},
	TagGreater: {name: "greater", arity: 2, operand: TypeNumeric, returns: TypeBoolean,
		binary: compare(func(l, r float64) bool { return l > r })},
	TagGreaterEqual: {name: "greater_equal", arity: 2, operand: TypeNumeric, returns: TypeBoolean,
		binary: compare(func(l, r float64) bool { return l >= r })},
	TagAdd: {name: "add", arity: 2, operand: TypeNumeric, returns: TypeNumeric,
		binary: arithmetic(func(l, r float64) float64 { return l + r })},
	TagSubtract: {name: "subtract", arity: 2, operand: TypeNumeric, returns: TypeNumeric,
		binary: arithmetic(func(l, r float64) float64 { return l - r })},
	TagMultiply: {name: "multiply", arity: 2, operand: TypeNumeric, returns: TypeNumeric,
		binary: arithmetic(func(l, r float64) float64 { return l * r })},
	TagDivide: {name: "divide", arity: 2, operand: TypeNumeric, returns: TypeNumeric,
		binary: divide},
}

// String returns the tag name as used in grammar files.
func (t Tag) String() string {
	if v, ok := variants[t]; ok {
		return v.name
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Valid reports whether t is a known operator variant.
func (t Tag) Valid() bool {
	_, ok := variants[t]
	return ok
}

// Arity returns the number of operands the variant takes.
func (t Tag) Arity() int { return variants[t].arity }

// Operand returns the type every operand must have.
func (t Tag) Operand() Type { return variants[t].operand }

// Returns returns the type the variant yields.
func (t Tag) Returns() Type { return variants[t].returns }

// ParseTag looks up a tag by name.
func ParseTag(name string) (Tag, error) {
	for tag, v := range variants {
		if v.name == name {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("unknown expression tag %q", name)
}
