// Package ast defines the expression tree built by the parser and the
// evaluator that walks it.
//
// The node set is closed: boolean and numeric literals, identifiers, and
// unary or binary operator nodes identified by a Tag. Evaluation is
// bottom-up. Each operator node evaluates its operands left to right, then
// checks their kinds and applies its operation. Literal text is converted
// and identifiers are looked up only at that point, never while parsing.
package ast

import (
	"errors"
	"fmt"
	"strconv"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Expr is a node of the expression tree.
type Expr interface {
	// Returns is the semantic type the node yields.
	Returns() Type
	// Eval evaluates the node and its operands.
	Eval() (symbols.Value, error)
	// String renders the node fully parenthesized.
	String() string
}

// BoolLiteral is a boolean literal such as True.
type BoolLiteral struct {
	Text  string
	Truth bool
}

// Returns implements Expr.
func (BoolLiteral) Returns() Type { return TypeBoolean }

// Eval implements Expr.
func (l BoolLiteral) Eval() (symbols.Value, error) { return symbols.Bool(l.Truth), nil }

func (l BoolLiteral) String() string { return l.Text }

// NumLiteral is a numeric literal such as 3 or 0.5.
type NumLiteral struct {
	Text string
}

// Returns implements Expr.
func (NumLiteral) Returns() Type { return TypeNumeric }

// Eval implements Expr. A literal beyond the float64 range evaluates to
// an infinity of the same sign.
func (l NumLiteral) Eval() (symbols.Value, error) {
	n, err := strconv.ParseFloat(l.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return symbols.Value{}, fmt.Errorf("numeric literal %q: %w", l.Text, err)
	}
	return symbols.Number(n), nil
}

func (l NumLiteral) String() string { return l.Text }

// Identifier is a name resolved against a symbol table at evaluation time.
type Identifier struct {
	Name  string
	Table symbols.Table
}

// Returns implements Expr.
func (Identifier) Returns() Type { return TypeAny }

// Eval implements Expr. It performs exactly one lookup per call.
func (id Identifier) Eval() (symbols.Value, error) {
	if id.Table == nil {
		return symbols.Value{}, &exprerrors.LookupError{Name: id.Name, Err: exprerrors.ErrUndefinedSymbol}
	}
	v, err := id.Table.Lookup(id.Name)
	if err != nil {
		return symbols.Value{}, &exprerrors.LookupError{Name: id.Name, Err: err}
	}
	if !v.IsValid() {
		return symbols.Value{}, &exprerrors.LookupError{Name: id.Name, Err: exprerrors.ErrUnsupportedValue}
	}
	return v, nil
}

func (id Identifier) String() string { return id.Name }

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Op      Tag
	Symbol  string
	Operand Expr
}

// Returns implements Expr.
func (u *Unary) Returns() Type { return u.Op.Returns() }

// Eval implements Expr.
func (u *Unary) Eval() (symbols.Value, error) {
	v, err := u.Operand.Eval()
	if err != nil {
		return symbols.Value{}, err
	}
	if err := u.check(v); err != nil {
		return symbols.Value{}, err
	}
	return variants[u.Op].unary(v)
}

func (u *Unary) check(v symbols.Value) error {
	want := u.Op.Operand()
	if !want.Accepts(v.Kind()) {
		return &exprerrors.TypeError{Op: u.Symbol, Want: want.String(), Got: v.Kind().String()}
	}
	return nil
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Symbol, u.Operand)
}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Op     Tag
	Symbol string
	Left   Expr
	Right  Expr
}

// Returns implements Expr.
func (b *Binary) Returns() Type { return b.Op.Returns() }

// Eval implements Expr. Both operands are evaluated before the operator
// is applied.
func (b *Binary) Eval() (symbols.Value, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return symbols.Value{}, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return symbols.Value{}, err
	}
	if err := b.check(l, r); err != nil {
		return symbols.Value{}, err
	}
	return variants[b.Op].binary(l, r)
}

func (b *Binary) check(l, r symbols.Value) error {
	want := b.Op.Operand()
	for _, v := range []symbols.Value{l, r} {
		if !want.Accepts(v.Kind()) {
			return &exprerrors.TypeError{Op: b.Symbol, Want: want.String(), Got: v.Kind().String()}
		}
	}
	// Operators over any type still need both sides to agree.
	if want == TypeAny && l.Kind() != r.Kind() {
		return &exprerrors.TypeError{Op: b.Symbol, Want: l.Kind().String(), Got: r.Kind().String()}
	}
	return nil
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Symbol, b.Right)
}

// Build constructs the operator node for tag from operands collected in
// encounter order. It fails when the operand count does not match the
// tag's arity.
func Build(tag Tag, symbol string, operands []Expr) (Expr, error) {
	if !tag.Valid() {
		return nil, fmt.Errorf("unknown tag %s", tag)
	}
	if len(operands) != tag.Arity() {
		return nil, fmt.Errorf("%s takes %d operands, got %d", tag, tag.Arity(), len(operands))
	}
	if tag.Arity() == 1 {
		return &Unary{Op: tag, Symbol: symbol, Operand: operands[0]}, nil
	}
	return &Binary{Op: tag, Symbol: symbol, Left: operands[0], Right: operands[1]}, nil
}

func logical(fn func(l, r bool) bool) binaryFunc {
	return func(l, r symbols.Value) (symbols.Value, error) {
		return symbols.Bool(fn(l.Bool(), r.Bool())), nil
	}
}

func compare(fn func(l, r float64) bool) binaryFunc {
	return func(l, r symbols.Value) (symbols.Value, error) {
		return symbols.Bool(fn(l.Number(), r.Number())), nil
	}
}

func arithmetic(fn func(l, r float64) float64) binaryFunc {
	return func(l, r symbols.Value) (symbols.Value, error) {
		return symbols.Number(fn(l.Number(), r.Number())), nil
	}
}

func divide(l, r symbols.Value) (symbols.Value, error) {
	if r.Number() == 0 {
		return symbols.Value{}, exprerrors.ErrDivisionByZero
	}
	return symbols.Number(l.Number() / r.Number()), nil
}
