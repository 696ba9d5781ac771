// Package token turns expression text into a sequence of tokens.
package token

import (
	"fmt"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Kind is the token variant.
type Kind int

const (
	// Parenthesis is "(" or ")".
	Parenthesis Kind = iota + 1
	// Operator is a registered operator symbol.
	Operator
	// BooleanLiteral is a boolean literal spelling such as True.
	BooleanLiteral
	// NumericLiteral is a run of digits with at most one decimal point.
	NumericLiteral
	// Identifier is any other word, resolved through the symbol table.
	Identifier
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Parenthesis:
		return "parenthesis"
	case Operator:
		return "operator"
	case BooleanLiteral:
		return "boolean"
	case NumericLiteral:
		return "number"
	case Identifier:
		return "identifier"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one lexical unit.
type Token struct {
	Kind Kind
	// Text is the exact source text of the token.
	Text string
	// Pos is the byte offset of the token in the original input.
	Pos int
	// Truth is the value of a BooleanLiteral.
	Truth bool
	// Table is attached to Identifier tokens for later lookup.
	Table symbols.Table
}

// IsOpen reports whether t is "(".
func (t Token) IsOpen() bool { return t.Kind == Parenthesis && t.Text == "(" }

// IsClose reports whether t is ")".
func (t Token) IsClose() bool { return t.Kind == Parenthesis && t.Text == ")" }

// Leaf returns the expression node for a literal or identifier token.
// It returns false for parentheses and operators.
func (t Token) Leaf() (ast.Expr, bool) {
	switch t.Kind {
	case BooleanLiteral:
		return ast.BoolLiteral{Text: t.Text, Truth: t.Truth}, true
	case NumericLiteral:
		return ast.NumLiteral{Text: t.Text}, true
	case Identifier:
		return ast.Identifier{Name: t.Text, Table: t.Table}, true
	default:
		return nil, false
	}
}

func (t Token) String() string { return t.Text }
