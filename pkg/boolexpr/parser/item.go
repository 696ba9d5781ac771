package parser

import (
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/token"
)

// Item is one element of the working sequence: a raw token or an
// expression that has already been built.
type Item struct {
	Token token.Token
	Expr  ast.Expr
}

// TokenItem wraps a token.
func TokenItem(t token.Token) Item { return Item{Token: t} }

// ExprItem wraps an expression.
func ExprItem(e ast.Expr) Item { return Item{Expr: e} }

// IsOperator reports whether the item is an operator token.
func (it Item) IsOperator() bool {
	return it.Expr == nil && it.Token.Kind == token.Operator
}

// Operand returns the item as an expression when it can be an operand:
// a built expression, a literal, or an identifier.
func (it Item) Operand() (ast.Expr, bool) {
	if it.Expr != nil {
		return it.Expr, true
	}
	return it.Token.Leaf()
}

func (it Item) String() string {
	if it.Expr != nil {
		return it.Expr.String()
	}
	return it.Token.Text
}

// typeKeys lists the trie keys an operand of type t may follow, in the
// order they are tried.
func typeKeys(t ast.Type) []ast.Type {
	switch t {
	case ast.TypeBoolean:
		return []ast.Type{ast.TypeBoolean, ast.TypeAny}
	case ast.TypeNumeric:
		return []ast.Type{ast.TypeNumeric, ast.TypeAny}
	default:
		// Identifiers are untyped until evaluation.
		return []ast.Type{ast.TypeBoolean, ast.TypeNumeric, ast.TypeAny}
	}
}
