package grammar

import (
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
)

// DefaultName is the name of the built-in grammar.
const DefaultName = "default"

var defaultSymbols = map[ast.Tag]string{
	ast.TagNot:          "!",
	ast.TagAnd:          "&",
	ast.TagOr:           "|",
	ast.TagXor:          "^",
	ast.TagEqual:        "==",
	ast.TagNotEqual:     "!=",
	ast.TagLess:         "<",
	ast.TagLessEqual:    "<=",
	ast.TagGreater:      ">",
	ast.TagGreaterEqual: ">=",
	ast.TagAdd:          "+",
	ast.TagSubtract:     "-",
	ast.TagMultiply:     "*",
	ast.TagDivide:       "/",
}

// DefaultSymbol returns the built-in symbol for tag.
func DefaultSymbol(tag ast.Tag) string {
	return defaultSymbols[tag]
}

// DefaultTiers returns the built-in precedence tiers, tightest first:
//
//	!
//	*  /
//	+  -
//	<  <=  >  >=
//	==  !=
//	&
//	^
//	|
func DefaultTiers() []Tier {
	order := [][]ast.Tag{
		{ast.TagNot},
		{ast.TagMultiply, ast.TagDivide},
		{ast.TagAdd, ast.TagSubtract},
		{ast.TagLess, ast.TagLessEqual, ast.TagGreater, ast.TagGreaterEqual},
		{ast.TagEqual, ast.TagNotEqual},
		{ast.TagAnd},
		{ast.TagXor},
		{ast.TagOr},
	}

	tiers := make([]Tier, len(order))
	for i, tags := range order {
		for _, tag := range tags {
			tiers[i] = append(tiers[i], Standard(tag, DefaultSymbol(tag)))
		}
	}
	return tiers
}

var defaultGrammar = MustNew(DefaultName, DefaultTiers())

// Default returns the built-in grammar.
func Default() *Grammar {
	return defaultGrammar
}
