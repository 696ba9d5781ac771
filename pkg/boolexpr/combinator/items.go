package combinator

import (
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/parser"
)

// Operator matches an operator item spelled symbol.
func Operator(symbol string) Combinator[parser.Item] {
	return Is(func(it parser.Item) bool {
		return it.IsOperator() && it.Token.Text == symbol
	})
}

// Operand matches an operand whose type satisfies t. Identifiers carry no
// type until evaluation and satisfy every requirement.
func Operand(t ast.Type) Combinator[parser.Item] {
	return Is(func(it parser.Item) bool {
		expr, ok := it.Operand()
		if !ok {
			return false
		}
		got := expr.Returns()
		return t == ast.TypeAny || got == ast.TypeAny || got == t
	})
}

// FromSpec builds a matcher for the pattern of one grammar spec.
func FromSpec(spec grammar.Spec) Combinator[parser.Item] {
	steps := make([]Combinator[parser.Item], 0, len(spec.Expects))
	for _, r := range spec.Expects {
		if r.IsOperator() {
			steps = append(steps, Operator(r.Symbol))
		} else {
			steps = append(steps, Operand(r.Type))
		}
	}
	return Sequence(steps...)
}

// FromTier builds a matcher accepting any pattern of tier, tried in
// declaration order.
func FromTier(tier grammar.Tier) Combinator[parser.Item] {
	alternatives := make([]Combinator[parser.Item], 0, len(tier))
	for _, spec := range tier {
		alternatives = append(alternatives, FromSpec(spec))
	}
	return Either(alternatives...)
}
