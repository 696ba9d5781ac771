// Package parser builds expression trees from token sequences.
//
// Parsing happens in two steps. Resolve finds the outermost parenthesized
// groups and parses each interior recursively, splicing the resulting
// expression in place of the group. Reduce then folds the flattened
// sequence one precedence tier at a time: it repeatedly finds the leftmost
// span matching any pattern of the current tier, replaces it with the
// built node, and rescans from the start until the tier no longer matches.
package parser

import (
	"fmt"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/token"
)

// Parser folds token sequences according to a grammar.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	grammar *grammar.Grammar
	tiers   []*trieNode
}

// New creates a parser for g, building one pattern trie per tier.
func New(g *grammar.Grammar) *Parser {
	p := &Parser{grammar: g}
	for _, tier := range g.Tiers() {
		p.tiers = append(p.tiers, buildTrie(tier))
	}
	return p
}

// Grammar returns the grammar the parser was built from.
func (p *Parser) Grammar() *grammar.Grammar { return p.grammar }

// Parse resolves groups in tokens and reduces the result to one expression.
func (p *Parser) Parse(tokens []token.Token) (ast.Expr, error) {
	items, err := p.Resolve(tokens)
	if err != nil {
		return nil, err
	}
	return p.Reduce(items)
}

// Reduce folds a flattened sequence through every tier in order.
// The result must be exactly one operand.
func (p *Parser) Reduce(items []Item) (ast.Expr, error) {
	for ti, root := range p.tiers {
		for {
			start, spec, n, ok := root.find(items)
			if !ok {
				break
			}
			expr, err := fold(ti, spec, items[start:start+n])
			if err != nil {
				return nil, err
			}
			items = splice(items, start, n, ExprItem(expr))
		}
	}

	if len(items) == 1 {
		if expr, ok := items[0].Operand(); ok {
			return expr, nil
		}
	}
	residual := make([]string, len(items))
	for i, it := range items {
		residual[i] = it.String()
	}
	return nil, &exprerrors.InvalidExpressionError{Residual: residual}
}

// fold builds the node for a matched span. The operator consumed in the
// span names the node; every other element is an operand.
func fold(tier int, spec *grammar.Spec, span []Item) (ast.Expr, error) {
	var (
		symbol   string
		operands []ast.Expr
	)
	for _, it := range span {
		if it.IsOperator() {
			symbol = it.Token.Text
			continue
		}
		operand, _ := it.Operand()
		operands = append(operands, operand)
	}

	if symbol == "" {
		return nil, &exprerrors.MatchError{
			Tier:   tier,
			Reason: fmt.Sprintf("pattern for %s completed without an operator", spec.Tag),
		}
	}
	expr, err := ast.Build(spec.Tag, symbol, operands)
	if err != nil {
		return nil, &exprerrors.MatchError{Tier: tier, Reason: err.Error()}
	}
	return expr, nil
}

func splice(items []Item, start, n int, it Item) []Item {
	out := make([]Item, 0, len(items)-n+1)
	out = append(out, items[:start]...)
	out = append(out, it)
	return append(out, items[start+n:]...)
}
