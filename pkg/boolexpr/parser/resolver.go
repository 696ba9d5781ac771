package parser

import (
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/token"
)

// Span is the index range of a parenthesized group: Open is the index of
// "(" and Close the index of its matching ")".
type Span struct {
	Open  int
	Close int
}

// Interior returns the tokens strictly between the parentheses.
func (s Span) Interior(tokens []token.Token) []token.Token {
	return tokens[s.Open+1 : s.Close]
}

// Groups returns the outermost balanced groups of tokens, left to right.
// Groups nested inside them are not reported.
func Groups(tokens []token.Token) ([]Span, error) {
	var (
		spans []Span
		stack []int
	)
	for i, t := range tokens {
		switch {
		case t.IsOpen():
			stack = append(stack, i)
		case t.IsClose():
			if len(stack) == 0 {
				return nil, &exprerrors.SyntaxError{Kind: exprerrors.ErrMissingLeftParenthesis, Pos: t.Pos}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				spans = append(spans, Span{Open: open, Close: i})
			}
		}
	}
	if len(stack) != 0 {
		return nil, &exprerrors.SyntaxError{Kind: exprerrors.ErrMissingRightParenthesis, Pos: tokens[stack[0]].Pos}
	}
	return spans, nil
}

// Resolve replaces every outermost group with the expression parsed from
// its interior. Tokens outside groups are copied through unchanged and
// empty groups are dropped.
func (p *Parser) Resolve(tokens []token.Token) ([]Item, error) {
	spans, err := Groups(tokens)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(tokens))
	next := 0
	for _, span := range spans {
		for _, t := range tokens[next:span.Open] {
			items = append(items, TokenItem(t))
		}
		if interior := span.Interior(tokens); len(interior) > 0 {
			expr, err := p.Parse(interior)
			if err != nil {
				return nil, err
			}
			items = append(items, ExprItem(expr))
		}
		next = span.Close + 1
	}
	for _, t := range tokens[next:] {
		items = append(items, TokenItem(t))
	}
	return items, nil
}
