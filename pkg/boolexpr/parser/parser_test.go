package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/grammar"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/token"
)

func lex(t *testing.T, g *grammar.Grammar, input string) []token.Token {
	t.Helper()
	tokens, err := g.Lexer().Lex(input, nil)
	require.NoError(t, err)
	return tokens
}

func parse(t *testing.T, input string) (ast.Expr, error) {
	t.Helper()
	g := grammar.Default()
	return New(g).Parse(lex(t, g, input))
}

func id(name string) ast.Expr { return ast.Identifier{Name: name} }

func num(text string) ast.Expr { return ast.NumLiteral{Text: text} }

func bin(tag ast.Tag, symbol string, l, r ast.Expr) ast.Expr {
	return &ast.Binary{Op: tag, Symbol: symbol, Left: l, Right: r}
}

func not(e ast.Expr) ast.Expr { return &ast.Unary{Op: ast.TagNot, Symbol: "!", Operand: e} }

func TestParse_Trees(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{
			name:     "single identifier",
			input:    "A",
			expected: id("A"),
		},
		{
			name:     "single literal",
			input:    "True",
			expected: ast.BoolLiteral{Text: "True", Truth: true},
		},
		{
			name:     "and binds tighter than or",
			input:    "A&B|C",
			expected: bin(ast.TagOr, "|", bin(ast.TagAnd, "&", id("A"), id("B")), id("C")),
		},
		{
			name:     "or on the left still waits for and",
			input:    "A|B&C",
			expected: bin(ast.TagOr, "|", id("A"), bin(ast.TagAnd, "&", id("B"), id("C"))),
		},
		{
			name:     "same tier folds left to right",
			input:    "A&B&C",
			expected: bin(ast.TagAnd, "&", bin(ast.TagAnd, "&", id("A"), id("B")), id("C")),
		},
		{
			name:     "parentheses override precedence",
			input:    "A&(B|C)",
			expected: bin(ast.TagAnd, "&", id("A"), bin(ast.TagOr, "|", id("B"), id("C"))),
		},
		{
			name:     "nested parentheses",
			input:    "((A))",
			expected: id("A"),
		},
		{
			name:     "sibling groups",
			input:    "(A|B)&(C|D)",
			expected: bin(ast.TagAnd, "&", bin(ast.TagOr, "|", id("A"), id("B")), bin(ast.TagOr, "|", id("C"), id("D"))),
		},
		{
			name:     "negation",
			input:    "!A",
			expected: not(id("A")),
		},
		{
			name:     "double negation",
			input:    "!!A",
			expected: not(not(id("A"))),
		},
		{
			name:     "negation binds tighter than and",
			input:    "!A&B",
			expected: bin(ast.TagAnd, "&", not(id("A")), id("B")),
		},
		{
			name:     "negated group",
			input:    "!(A&B)",
			expected: not(bin(ast.TagAnd, "&", id("A"), id("B"))),
		},
		{
			name:     "comparison",
			input:    "x>3",
			expected: bin(ast.TagGreater, ">", id("x"), num("3")),
		},
		{
			name:  "arithmetic precedence",
			input: "a+b*2>=10",
			expected: bin(ast.TagGreaterEqual, ">=",
				bin(ast.TagAdd, "+", id("a"), bin(ast.TagMultiply, "*", id("b"), num("2"))),
				num("10")),
		},
		{
			name:     "subtraction is left associative",
			input:    "a-b-c",
			expected: bin(ast.TagSubtract, "-", bin(ast.TagSubtract, "-", id("a"), id("b")), id("c")),
		},
		{
			name:  "comparisons joined by and",
			input: "x>1&x<5",
			expected: bin(ast.TagAnd, "&",
				bin(ast.TagGreater, ">", id("x"), num("1")),
				bin(ast.TagLess, "<", id("x"), num("5"))),
		},
		{
			name:     "equality of booleans",
			input:    "A==True",
			expected: bin(ast.TagEqual, "==", id("A"), ast.BoolLiteral{Text: "True", Truth: true}),
		},
		{
			name:     "equality after comparison",
			input:    "x<3!=B",
			expected: bin(ast.TagNotEqual, "!=", bin(ast.TagLess, "<", id("x"), num("3")), id("B")),
		},
		{
			name:  "xor between and and or",
			input: "A|B^C&D",
			expected: bin(ast.TagOr, "|", id("A"),
				bin(ast.TagXor, "^", id("B"), bin(ast.TagAnd, "&", id("C"), id("D")))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_InvalidExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		residual []string
	}{
		{"empty", "", []string{}},
		{"empty group", "()", []string{}},
		{"dangling operator", "A&", []string{"A", "&"}},
		{"missing operator", "(A)(B)", []string{"A", "B"}},
		{"operator only", "&", []string{"&"}},
		{"numeric operand for and", "1&A", []string{"1", "&", "A"}},
		{"negated comparison needs parentheses", "!x>3", []string{"(!x)", ">", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.ErrorIs(t, err, exprerrors.ErrInvalidExpression)

			var invalid *exprerrors.InvalidExpressionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.residual, invalid.Residual)
		})
	}
}

func TestParse_Parentheses(t *testing.T) {
	tests := []struct {
		input string
		kind  error
		pos   int
	}{
		{"(A&B", exprerrors.ErrMissingRightParenthesis, 0},
		{"A&B)", exprerrors.ErrMissingLeftParenthesis, 3},
		{"((A)", exprerrors.ErrMissingRightParenthesis, 0},
		{"(A))(", exprerrors.ErrMissingLeftParenthesis, 3},
		{"A & (B | (C)", exprerrors.ErrMissingRightParenthesis, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.ErrorIs(t, err, tt.kind)

			var syntaxErr *exprerrors.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.pos, syntaxErr.Pos)
		})
	}
}

func TestParse_ErrorInsideGroupPropagates(t *testing.T) {
	_, err := parse(t, "A&(B|)")
	assert.ErrorIs(t, err, exprerrors.ErrInvalidExpression)
}

func TestParse_MatchErrorWithoutOperator(t *testing.T) {
	g := grammar.MustNew("juxtaposition", []grammar.Tier{{
		{Tag: ast.TagAnd, Expects: []grammar.Requirement{
			grammar.Operand(ast.TypeBoolean), grammar.Operand(ast.TypeBoolean),
		}},
	}})

	_, err := New(g).Parse(lex(t, g, "(True)(False)"))
	require.ErrorIs(t, err, exprerrors.ErrMatch)

	var matchErr *exprerrors.MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, 0, matchErr.Tier)
	assert.True(t, exprerrors.IsConfiguration(err))
}

func TestParse_MatchErrorOnArityMismatch(t *testing.T) {
	g := grammar.MustNew("bad-arity", []grammar.Tier{{
		{Tag: ast.TagNot, Expects: []grammar.Requirement{
			grammar.Op("!"), grammar.Operand(ast.TypeBoolean), grammar.Operand(ast.TypeBoolean),
		}},
	}})

	_, err := New(g).Parse(lex(t, g, "!(True)(False)"))
	assert.ErrorIs(t, err, exprerrors.ErrMatch)
}

func TestParse_CustomPattern(t *testing.T) {
	g := grammar.MustNew("postfix", []grammar.Tier{
		{{Tag: ast.TagNot, Expects: []grammar.Requirement{grammar.Operand(ast.TypeBoolean), grammar.Op("?")}}},
		{grammar.Standard(ast.TagAnd, "&&")},
	})

	got, err := New(g).Parse(lex(t, g, "A?&&B"))
	require.NoError(t, err)
	expected := bin(ast.TagAnd, "&&", &ast.Unary{Op: ast.TagNot, Symbol: "?", Operand: id("A")}, id("B"))
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LeavesTableUntouched(t *testing.T) {
	g := grammar.Default()
	calls := 0
	table := symbols.TableFunc(func(string) (symbols.Value, error) {
		calls++
		return symbols.Bool(true), nil
	})

	tokens, err := g.Lexer().Lex("A&B|C>1", table)
	require.NoError(t, err)
	_, err = New(g).Parse(tokens)
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestParser_Grammar(t *testing.T) {
	g := grammar.Default()
	assert.Same(t, g, New(g).Grammar())
}
