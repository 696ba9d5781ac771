package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

func TestDefault(t *testing.T) {
	g := Default()
	assert.Equal(t, DefaultName, g.Name())

	tiers := g.Tiers()
	require.Len(t, tiers, 8)
	assert.Equal(t, ast.TagNot, tiers[0][0].Tag)
	assert.Equal(t, ast.TagOr, tiers[7][0].Tag)

	assert.Equal(t,
		[]string{"!", "!=", "&", "*", "+", "-", "/", "<", "<=", "==", ">", ">=", "^", "|"},
		g.Symbols())

	trueWords, falseWords := g.Literals()
	assert.Equal(t, []string{"True"}, trueWords)
	assert.Equal(t, []string{"False"}, falseWords)
}

func TestDefault_AndBindsTighterThanOr(t *testing.T) {
	and, or := -1, -1
	for i, tier := range Default().Tiers() {
		for _, spec := range tier {
			switch spec.Tag {
			case ast.TagAnd:
				and = i
			case ast.TagOr:
				or = i
			}
		}
	}
	assert.Less(t, and, or)
}

func TestStandard(t *testing.T) {
	not := Standard(ast.TagNot, "!")
	assert.Equal(t, []Requirement{Op("!"), Operand(ast.TypeBoolean)}, not.Expects)
	assert.Equal(t, "!", not.Symbol())
	assert.Equal(t, ast.TypeBoolean, not.Returns())

	add := Standard(ast.TagAdd, "+")
	assert.Equal(t, []Requirement{Operand(ast.TypeNumeric), Op("+"), Operand(ast.TypeNumeric)}, add.Expects)
	assert.Equal(t, ast.TypeNumeric, add.Returns())

	eq := Standard(ast.TagEqual, "==")
	assert.Equal(t, []Requirement{Operand(ast.TypeAny), Op("=="), Operand(ast.TypeAny)}, eq.Expects)

	assert.Equal(t, "", Spec{Tag: ast.TagAnd, Expects: []Requirement{Operand(ast.TypeBoolean)}}.Symbol())
}

func TestNew_Validation(t *testing.T) {
	boolean := Operand(ast.TypeBoolean)

	tests := []struct {
		name  string
		tiers []Tier
		opts  []Option
	}{
		{"no tiers", nil, nil},
		{"empty tier", []Tier{{}}, nil},
		{"unknown tag", []Tier{{{Tag: ast.Tag(42), Expects: []Requirement{Op("?")}}}}, nil},
		{"empty pattern", []Tier{{{Tag: ast.TagAnd}}}, nil},
		{"symbol with letters", []Tier{{Standard(ast.TagAnd, "and")}}, nil},
		{"symbol with space", []Tier{{Standard(ast.TagAnd, "& &")}}, nil},
		{"symbol with paren", []Tier{{Standard(ast.TagAnd, "&(")}}, nil},
		{"duplicate pattern in tier", []Tier{{
			Standard(ast.TagAnd, "&"),
			{Tag: ast.TagOr, Expects: []Requirement{boolean, Op("&"), boolean}},
		}}, nil},
		{"empty literal", []Tier{{Standard(ast.TagAnd, "&")}}, []Option{WithLiterals([]string{""}, []string{"F"})}},
		{"numeric literal spelling", []Tier{{Standard(ast.TagAnd, "&")}}, []Option{WithLiterals([]string{"1"}, []string{"0"})}},
		{"literal with symbol", []Tier{{Standard(ast.TagAnd, "&")}}, []Option{WithLiterals([]string{"T!"}, []string{"F"})}},
		{"literal declared twice", []Tier{{Standard(ast.TagAnd, "&")}}, []Option{WithLiterals([]string{"T"}, []string{"T"})}},
		{"missing false literal", []Tier{{Standard(ast.TagAnd, "&")}}, []Option{WithLiterals([]string{"T"}, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", tt.tiers, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, exprerrors.ErrInvalidGrammar)

			var grammarErr *exprerrors.GrammarError
			require.ErrorAs(t, err, &grammarErr)
			assert.Equal(t, "bad", grammarErr.Grammar)
		})
	}
}

func TestNew_AcceptsPatternWithoutOperator(t *testing.T) {
	g, err := New("odd", []Tier{{
		{Tag: ast.TagAnd, Expects: []Requirement{Operand(ast.TypeBoolean), Operand(ast.TypeBoolean)}},
	}})
	require.NoError(t, err)
	assert.Empty(t, g.Symbols())
}

func TestNew_SameSymbolAcrossTiers(t *testing.T) {
	g, err := New("dup", []Tier{
		{Standard(ast.TagSubtract, "-")},
		{Standard(ast.TagNotEqual, "-")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, g.Symbols())
}

func TestNew_CopiesTiers(t *testing.T) {
	tiers := []Tier{{Standard(ast.TagAnd, "&")}}
	g, err := New("copy", tiers)
	require.NoError(t, err)

	tiers[0][0].Expects[1] = Op("|")
	assert.Equal(t, "&", g.Tiers()[0][0].Symbol())

	got := g.Tiers()
	got[0][0] = Standard(ast.TagOr, "|")
	assert.Equal(t, ast.TagAnd, g.Tiers()[0][0].Tag)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("bad", nil) })
}

func TestWithLiterals(t *testing.T) {
	g, err := New("words", []Tier{{Standard(ast.TagAnd, "&")}},
		WithLiterals([]string{"True", "yes"}, []string{"False", "no"}))
	require.NoError(t, err)

	tokens, err := g.Lexer().Lex("yes&no", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.True(t, tokens[0].Truth)
	assert.False(t, tokens[2].Truth)
}

func TestAmbiguities(t *testing.T) {
	got := Default().Ambiguities()
	assert.Equal(t, []Ambiguity{
		{First: "!", Second: "==", LexedAs: "!="},
		{First: "<", Second: "==", LexedAs: "<="},
		{First: ">", Second: "==", LexedAs: ">="},
	}, got)
	assert.Equal(t, `"!" followed by "==" lexes as "!="`, got[0].String())

	g := MustNew("plain", []Tier{{Standard(ast.TagAnd, "&")}, {Standard(ast.TagOr, "|")}})
	assert.Empty(t, g.Ambiguities())
}
