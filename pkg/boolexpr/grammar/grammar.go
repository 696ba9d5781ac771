// Package grammar describes which expressions the parser recognizes.
//
// A Grammar is an ordered list of precedence tiers. Each tier is a set of
// Specs, and each Spec pairs an ast.Tag with the pattern of operator
// symbols and operand types that produces it. Earlier tiers bind tighter.
// Grammars are immutable once built and safe to share between engines.
package grammar

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/token"
)

// Requirement is one element of a pattern: either a specific operator
// symbol or an operand of a given type.
type Requirement struct {
	// Symbol is the operator symbol; empty for operand requirements.
	Symbol string
	// Type is the operand type; ignored for operator requirements.
	Type ast.Type
}

// Op returns a requirement for the operator symbol.
func Op(symbol string) Requirement {
	return Requirement{Symbol: symbol}
}

// Operand returns a requirement for an operand of type t.
func Operand(t ast.Type) Requirement {
	return Requirement{Type: t}
}

// IsOperator reports whether r requires an operator symbol.
func (r Requirement) IsOperator() bool { return r.Symbol != "" }

func (r Requirement) String() string {
	if r.IsOperator() {
		return fmt.Sprintf("%q", r.Symbol)
	}
	return r.Type.String()
}

// Spec is one expression variant a tier may fold.
type Spec struct {
	Tag     ast.Tag
	Expects []Requirement
}

// Standard returns the conventional pattern for tag: prefix form for
// unary tags, infix form for binary tags.
func Standard(tag ast.Tag, symbol string) Spec {
	operand := Operand(tag.Operand())
	if tag.Arity() == 1 {
		return Spec{Tag: tag, Expects: []Requirement{Op(symbol), operand}}
	}
	return Spec{Tag: tag, Expects: []Requirement{operand, Op(symbol), operand}}
}

// Returns is the type the variant yields.
func (s Spec) Returns() ast.Type { return s.Tag.Returns() }

// Symbol returns the first operator symbol in the pattern, or "".
func (s Spec) Symbol() string {
	for _, r := range s.Expects {
		if r.IsOperator() {
			return r.Symbol
		}
	}
	return ""
}

func (s Spec) pattern() string {
	parts := make([]string, len(s.Expects))
	for i, r := range s.Expects {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Tier is a set of variants folded together.
type Tier []Spec

// Grammar is a validated, ordered list of precedence tiers plus the
// spellings of the boolean literals.
type Grammar struct {
	name       string
	tiers      []Tier
	trueWords  []string
	falseWords []string
	symbols    []string
	lexer      *token.Lexer
}

// Option configures a Grammar.
type Option func(*Grammar)

// WithLiterals sets the boolean literal spellings.
// Default: True and False.
func WithLiterals(trueWords, falseWords []string) Option {
	return func(g *Grammar) {
		g.trueWords = append([]string(nil), trueWords...)
		g.falseWords = append([]string(nil), falseWords...)
	}
}

// New validates and builds a grammar.
//
// The tiers are copied; later changes by the caller have no effect.
// Patterns are not required to contain an operator: such a pattern is
// accepted here and reported as a match error when it first matches.
func New(name string, tiers []Tier, opts ...Option) (*Grammar, error) {
	g := &Grammar{
		name:       name,
		trueWords:  []string{"True"},
		falseWords: []string{"False"},
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, tier := range tiers {
		copied := make(Tier, len(tier))
		for i, spec := range tier {
			copied[i] = Spec{Tag: spec.Tag, Expects: append([]Requirement(nil), spec.Expects...)}
		}
		g.tiers = append(g.tiers, copied)
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, tier := range g.tiers {
		for _, spec := range tier {
			for _, r := range spec.Expects {
				if r.IsOperator() && !seen[r.Symbol] {
					seen[r.Symbol] = true
					g.symbols = append(g.symbols, r.Symbol)
				}
			}
		}
	}
	sort.Strings(g.symbols)

	g.lexer = token.NewLexer(g.symbols, g.trueWords, g.falseWords)
	return g, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, tiers []Tier, opts ...Option) *Grammar {
	g, err := New(name, tiers, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grammar) validate() error {
	fail := func(format string, args ...any) error {
		return &exprerrors.GrammarError{Grammar: g.name, Reason: fmt.Sprintf(format, args...)}
	}

	if len(g.tiers) == 0 {
		return fail("no tiers")
	}
	for i, tier := range g.tiers {
		if len(tier) == 0 {
			return fail("tier %d is empty", i)
		}
		patterns := make(map[string]ast.Tag)
		for _, spec := range tier {
			if !spec.Tag.Valid() {
				return fail("tier %d: unknown tag %s", i, spec.Tag)
			}
			if len(spec.Expects) == 0 {
				return fail("tier %d: %s has an empty pattern", i, spec.Tag)
			}
			for _, r := range spec.Expects {
				if r.IsOperator() {
					if err := checkSymbol(r.Symbol); err != nil {
						return fail("tier %d: %s: %v", i, spec.Tag, err)
					}
				}
			}
			key := spec.pattern()
			if other, dup := patterns[key]; dup {
				return fail("tier %d: %s and %s share pattern %s", i, other, spec.Tag, key)
			}
			patterns[key] = spec.Tag
		}
	}

	if len(g.trueWords) == 0 || len(g.falseWords) == 0 {
		return fail("boolean literals need at least one spelling each")
	}
	words := make(map[string]bool)
	for _, w := range append(append([]string(nil), g.trueWords...), g.falseWords...) {
		if err := checkWord(w); err != nil {
			return fail("literal %q: %v", w, err)
		}
		if words[w] {
			return fail("literal %q is declared twice", w)
		}
		words[w] = true
	}
	return nil
}

func checkSymbol(s string) error {
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return fmt.Errorf("symbol %q contains whitespace", s)
		case r == '(' || r == ')':
			return fmt.Errorf("symbol %q contains a parenthesis", s)
		case token.IsWordChar(r):
			return fmt.Errorf("symbol %q contains identifier characters", s)
		}
	}
	return nil
}

func checkWord(w string) error {
	if w == "" {
		return fmt.Errorf("empty spelling")
	}
	for _, r := range w {
		if !token.IsWordChar(r) {
			return fmt.Errorf("contains %q", r)
		}
	}
	if token.IsNumeric(w) {
		return fmt.Errorf("is numeric")
	}
	return nil
}

// Name returns the grammar name.
func (g *Grammar) Name() string { return g.name }

// Tiers returns a copy of the precedence tiers, tightest first.
func (g *Grammar) Tiers() []Tier {
	out := make([]Tier, len(g.tiers))
	for i, tier := range g.tiers {
		out[i] = append(Tier(nil), tier...)
	}
	return out
}

// Symbols returns every registered operator symbol, sorted.
func (g *Grammar) Symbols() []string {
	return append([]string(nil), g.symbols...)
}

// Literals returns the true and false spellings.
func (g *Grammar) Literals() (trueWords, falseWords []string) {
	return append([]string(nil), g.trueWords...), append([]string(nil), g.falseWords...)
}

// Lexer returns the lexer for this grammar's vocabulary.
func (g *Grammar) Lexer() *token.Lexer { return g.lexer }

// Ambiguity is a pair of symbols that cannot be written back to back
// because the lexer reads their concatenation differently.
type Ambiguity struct {
	First   string
	Second  string
	LexedAs string
}

func (a Ambiguity) String() string {
	return fmt.Sprintf("%q followed by %q lexes as %q", a.First, a.Second, a.LexedAs)
}

// Ambiguities reports symbol pairs whose concatenation the lexer splits
// differently, e.g. "!" then "==" is read as "!=" then "=".
// Such pairs must be separated by parentheses or an operand.
func (g *Grammar) Ambiguities() []Ambiguity {
	var out []Ambiguity
	for _, a := range g.symbols {
		for _, b := range g.symbols {
			if got := g.lexer.MatchSymbol(a + b); got != a {
				out = append(out, Ambiguity{First: a, Second: b, LexedAs: got})
			}
		}
	}
	return out
}
