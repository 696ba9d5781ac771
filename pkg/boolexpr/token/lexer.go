package token

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// Lexer scans expression text using a fixed operator vocabulary.
// A Lexer is immutable and safe for concurrent use.
type Lexer struct {
	// longest first, so the first prefix hit is the maximal munch
	symbols []string
	starts  map[rune]bool
	truth   map[string]bool
}

// NewLexer creates a lexer for the given operator symbols and boolean
// literal spellings.
func NewLexer(operatorSymbols, trueWords, falseWords []string) *Lexer {
	l := &Lexer{
		starts: make(map[rune]bool),
		truth:  make(map[string]bool),
	}

	seen := make(map[string]bool)
	for _, s := range operatorSymbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		l.symbols = append(l.symbols, s)
		r, _ := utf8.DecodeRuneInString(s)
		l.starts[r] = true
	}
	sort.SliceStable(l.symbols, func(i, j int) bool {
		return len(l.symbols[i]) > len(l.symbols[j])
	})

	for _, w := range trueWords {
		l.truth[w] = true
	}
	for _, w := range falseWords {
		l.truth[w] = false
	}
	return l
}

// MatchSymbol returns the longest registered symbol that prefixes s, or
// "" if none does.
func (l *Lexer) MatchSymbol(s string) string {
	for _, sym := range l.symbols {
		if strings.HasPrefix(s, sym) {
			return sym
		}
	}
	return ""
}

// Lex scans input into tokens. Whitespace is removed before scanning, so
// it never separates tokens. The table is attached to identifier tokens
// and is not consulted.
func (l *Lexer) Lex(input string, table symbols.Table) ([]Token, error) {
	s, offsets := stripSpace(input)

	var tokens []Token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		pos := offsets[i]

		switch {
		case r == '(' || r == ')':
			tokens = append(tokens, Token{Kind: Parenthesis, Text: string(r), Pos: pos})
			i += size

		case l.starts[r]:
			sym := l.MatchSymbol(s[i:])
			if sym == "" {
				return nil, &exprerrors.SyntaxError{Kind: exprerrors.ErrInvalidCharacter, Pos: pos, Char: r}
			}
			tokens = append(tokens, Token{Kind: Operator, Text: sym, Pos: pos})
			i += len(sym)

		case IsWordChar(r):
			start := i
			for i < len(s) && IsWordChar(rune(s[i])) {
				i++
			}
			tokens = append(tokens, l.classify(s[start:i], pos, table))

		default:
			return nil, &exprerrors.SyntaxError{Kind: exprerrors.ErrInvalidCharacter, Pos: pos, Char: r}
		}
	}
	return tokens, nil
}

// classify applies literal priority: boolean, then numeric, then identifier.
func (l *Lexer) classify(text string, pos int, table symbols.Table) Token {
	if truth, ok := l.truth[text]; ok {
		return Token{Kind: BooleanLiteral, Text: text, Pos: pos, Truth: truth}
	}
	if IsNumeric(text) {
		return Token{Kind: NumericLiteral, Text: text, Pos: pos}
	}
	return Token{Kind: Identifier, Text: text, Pos: pos, Table: table}
}

// IsWordChar reports whether r may appear in a literal or identifier.
func IsWordChar(r rune) bool {
	return r == '_' || r == '.' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// IsNumeric reports whether text is digits with at most one decimal point.
func IsNumeric(text string) bool {
	digits, dots := 0, 0
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// stripSpace removes whitespace and maps each byte of the result back to
// its offset in the original input.
func stripSpace(input string) (string, []int) {
	var b strings.Builder
	b.Grow(len(input))
	offsets := make([]int, 0, len(input))
	for i, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		n, _ := b.WriteRune(r)
		for k := 0; k < n; k++ {
			offsets = append(offsets, i)
		}
	}
	return b.String(), offsets
}
