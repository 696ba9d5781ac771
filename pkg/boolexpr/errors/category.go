// Package errors defines the error taxonomy of the expression engine and
// classifies errors so callers can choose user-facing messaging.
//
// Scanning and parsing failures surface as SyntaxError,
// InvalidExpressionError and MatchError. Evaluation failures surface as
// LookupError, TypeError and the evaluation sentinels. Every typed error
// unwraps to a sentinel, so errors.Is works across the taxonomy.
package errors

import (
	"errors"
)

// Category represents who is responsible for an error.
type Category int

const (
	// CategoryUnknown indicates the error is not part of the taxonomy.
	CategoryUnknown Category = iota

	// CategorySyntax indicates malformed expression text.
	// Examples: invalid characters, unbalanced parentheses.
	CategorySyntax

	// CategoryConfiguration indicates a grammar defect.
	// Examples: a pattern without an operator, duplicate patterns.
	CategoryConfiguration

	// CategoryEvaluation indicates the text parsed but could not be evaluated.
	// Examples: missing symbols, type mismatches, division by zero.
	CategoryEvaluation
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryConfiguration:
		return "configuration"
	case CategoryEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

// Categorize determines which category an error belongs to.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.Is(err, ErrInvalidCharacter),
		errors.Is(err, ErrMissingLeftParenthesis),
		errors.Is(err, ErrMissingRightParenthesis),
		errors.Is(err, ErrInvalidExpression):
		return CategorySyntax
	case errors.Is(err, ErrMatch),
		errors.Is(err, ErrInvalidGrammar),
		errors.Is(err, ErrUnknownGrammar):
		return CategoryConfiguration
	case errors.Is(err, ErrUndefinedSymbol),
		errors.Is(err, ErrUnsupportedValue),
		errors.Is(err, ErrTypeMismatch),
		errors.Is(err, ErrDivisionByZero),
		errors.Is(err, ErrNonBooleanResult):
		return CategoryEvaluation
	}

	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return CategoryEvaluation
	}
	return CategoryUnknown
}

// IsSyntax reports whether err was caused by malformed expression text.
func IsSyntax(err error) bool {
	return Categorize(err) == CategorySyntax
}

// IsConfiguration reports whether err was caused by a grammar defect.
func IsConfiguration(err error) bool {
	return Categorize(err) == CategoryConfiguration
}

// IsEvaluation reports whether err happened after a successful parse.
func IsEvaluation(err error) bool {
	return Categorize(err) == CategoryEvaluation
}
