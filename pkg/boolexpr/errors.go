package boolexpr

import (
	"errors"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// Syntax errors. The text could not be scanned or parsed.
var (
	ErrInvalidCharacter        = exprerrors.ErrInvalidCharacter
	ErrMissingLeftParenthesis  = exprerrors.ErrMissingLeftParenthesis
	ErrMissingRightParenthesis = exprerrors.ErrMissingRightParenthesis
	ErrInvalidExpression       = exprerrors.ErrInvalidExpression
)

// Configuration errors. The grammar is defective or unavailable.
var (
	ErrMatch          = exprerrors.ErrMatch
	ErrInvalidGrammar = exprerrors.ErrInvalidGrammar
	ErrUnknownGrammar = exprerrors.ErrUnknownGrammar
)

// Evaluation errors. The text parsed but its value could not be computed.
var (
	ErrUndefinedSymbol  = exprerrors.ErrUndefinedSymbol
	ErrUnsupportedValue = exprerrors.ErrUnsupportedValue
	ErrTypeMismatch     = exprerrors.ErrTypeMismatch
	ErrDivisionByZero   = exprerrors.ErrDivisionByZero
	ErrNonBooleanResult = exprerrors.ErrNonBooleanResult
)

// ErrNilContext indicates EvaluateContext was called with a nil context.
var ErrNilContext = errors.New("context cannot be nil")

// Typed errors, aliased so callers can use errors.As without importing the
// errors subpackage.
type (
	SyntaxError            = exprerrors.SyntaxError
	InvalidExpressionError = exprerrors.InvalidExpressionError
	MatchError             = exprerrors.MatchError
	LookupError            = exprerrors.LookupError
	TypeError              = exprerrors.TypeError
	GrammarError           = exprerrors.GrammarError
)

// Category classifies an error by who is responsible for it.
type Category = exprerrors.Category

// Error categories.
const (
	CategoryUnknown       = exprerrors.CategoryUnknown
	CategorySyntax        = exprerrors.CategorySyntax
	CategoryConfiguration = exprerrors.CategoryConfiguration
	CategoryEvaluation    = exprerrors.CategoryEvaluation
)

// Categorize reports the category of err.
func Categorize(err error) Category {
	return exprerrors.Categorize(err)
}
