package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors raised while scanning and parsing an expression.
var (
	// ErrInvalidCharacter indicates a character outside the recognized alphabet.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrMissingLeftParenthesis indicates a ')' with no matching '('.
	ErrMissingLeftParenthesis = errors.New("missing left parenthesis")

	// ErrMissingRightParenthesis indicates one or more '(' left unclosed.
	ErrMissingRightParenthesis = errors.New("missing right parenthesis")

	// ErrMatch indicates a pattern completed without identifying an
	// expression variant. This is a grammar defect, not bad user input.
	ErrMatch = errors.New("match error")

	// ErrInvalidExpression indicates the working sequence did not reduce
	// to exactly one expression.
	ErrInvalidExpression = errors.New("invalid expression")
)

// Sentinel errors raised while evaluating a parsed expression.
var (
	// ErrUndefinedSymbol indicates an identifier is absent from the symbol table.
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrUnsupportedValue indicates a symbol table holds a value that is
	// neither boolean nor numeric.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrTypeMismatch indicates an operand had the wrong semantic type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDivisionByZero indicates a numeric division by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNonBooleanResult indicates the expression produced a numeric result
	// where a boolean was required.
	ErrNonBooleanResult = errors.New("expression result is not boolean")
)

// Sentinel errors for grammar construction.
var (
	// ErrInvalidGrammar indicates a grammar failed validation.
	ErrInvalidGrammar = errors.New("invalid grammar")

	// ErrUnknownGrammar indicates a grammar name is not registered.
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// SyntaxError reports a scanning or parenthesis error at a position in the
// original input.
type SyntaxError struct {
	// Kind is one of the scanning/parsing sentinels.
	Kind error
	// Pos is the byte offset in the original input, or -1 if unknown.
	Pos int
	// Char is the offending character, if any.
	Char rune
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return e.Kind.Error()
	}
	if e.Char != 0 {
		return fmt.Sprintf("%v %q at offset %d", e.Kind, e.Char, e.Pos)
	}
	return fmt.Sprintf("%v at offset %d", e.Kind, e.Pos)
}

// Unwrap returns the sentinel kind for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// InvalidExpressionError carries the residual sequence left after all
// precedence tiers were applied.
type InvalidExpressionError struct {
	// Residual is the rendered form of each remaining element.
	Residual []string
}

// Error implements the error interface.
func (e *InvalidExpressionError) Error() string {
	if len(e.Residual) == 0 {
		return "invalid expression: nothing to evaluate"
	}
	return fmt.Sprintf("invalid expression: could not reduce [%s]", strings.Join(e.Residual, " "))
}

// Unwrap returns ErrInvalidExpression for errors.Is support.
func (e *InvalidExpressionError) Unwrap() error {
	return ErrInvalidExpression
}

// MatchError reports a grammar defect found while folding a tier.
type MatchError struct {
	// Tier is the index of the precedence tier being folded.
	Tier int
	// Reason describes the defect.
	Reason string
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	return fmt.Sprintf("match error in tier %d: %s", e.Tier, e.Reason)
}

// Unwrap returns ErrMatch for errors.Is support.
func (e *MatchError) Unwrap() error {
	return ErrMatch
}

// LookupError wraps a failure reported by the symbol table.
type LookupError struct {
	// Name is the identifier being resolved.
	Name string
	// Err is the error reported by the table.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying table error.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// TypeError reports an operand whose semantic type does not fit its operator.
type TypeError struct {
	// Op is the operator symbol or tag name.
	Op string
	// Want is the expected type.
	Want string
	// Got is the actual type.
	Got string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("operator %s: want %s operand, got %s", e.Op, e.Want, e.Got)
}

// Unwrap returns ErrTypeMismatch for errors.Is support.
func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// GrammarError describes why a grammar failed validation.
type GrammarError struct {
	// Grammar is the grammar name.
	Grammar string
	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *GrammarError) Error() string {
	if e.Grammar == "" {
		return fmt.Sprintf("invalid grammar: %s", e.Reason)
	}
	return fmt.Sprintf("invalid grammar %q: %s", e.Grammar, e.Reason)
}

// Unwrap returns ErrInvalidGrammar for errors.Is support.
func (e *GrammarError) Unwrap() error {
	return ErrInvalidGrammar
}
