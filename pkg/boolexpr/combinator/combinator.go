// Package combinator provides small composable matchers over sequences.
//
// A Combinator inspects the front of its input and reports what it consumed
// and what remains. Is matches a single element, Either tries alternatives
// in order, and Sequence chains matchers so that each one starts where the
// previous one stopped.
//
// The expression parser does not depend on this package; it is offered for
// callers that want to describe or test grammar patterns declaratively.
package combinator

// Result is the outcome of applying a Combinator.
type Result[T any] struct {
	OK    bool
	Value []T // consumed elements, in order
	Rest  []T // input left after Value
}

// Combinator matches a prefix of its input.
type Combinator[T any] func(input []T) Result[T]

func fail[T any]() Result[T] { return Result[T]{} }

// Is matches one element satisfying pred. Empty input never matches.
func Is[T any](pred func(T) bool) Combinator[T] {
	return func(input []T) Result[T] {
		if len(input) == 0 || !pred(input[0]) {
			return fail[T]()
		}
		return Result[T]{OK: true, Value: input[:1], Rest: input[1:]}
	}
}

// Either returns the result of the first alternative that matches.
func Either[T any](alternatives ...Combinator[T]) Combinator[T] {
	return func(input []T) Result[T] {
		for _, c := range alternatives {
			if r := c(input); r.OK {
				return r
			}
		}
		return fail[T]()
	}
}

// Sequence matches each step in turn, feeding every step the input left
// by the one before. It fails as soon as one step fails.
func Sequence[T any](steps ...Combinator[T]) Combinator[T] {
	return func(input []T) Result[T] {
		rest := input
		var value []T
		for _, c := range steps {
			r := c(rest)
			if !r.OK {
				return fail[T]()
			}
			value = append(value, r.Value...)
			rest = r.Rest
		}
		return Result[T]{OK: true, Value: value, Rest: rest}
	}
}

// Scan applies c at every offset of input, left to right, and returns the
// offset of the first match.
func Scan[T any](c Combinator[T], input []T) (int, Result[T], bool) {
	for i := range input {
		if r := c(input[i:]); r.OK {
			return i, r, true
		}
	}
	return 0, fail[T](), false
}
