package symbols

import (
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// Table resolves identifier names to values.
//
// The engine treats a Table as read-only and calls Lookup once per
// identifier occurrence, only while evaluating. Implementations used from
// several goroutines must not be mutated concurrently with evaluation.
type Table interface {
	// Lookup returns the value bound to name.
	// A missing name should be reported with an error wrapping ErrUndefinedSymbol.
	Lookup(name string) (Value, error)
}

// TableFunc adapts a function to the Table interface.
type TableFunc func(name string) (Value, error)

// Lookup implements Table.
func (f TableFunc) Lookup(name string) (Value, error) {
	return f(name)
}

// MapTable is a Table backed by a map of Go values.
// Values are converted with FromAny at lookup time.
type MapTable map[string]any

// Lookup implements Table.
func (m MapTable) Lookup(name string) (Value, error) {
	raw, ok := m[name]
	if !ok {
		return Value{}, exprerrors.ErrUndefinedSymbol
	}
	return FromAny(raw)
}

// Empty is a Table with no symbols.
var Empty Table = MapTable(nil)
