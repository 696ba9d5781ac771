package symbols

import (
	"errors"
	"fmt"
	"math"
	"time"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// Store persists symbol bindings grouped by scope.
// A scope is an independent namespace, e.g. one per tenant or request type.
// Implementations must be safe for concurrent use.
type Store interface {
	// Set binds name to value within scope, replacing any previous binding.
	Set(scope, name string, value Value) error

	// Get returns the value bound to name within scope.
	// Returns an error wrapping ErrUndefinedSymbol if there is no binding.
	Get(scope, name string) (Value, error)

	// List returns all bindings of a scope ordered by name.
	// Returns an empty slice (not error) for an unknown scope.
	List(scope string) ([]Entry, error)

	// Delete removes a binding. Returns nil if it doesn't exist.
	Delete(scope, name string) error

	// DeleteScope removes every binding of a scope.
	DeleteScope(scope string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is a stored binding.
type Entry struct {
	Scope     string
	Name      string
	Value     Value
	UpdatedAt time.Time
}

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("symbol store closed")

// Bind returns a Table that resolves names from one scope of a store.
// Lookups read through to the store on every call.
func Bind(store Store, scope string) Table {
	return &scopedTable{store: store, scope: scope}
}

type scopedTable struct {
	store Store
	scope string
}

// Lookup implements Table.
func (t *scopedTable) Lookup(name string) (Value, error) {
	return t.store.Get(t.scope, name)
}

// Load copies every entry of vars into scope, converting with FromAny.
// Nothing is written unless every value converts. A store failure while
// writing can still leave a partial load behind.
func Load(store Store, scope string, vars map[string]any) error {
	values := make(map[string]Value, len(vars))
	for name, raw := range vars {
		v, err := storable(raw)
		if err != nil {
			return fmt.Errorf("load %q: %w", name, err)
		}
		values[name] = v
	}
	for name, v := range values {
		if err := store.Set(scope, name, v); err != nil {
			return err
		}
	}
	return nil
}

// storable converts v and rejects values a Store cannot hold. NaN has no
// SQLite representation, so no store accepts it.
func storable(v any) (Value, error) {
	val, err := FromAny(v)
	if err != nil {
		return Value{}, err
	}
	if val.Kind() == Numeric && math.IsNaN(val.Number()) {
		return Value{}, fmt.Errorf("%w: NaN", exprerrors.ErrUnsupportedValue)
	}
	return val, nil
}

func undefined(scope, name string) error {
	return fmt.Errorf("%w: %s in scope %q", exprerrors.ErrUndefinedSymbol, name, scope)
}
