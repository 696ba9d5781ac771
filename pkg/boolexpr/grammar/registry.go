package grammar

import (
	"fmt"
	"sort"
	"sync"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

// Registry holds grammars by name so several independently configured
// grammars can coexist in one process.
// It uses sync.RWMutex for read-heavy workloads.
type Registry struct {
	mu       sync.RWMutex
	grammars map[string]*Grammar
}

// NewRegistry creates a registry with the default grammar registered
// under DefaultName.
func NewRegistry() *Registry {
	return &Registry{
		grammars: map[string]*Grammar{DefaultName: Default()},
	}
}

// Register adds or replaces a grammar under its name.
func (r *Registry) Register(g *Grammar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammars[g.Name()] = g
}

// Get returns the grammar registered under name.
// Returns an error wrapping ErrUnknownGrammar if there is none.
func (r *Registry) Get(name string) (*Grammar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.grammars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", exprerrors.ErrUnknownGrammar, name)
	}
	return g, nil
}

// Has returns true if a grammar is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.grammars[name]
	return ok
}

// Delete removes a grammar.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grammars, name)
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.grammars))
	for name := range r.grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered grammars.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grammars)
}

var defaultRegistry = NewRegistry()

// Register adds a grammar to the process-wide registry.
func Register(g *Grammar) { defaultRegistry.Register(g) }

// Lookup returns a grammar from the process-wide registry.
func Lookup(name string) (*Grammar, error) { return defaultRegistry.Get(name) }
