package symbols

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory symbol store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]storedValue // scope -> name -> value
	closed bool
}

type storedValue struct {
	value     Value
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory symbol store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]storedValue),
	}
}

// Set implements Store.
func (m *MemoryStore) Set(scope, name string, value Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if _, err := storable(value); err != nil {
		return err
	}

	if m.data[scope] == nil {
		m.data[scope] = make(map[string]storedValue)
	}
	m.data[scope][name] = storedValue{value: value, updatedAt: time.Now().UTC()}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(scope, name string) (Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Value{}, ErrStoreClosed
	}

	sv, ok := m.data[scope][name]
	if !ok {
		return Value{}, undefined(scope, name)
	}
	return sv.value, nil
}

// List implements Store.
func (m *MemoryStore) List(scope string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	bindings, ok := m.data[scope]
	if !ok {
		return nil, nil
	}

	entries := make([]Entry, 0, len(bindings))
	for name, sv := range bindings {
		entries = append(entries, Entry{
			Scope:     scope,
			Name:      name,
			Value:     sv.value,
			UpdatedAt: sv.updatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(scope, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if bindings, ok := m.data[scope]; ok {
		delete(bindings, name)
	}
	return nil
}

// DeleteScope implements Store.
func (m *MemoryStore) DeleteScope(scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, scope)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of bindings across all scopes.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, bindings := range m.data {
		count += len(bindings)
	}
	return count
}
