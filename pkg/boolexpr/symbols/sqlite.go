package symbols

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists symbol bindings to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite symbol store.
// The path should be a file path (e.g., "./symbols.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A :memory: database is per-connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS symbols (
			scope TEXT NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			value REAL NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (scope, name)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(scope, name string, value Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	kind, num, err := encodeValue(value)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO symbols (scope, name, kind, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(scope, name) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, scope, name, kind, num, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set symbol: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(scope, name string) (Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Value{}, ErrStoreClosed
	}

	var kind string
	var num float64
	err := s.db.QueryRow(`
		SELECT kind, value FROM symbols
		WHERE scope = ? AND name = ?
	`, scope, name).Scan(&kind, &num)

	if err == sql.ErrNoRows {
		return Value{}, undefined(scope, name)
	}
	if err != nil {
		return Value{}, fmt.Errorf("get symbol: %w", err)
	}
	return decodeValue(kind, num)
}

// List implements Store.
func (s *SQLiteStore) List(scope string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, kind, value, updated_at
		FROM symbols
		WHERE scope = ?
		ORDER BY name
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			kind      string
			num       float64
			updatedAt string
		)
		if err := rows.Scan(&entry.Name, &kind, &num, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		if entry.Value, err = decodeValue(kind, num); err != nil {
			return nil, err
		}
		entry.Scope = scope
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}
	return entries, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(scope, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`
		DELETE FROM symbols
		WHERE scope = ? AND name = ?
	`, scope, name); err != nil {
		return fmt.Errorf("delete symbol: %w", err)
	}
	return nil
}

// DeleteScope implements Store.
func (s *SQLiteStore) DeleteScope(scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM symbols WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("delete scope: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// Booleans are stored as 0/1 in the value column.
func encodeValue(v Value) (string, float64, error) {
	if _, err := storable(v); err != nil {
		return "", 0, err
	}
	switch v.Kind() {
	case Boolean:
		if v.Bool() {
			return Boolean.String(), 1, nil
		}
		return Boolean.String(), 0, nil
	default:
		return Numeric.String(), v.Number(), nil
	}
}

func decodeValue(kind string, num float64) (Value, error) {
	switch kind {
	case Boolean.String():
		return Bool(num != 0), nil
	case Numeric.String():
		return Number(num), nil
	default:
		return Value{}, fmt.Errorf("decode symbol: unknown kind %q", kind)
	}
}
