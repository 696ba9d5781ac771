package symbols_test

import (
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/symbols"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) symbols.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Set_and_Get", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("tenant-a", "enabled", symbols.Bool(true)))
		require.NoError(t, store.Set("tenant-a", "limit", symbols.Number(2.5)))

		v, err := store.Get("tenant-a", "enabled")
		require.NoError(t, err)
		assert.True(t, v.Equal(symbols.Bool(true)))

		v, err = store.Get("tenant-a", "limit")
		require.NoError(t, err)
		assert.True(t, v.Equal(symbols.Number(2.5)))
	})

	t.Run(name+"/Get_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Get("tenant-a", "missing")
		assert.ErrorIs(t, err, exprerrors.ErrUndefinedSymbol)
	})

	t.Run(name+"/Scopes_Isolated", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("a", "flag", symbols.Bool(true)))
		_, err := store.Get("b", "flag")
		assert.ErrorIs(t, err, exprerrors.ErrUndefinedSymbol)
	})

	t.Run(name+"/Set_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("s", "x", symbols.Number(1)))
		require.NoError(t, store.Set("s", "x", symbols.Bool(false)))

		v, err := store.Get("s", "x")
		require.NoError(t, err)
		assert.Equal(t, symbols.Boolean, v.Kind())
		assert.False(t, v.Bool())
	})

	t.Run(name+"/Set_Invalid", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		err := store.Set("s", "x", symbols.Value{})
		assert.ErrorIs(t, err, exprerrors.ErrUnsupportedValue)
	})

	t.Run(name+"/Set_NaN", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		err := store.Set("s", "x", symbols.Number(math.NaN()))
		assert.ErrorIs(t, err, exprerrors.ErrUnsupportedValue)

		_, err = store.Get("s", "x")
		assert.ErrorIs(t, err, exprerrors.ErrUndefinedSymbol)
	})

	t.Run(name+"/Set_Infinity", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("s", "x", symbols.Number(math.Inf(1))))
		v, err := store.Get("s", "x")
		require.NoError(t, err)
		assert.True(t, math.IsInf(v.Number(), 1))
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("s", "c", symbols.Number(3)))
		require.NoError(t, store.Set("s", "a", symbols.Number(1)))
		require.NoError(t, store.Set("s", "b", symbols.Bool(true)))

		entries, err := store.List("s")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "a", entries[0].Name)
		assert.Equal(t, "b", entries[1].Name)
		assert.Equal(t, "c", entries[2].Name)
		assert.Equal(t, "s", entries[0].Scope)
		assert.False(t, entries[0].UpdatedAt.IsZero())
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		entries, err := store.List("nothing")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("s", "x", symbols.Number(1)))
		require.NoError(t, store.Delete("s", "x"))
		require.NoError(t, store.Delete("s", "never-existed"))

		_, err := store.Get("s", "x")
		assert.ErrorIs(t, err, exprerrors.ErrUndefinedSymbol)
	})

	t.Run(name+"/DeleteScope", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set("s", "x", symbols.Number(1)))
		require.NoError(t, store.Set("s", "y", symbols.Number(2)))
		require.NoError(t, store.Set("keep", "z", symbols.Number(3)))
		require.NoError(t, store.DeleteScope("s"))

		entries, err := store.List("s")
		require.NoError(t, err)
		assert.Empty(t, entries)

		_, err = store.Get("keep", "z")
		assert.NoError(t, err)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Set("s", "x", symbols.Number(1)), symbols.ErrStoreClosed)
		_, err := store.Get("s", "x")
		assert.ErrorIs(t, err, symbols.ErrStoreClosed)
		_, err = store.List("s")
		assert.ErrorIs(t, err, symbols.ErrStoreClosed)
		assert.ErrorIs(t, store.Delete("s", "x"), symbols.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteScope("s"), symbols.ErrStoreClosed)
	})

	t.Run(name+"/Bind", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, symbols.Load(store, "req", map[string]any{"A": true, "x": 4}))

		table := symbols.Bind(store, "req")
		v, err := table.Lookup("x")
		require.NoError(t, err)
		assert.Equal(t, 4.0, v.Number())

		_, err = table.Lookup("B")
		assert.ErrorIs(t, err, exprerrors.ErrUndefinedSymbol)
	})

	t.Run(name+"/Load_Unsupported", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		err := symbols.Load(store, "req", map[string]any{"s": "text"})
		assert.ErrorIs(t, err, exprerrors.ErrUnsupportedValue)
	})

	t.Run(name+"/Load_AllOrNothing", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		vars := map[string]any{"a": true, "b": 1, "c": 2.5, "bad": "text", "nan": math.NaN()}
		err := symbols.Load(store, "req", vars)
		assert.ErrorIs(t, err, exprerrors.ErrUnsupportedValue)

		entries, err := store.List("req")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run(name+"/Concurrent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				name := string(rune('a' + i))
				assert.NoError(t, store.Set("s", name, symbols.Number(float64(i))))
				_, err := store.Get("s", name)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		entries, err := store.List("s")
		require.NoError(t, err)
		assert.Len(t, entries, 10)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) symbols.Store {
		return symbols.NewMemoryStore()
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) symbols.Store {
		store, err := symbols.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}

func TestMemoryStore_Len(t *testing.T) {
	store := symbols.NewMemoryStore()
	require.NoError(t, store.Set("a", "x", symbols.Number(1)))
	require.NoError(t, store.Set("b", "y", symbols.Number(2)))
	assert.Equal(t, 2, store.Len())
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "symbols.db")

	store1, err := symbols.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Set("tenant", "beta", symbols.Bool(true)))
	require.NoError(t, store1.Close())

	store2, err := symbols.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	v, err := store2.Get("tenant", "beta")
	require.NoError(t, err)
	assert.True(t, v.Bool())
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := symbols.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := symbols.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
