package grammar

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr/ast"
	exprerrors "github.com/randalmurphal/boolexpr/pkg/boolexpr/errors"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Has(DefaultName))

	g, err := r.Get(DefaultName)
	require.NoError(t, err)
	assert.Same(t, Default(), g)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	strict := MustNew("strict", []Tier{{Standard(ast.TagAnd, "&&")}})

	r.Register(strict)
	g, err := r.Get("strict")
	require.NoError(t, err)
	assert.Same(t, strict, g)
	assert.Equal(t, []string{DefaultName, "strict"}, r.Names())

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, exprerrors.ErrUnknownGrammar)
}

func TestRegistry_Overwrite(t *testing.T) {
	r := NewRegistry()
	first := MustNew("g", []Tier{{Standard(ast.TagAnd, "&")}})
	second := MustNew("g", []Tier{{Standard(ast.TagOr, "|")}})

	r.Register(first)
	r.Register(second)

	g, err := r.Get("g")
	require.NoError(t, err)
	assert.Same(t, second, g)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	r.Delete(DefaultName)
	assert.False(t, r.Has(DefaultName))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	g := MustNew("shared", []Tier{{Standard(ast.TagAnd, "&")}})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(g)
		}()
		go func() {
			defer wg.Done()
			_ = r.Names()
			_, _ = r.Get(DefaultName)
		}()
	}
	wg.Wait()
	assert.True(t, r.Has("shared"))
}

func TestProcessRegistry(t *testing.T) {
	g := MustNew("process-wide", []Tier{{Standard(ast.TagXor, "^")}})
	Register(g)

	got, err := Lookup("process-wide")
	require.NoError(t, err)
	assert.Same(t, g, got)

	got, err = Lookup(DefaultName)
	require.NoError(t, err)
	assert.Same(t, Default(), got)
}
