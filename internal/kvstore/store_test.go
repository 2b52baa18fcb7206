// AngelaMos | 2026
// store_test.go

package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))

	value, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	require.NoError(t, m.Delete("k"))
	_, ok, _ = m.Get("k")
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, m.Delete("k"))
	assert.NoError(t, m.Ping(context.Background()))
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	f, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Set("users", `[{"id":"1"}]`))
	require.NoError(t, f.Set("session", `{"token":"abc"}`))
	require.NoError(t, f.Delete("session"))

	// A fresh handle sees only what was flushed.
	reopened, err := NewFile(path)
	require.NoError(t, err)

	value, ok, err := reopened.Get("users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, value)

	_, ok, _ = reopened.Get("session")
	assert.False(t, ok)
}

func TestFile_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "store.json")

	f, err := NewFile(path)
	require.NoError(t, err)

	_, ok, _ := f.Get("anything")
	assert.False(t, ok)
}

func TestFile_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, ok, _ := f.Get("anything")
	assert.False(t, ok)

	// The next write replaces the corrupt document.
	require.NoError(t, f.Set("k", "v"))

	reopened, err := NewFile(path)
	require.NoError(t, err)

	value, ok, _ := reopened.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
