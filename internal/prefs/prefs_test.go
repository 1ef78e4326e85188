package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	store, err := Open(path)
	require.NoError(t, err)
	assert.False(t, store.Debug())
	assert.Equal(t, path, store.Path())

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestPersistDebugRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.PersistDebug(true))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, reopened.Debug())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0","debug":true}`, string(data))
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse preferences")
}
