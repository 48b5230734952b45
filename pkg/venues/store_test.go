package venues

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.yaml")

	r := Open(path, WithClock(fixedClock))
	require.NoError(t, r.Update("Real Valladolid CF", "Estadio José Zorrilla", "Valladolid"))
	require.NoError(t, r.Update("Valladolit", "Estadio José Zorrilla", "Valladolid"))
	require.NoError(t, r.Save())
	assert.False(t, r.Dirty())

	reloaded := Open(path, WithClock(fixedClock))
	assert.Equal(t, 1, reloaded.Len())
	assert.False(t, reloaded.Dirty())

	// Aliases survive the roundtrip and keep resolving.
	match, err := reloaded.Lookup("Valladolit")
	require.NoError(t, err)
	assert.Equal(t, "Real Valladolid CF", match.Canonical)
	assert.Equal(t, "Estadio José Zorrilla", match.Stadium)
}

func TestStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "venues.yaml")

	r := Open(path)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Dirty())
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	r := Open(path)
	assert.Equal(t, 0, r.Len())
}

func TestSaveSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "venues.yaml")

	r := Open(path, WithClock(fixedClock))
	require.NoError(t, r.Save())

	// Nothing was dirty, so nothing was written.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "venues.yaml")

	r := Open(path, WithClock(fixedClock))
	require.NoError(t, r.Update("Celta de Vigo", "Balaídos", "Vigo"))
	require.NoError(t, r.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
