package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "settings.yaml"), "IN")
	require.NoError(t, err)
	assert.Empty(t, store.Phone())
	assert.Empty(t, store.Inventory())
}

func TestSetPhoneNormalisesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := Open(path, "IN")
	require.NoError(t, err)

	phone, err := store.SetPhone("081234 56789")
	require.NoError(t, err)
	assert.Equal(t, "+918123456789", phone)

	reopened, err := Open(path, "IN")
	require.NoError(t, err)
	assert.Equal(t, "+918123456789", reopened.Phone())
}

func TestSetPhoneRejectsGarbage(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "settings.yaml"), "IN")
	require.NoError(t, err)

	_, err = store.SetPhone("12")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = store.SetPhone("not a phone")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestSetPhoneEmptyForgets(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "settings.yaml"), "IN")
	require.NoError(t, err)
	_, err = store.SetPhone("+91 81234 56789")
	require.NoError(t, err)

	phone, err := store.SetPhone("")
	require.NoError(t, err)
	assert.Empty(t, phone)
	assert.Empty(t, store.Phone())
}

func TestSaveInventoryKeepsPhone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := Open(path, "IN")
	require.NoError(t, err)
	_, err = store.SetPhone("+918123456789")
	require.NoError(t, err)

	require.NoError(t, store.SaveInventory(map[string]int{"Mango": 4, "Oreo": 0}))

	reopened, err := Open(path, "IN")
	require.NoError(t, err)
	assert.Equal(t, "+918123456789", reopened.Phone())
	assert.Equal(t, map[string]int{"Mango": 4, "Oreo": 0}, reopened.Inventory())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestOpenRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inventory: [unclosed"), 0o600))
	_, err := Open(path, "IN")
	assert.Error(t, err)
}
