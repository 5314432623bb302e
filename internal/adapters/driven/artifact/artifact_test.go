package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nerset/internal/core/domain"
)

func TestStore_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "nested", "data", "train.spacy")

	require.NoError(t, store.Write(ctx, path, []byte("payload"), false))

	data, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	exists, err := store.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_Write_RefusesExisting(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "train.spacy")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := store.Write(ctx, path, []byte("new"), false)

	assert.ErrorIs(t, err, domain.ErrDestinationExists)
	data, _ := os.ReadFile(path)
	assert.Equal(t, []byte("old"), data)
}

func TestStore_Write_Override(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "train.spacy")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, store.Write(ctx, path, []byte("new"), true))

	data, _ := os.ReadFile(path)
	assert.Equal(t, []byte("new"), data)
}

func TestStore_Write_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := New()

	require.NoError(t, store.Write(context.Background(), filepath.Join(dir, "a.spacy"), []byte("x"), false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.spacy", entries[0].Name())
}

func TestStore_Write_Permissions(t *testing.T) {
	store := New(WithPermissions(0o600, 0o700))
	path := filepath.Join(t.TempDir(), "private", "train.spacy")

	require.NoError(t, store.Write(context.Background(), path, []byte("x"), false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Write_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "train.spacy")

	err := New().Write(ctx, path, []byte("x"), false)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestStore_Write_EmptyPath(t *testing.T) {
	err := New().Write(context.Background(), "", []byte("x"), true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Read_Missing(t *testing.T) {
	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "none.spacy"))
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestStore_Exists_Missing(t *testing.T) {
	exists, err := New().Exists(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "train.spacy")
	require.NoError(t, store.Write(ctx, path, []byte("payload"), false))

	require.NoError(t, store.Remove(ctx, path))
	assert.NoFileExists(t, path)

	// Removing again is fine.
	assert.NoError(t, store.Remove(ctx, path))
}
