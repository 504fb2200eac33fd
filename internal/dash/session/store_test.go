package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	state := State{
		User:            &model.User{ID: "user-1", Name: "Minh Tran", Email: "minh@example.com"},
		AccessToken:     "access",
		RefreshToken:    "refresh",
		IsAuthenticated: true,
	}
	require.NoError(t, store.Save(state))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state, got)
}

func TestFileStore_MissingFile(t *testing.T) {
	t.Parallel()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptJSONDiscarded(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 1, "access`), 0o600))

	_, ok, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SchemaVersionMismatchDiscarded(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	stale := `{"schema_version": 99, "access_token": "a", "refresh_token": "r", "is_authenticated": true}`
	require.NoError(t, os.WriteFile(path, []byte(stale), 0o600))

	_, ok, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SavedFilePermissions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(State{AccessToken: "a", IsAuthenticated: true}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(State{AccessToken: "a"}))
	require.NoError(t, store.Clear())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-missing file is a no-op.
	assert.NoError(t, store.Clear())
}
