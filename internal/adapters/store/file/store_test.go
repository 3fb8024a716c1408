package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authbox/authbox/internal/domain"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "state key is empty"},
		{name: "whitespace", key: "   ", wantErr: "state key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid state key"},
		{name: "traversal", key: "../escape", wantErr: "invalid state key"},
		{name: "deep traversal", key: "../../session", wantErr: "invalid state key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Set(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreSetGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "session/token"
	want := "opaque-token"

	err := store.Set(context.Background(), key, want)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	statePath := filepath.Join(root, key)
	info, err := os.Stat(statePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(stateFileMode), info.Mode().Perm())
}

func TestStoreGetMissingKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "accounts")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreSetOverwritesExistingValue(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "accounts"

	require.NoError(t, store.Set(context.Background(), key, "first"))
	require.NoError(t, store.Set(context.Background(), key, "second"))

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStoreRemoveIsIdempotentWhenKeyMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "session/user"

	err := store.Remove(context.Background(), key)
	require.NoError(t, err)

	err = store.Remove(context.Background(), key)
	require.NoError(t, err)
}

func TestStoreRemoveDropsStoredValue(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "session/user"

	require.NoError(t, store.Set(context.Background(), key, "value"))
	require.NoError(t, store.Remove(context.Background(), key))

	_, err := store.Get(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
