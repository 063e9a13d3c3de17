package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := NewSQLite(context.Background(), config.PersistenceConfig{
		Backend:    config.PersistenceSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "slots.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := store.Read(ctx, KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, KeyCart, `{"totalQuantity":2}`))

	value, ok, err := store.Read(ctx, KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"totalQuantity":2}`, value)
}

func TestSQLiteWriteReplaces(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, KeyUser, "first"))
	require.NoError(t, store.Write(ctx, KeyUser, "second"))

	value, ok, err := store.Read(ctx, KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestSQLiteRemoveDeletesKey(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, KeyCart, "value"))
	require.NoError(t, store.Remove(ctx, KeyCart))

	_, ok, err := store.Read(ctx, KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Remove(ctx, KeyCart))
}
