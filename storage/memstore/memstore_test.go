package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/storage"
	"github.com/linemeet/go-events-client/storage/memstore"
)

func TestStore(t *testing.T) {
	t.Run("get of absent key", func(t *testing.T) {
		store := memstore.New()
		_, err := store.Get("missing")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store := memstore.New()
		require.NoError(t, store.Set("k", "v"))

		value, err := store.Get("k")
		require.NoError(t, err)
		require.Equal(t, "v", value)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := memstore.New()
		require.NoError(t, store.Set("k", "v"))
		require.NoError(t, store.Delete("k"))
		require.NoError(t, store.Delete("k"))

		_, err := store.Get("k")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestTake(t *testing.T) {
	store := memstore.New()
	require.NoError(t, store.Set("draft", "snapshot"))

	value, err := storage.Take(store, "draft")
	require.NoError(t, err)
	require.Equal(t, "snapshot", value)

	_, err = storage.Take(store, "draft")
	require.ErrorIs(t, err, storage.ErrNotFound, "Take consumes the entry")
}
