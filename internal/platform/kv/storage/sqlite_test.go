package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	"github.com/gaqzi/star-reviews/internal/platform/kv/storage"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	StorageTest(t, ctx, func() kv.Store {
		store, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
		require.NoError(t, err, "expected to open and migrate a fresh sqlite database")
		t.Cleanup(func() { _ = store.Close() })

		return store
	})

	t.Run("values survive closing and opening the database again", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kv.db")
		store, err := storage.OpenSQLite(ctx, path)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "reviews", []byte(`[]`)))
		require.NoError(t, store.Close())

		reopened, err := storage.OpenSQLite(ctx, path)
		require.NoError(t, err, "expected the migrations to be a no-op the second time")
		defer (func() { _ = reopened.Close() })()

		actual, err := reopened.Get(ctx, "reviews")
		require.NoError(t, err)
		require.Equal(t, `[]`, string(actual))
	})

	t.Run("using the store after closing it returns a ClosedError", func(t *testing.T) {
		store, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
		require.NoError(t, err)
		require.NoError(t, store.Close())

		_, err = store.Get(ctx, "reviews")

		var closedErr *storage.ClosedError
		require.ErrorAs(t, err, &closedErr)
	})

	t.Run("a blank path is rejected", func(t *testing.T) {
		_, err := storage.OpenSQLite(ctx, "  ")

		require.ErrorContains(t, err, "sqlite path is required")
	})
}
