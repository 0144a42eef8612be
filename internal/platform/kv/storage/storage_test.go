package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	"github.com/gaqzi/star-reviews/internal/platform/kv/storage"
)

// StorageTest is a base suite used to test across the implementations of kv.Store.
// It's implemented this way to ensure that the implementations can be used interchangeably, and to allow for the use
// of lighter implementations during testing.
func StorageTest(t *testing.T, ctx context.Context, storeFactory func() kv.Store) {
	t.Run("Get", func(t *testing.T) {
		t.Run("returns kv.ErrNotFound when nothing has been stored under the key", func(t *testing.T) {
			store := storeFactory()

			_, err := store.Get(ctx, "never-set")

			require.ErrorIs(t, err, kv.ErrNotFound, "expected the specific error for not found")
		})

		t.Run("with a blank key it fails before going to the backend", func(t *testing.T) {
			store := storeFactory()

			_, err := store.Get(ctx, " ")

			require.ErrorIs(t, err, storage.ErrNoKey)
		})
	})

	t.Run("Set", func(t *testing.T) {
		t.Run("after setting, gets back the same bytes", func(t *testing.T) {
			store := storeFactory()
			require.NoError(t, store.Set(ctx, "reviews", []byte(`[{"id":"1"}]`)))

			actual, err := store.Get(ctx, "reviews")
			require.NoError(t, err, "expected to have fetched successfully right after setting")

			require.Equal(t, `[{"id":"1"}]`, string(actual))
		})

		t.Run("setting the same key again replaces the value", func(t *testing.T) {
			store := storeFactory()
			require.NoError(t, store.Set(ctx, "rating", []byte(`{"totalVotes":1}`)))
			require.NoError(t, store.Set(ctx, "rating", []byte(`{"totalVotes":2}`)))

			actual, err := store.Get(ctx, "rating")
			require.NoError(t, err)

			require.Equal(t, `{"totalVotes":2}`, string(actual), "expected the last write to win")
		})

		t.Run("keys don't leak into each other", func(t *testing.T) {
			store := storeFactory()
			require.NoError(t, store.Set(ctx, "a", []byte("first")))
			require.NoError(t, store.Set(ctx, "b", []byte("second")))

			actual, err := store.Get(ctx, "a")
			require.NoError(t, err)

			require.Equal(t, "first", string(actual))
		})

		t.Run("with a blank key it returns an error", func(t *testing.T) {
			store := storeFactory()

			require.ErrorIs(t, store.Set(ctx, "", []byte("x")), storage.ErrNoKey)
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("removes a stored key so Get reports it as not found", func(t *testing.T) {
			store := storeFactory()
			require.NoError(t, store.Set(ctx, "rating", []byte(`{}`)))

			require.NoError(t, store.Remove(ctx, "rating"))

			_, err := store.Get(ctx, "rating")
			require.ErrorIs(t, err, kv.ErrNotFound)
		})

		t.Run("removing a key that was never set is not an error", func(t *testing.T) {
			store := storeFactory()

			require.NoError(t, store.Remove(ctx, "never-set"))
		})
	})
}
