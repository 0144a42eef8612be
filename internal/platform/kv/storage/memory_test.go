package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	"github.com/gaqzi/star-reviews/internal/platform/kv/storage"
)

func TestMemoryStore(t *testing.T) {
	StorageTest(t, context.Background(), func() kv.Store { return storage.NewMemoryStore() })

	t.Run("changing the bytes after Set doesn't change what's stored", func(t *testing.T) {
		ctx := context.Background()
		store := storage.NewMemoryStore()
		value := []byte("hello")
		require.NoError(t, store.Set(ctx, "k", value))

		value[0] = 'j'

		actual, err := store.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "hello", string(actual))
	})
}
