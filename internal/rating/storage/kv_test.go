package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	kvstorage "github.com/gaqzi/star-reviews/internal/platform/kv/storage"
	"github.com/gaqzi/star-reviews/internal/rating"
	"github.com/gaqzi/star-reviews/internal/rating/storage"
	"github.com/gaqzi/star-reviews/test/a"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("with nothing stored it loads the zero aggregate", func(t *testing.T) {
		actual, err := storage.NewKVStore(kvstorage.NewMemoryStore(), "").Load(ctx)

		require.NoError(t, err)
		require.Equal(t, rating.Aggregate{}, actual)
	})

	t.Run("saving and loading gives back the same aggregate", func(t *testing.T) {
		store := storage.NewKVStore(kvstorage.NewMemoryStore(), "")
		expected := a.Rating().HasVoted(2, 4).Build()
		require.NoError(t, store.Save(ctx, expected))

		actual, err := store.Load(ctx)

		require.NoError(t, err)
		require.Equal(t, expected, actual)
	})

	t.Run("stores the aggregate under the default key in the browser widget's format", func(t *testing.T) {
		backend := kvstorage.NewMemoryStore()
		require.NoError(t, storage.NewKVStore(backend, "").Save(ctx, rating.Aggregate{TotalScore: 5, TotalVotes: 1, MyRating: 5}))

		data, err := backend.Get(ctx, storage.DefaultKey)

		require.NoError(t, err)
		require.JSONEq(t, `{"totalScore":5,"totalVotes":1,"myRating":5}`, string(data))
	})

	t.Run("a stored null is treated as nothing stored", func(t *testing.T) {
		backend := kvstorage.NewMemoryStore()
		require.NoError(t, backend.Set(ctx, "rating", []byte(`null`)))

		actual, err := storage.NewKVStore(backend, "rating").Load(ctx)

		require.NoError(t, err)
		require.Equal(t, rating.Aggregate{}, actual)
	})

	t.Run("payloads that aren't a valid aggregate are reported as malformed", func(t *testing.T) {
		for _, payload := range []string{
			`not json`,
			`{"totalScore":"five","totalVotes":1,"myRating":5}`,
			`{"totalScore":5,"totalVotes":1,"myRating":9}`,
			`{"totalScore":5,"totalVotes":-1,"myRating":0}`,
		} {
			backend := kvstorage.NewMemoryStore()
			require.NoError(t, backend.Set(ctx, "rating", []byte(payload)))

			_, err := storage.NewKVStore(backend, "rating").Load(ctx)

			var malformedErr *storage.MalformedError
			require.ErrorAs(t, err, &malformedErr, payload)
		}
	})

	t.Run("remove deletes the stored aggregate", func(t *testing.T) {
		backend := kvstorage.NewMemoryStore()
		store := storage.NewKVStore(backend, "")
		require.NoError(t, store.Save(ctx, a.Rating().HasVoted(3, 1).Build()))

		require.NoError(t, store.Remove(ctx))

		actual, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, rating.Aggregate{}, actual)
	})

	t.Run("a service reset against the store starts over from nothing", func(t *testing.T) {
		store := storage.NewKVStore(kvstorage.NewMemoryStore(), "")
		service := rating.NewService(store)
		service.Load(ctx)
		_, err := service.CastVote(ctx, 4)
		require.NoError(t, err)

		actual, err := service.Reset(ctx)

		require.NoError(t, err)
		require.Equal(t, rating.Aggregate{}, actual)
	})
}
