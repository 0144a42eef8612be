package test_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-sqlx/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/test"
)

func TestStartPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a container, skipping in short mode")
	}

	t.Run("starts postgres, and returns a valid connection string, and a done to stop postgres", func(t *testing.T) {
		ctx := context.Background()
		psqlCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		err, conn, done := test.StartPostgres(psqlCtx)
		require.NoError(t, err, "expected to have started a postgres container successfully")

		db, err := sqlx.Connect("postgres", conn)
		require.NoError(t, err)

		var result int
		require.NoError(t, db.Get(&result, `SELECT 1+1`))
		require.Equal(t, 2, result, "expected to have gotten a valid result from postgres")

		// Now, let's clean up by shutting down the container, any queries after that have to fail.
		done()
		err = db.QueryRow(`SELECT 1+2`).Err()
		require.Error(t, err, "expected an error because calling `done()` shuts down the container")
	})
}

func TestStartRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a container, skipping in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err, addr, done := test.StartRedis(ctx)
	require.NoError(t, err, "expected to have started a redis container successfully")
	defer done()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer (func() { _ = client.Close() })()

	require.NoError(t, client.Ping(ctx).Err(), "expected redis to answer on the returned address")
}
