package app_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/app"
)

func startApp(t *testing.T, cfg app.Config) *app.Server {
	t.Helper()
	cfg.Addr = "127.0.0.1:0"

	server, err := app.Start(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, server.Stop(ctx))
	})

	return server
}

var noRedirects = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func TestStart(t *testing.T) {
	t.Run("the root redirects to the reviews", func(t *testing.T) {
		server := startApp(t, app.NewConfig())

		resp, err := noRedirects.Get("http://" + server.Config.Addr + "/")

		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/reviews", resp.Header.Get("Location"))
	})

	t.Run("the reviews and rating pages are served", func(t *testing.T) {
		server := startApp(t, app.NewConfig())

		for _, path := range []string{"/reviews", "/rating", "/assets/app.css"} {
			resp, err := http.Get("http://" + server.Config.Addr + path)
			require.NoError(t, err, path)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("reviews survive a restart with sqlite storage", func(t *testing.T) {
		cfg := app.NewConfig()
		cfg.Storage = app.StorageSQLite
		cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "reviews.db")

		first, err := app.Start(context.Background(), withRandomAddr(cfg))
		require.NoError(t, err)
		resp, err := noRedirects.PostForm("http://"+first.Config.Addr+"/reviews", url.Values{
			"name":    {"Alice"},
			"comment": {"Clean rooms and a friendly staff"},
			"stars":   {"4"},
		})
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.NoError(t, first.Stop(context.Background()))

		second := startApp(t, cfg)

		require.Len(t, second.Reviews.All(), 1)
		require.Equal(t, "Alice", second.Reviews.All()[0].Name)
	})

	t.Run("votes are kept in redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := app.NewConfig()
		cfg.Storage = app.StorageRedis
		cfg.RedisAddr = mr.Addr()
		server := startApp(t, cfg)

		resp, err := http.PostForm("http://"+server.Config.Addr+"/rating/votes", url.Values{"value": {"3"}})
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		require.Contains(t, string(body), `<strong id="currentRating">3</strong>`, "followed the redirect back to the page")
		stored, err := mr.Get("star-reviews:ratingApp_case28")
		require.NoError(t, err)
		require.True(t, strings.Contains(stored, `"myRating":3`), stored)
	})

	t.Run("an unknown storage fails to start", func(t *testing.T) {
		cfg := app.NewConfig()
		cfg.Storage = "floppy"

		_, err := app.Start(context.Background(), withRandomAddr(cfg))

		require.ErrorContains(t, err, `unknown storage "floppy"`)
	})

	t.Run("redis that isn't there fails to start", func(t *testing.T) {
		cfg := app.NewConfig()
		cfg.Storage = app.StorageRedis
		cfg.RedisAddr = "127.0.0.1:1"

		_, err := app.Start(context.Background(), withRandomAddr(cfg))

		require.ErrorContains(t, err, "failed to ping redis")
	})
}

func withRandomAddr(cfg app.Config) app.Config {
	cfg.Addr = "127.0.0.1:0"
	return cfg
}
