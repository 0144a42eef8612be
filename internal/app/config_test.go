package app_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/app"
)

func TestLoadConfig(t *testing.T) {
	t.Run("without any env set it's the defaults", func(t *testing.T) {
		cfg, err := app.LoadConfig()

		require.NoError(t, err)
		require.Equal(t, app.NewConfig(), cfg)
		require.Equal(t, "hotel_reviews_v1", cfg.ReviewsKey)
		require.Equal(t, "ratingApp_case28", cfg.RatingKey)
		require.Equal(t, app.StorageMemory, cfg.Storage)
	})

	t.Run("the env overrides the defaults it sets", func(t *testing.T) {
		t.Setenv("ADDR", "127.0.0.1:0")
		t.Setenv("STORAGE", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/reviews.db")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_JSON", "true")

		cfg, err := app.LoadConfig()

		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:0", cfg.Addr)
		require.Equal(t, app.StorageSQLite, cfg.Storage)
		require.Equal(t, "/tmp/reviews.db", cfg.SQLitePath)
		require.Equal(t, slog.LevelDebug, cfg.LogLevel)
		require.True(t, cfg.LogJSON)
		require.Equal(t, "localhost:6379", cfg.RedisAddr, "untouched values keep their default")
	})

	t.Run("a log level that doesn't exist is an error", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")

		_, err := app.LoadConfig()

		require.ErrorContains(t, err, "failed to parse config from env")
	})
}

func TestConfig_Location(t *testing.T) {
	t.Run("a known zone loads", func(t *testing.T) {
		cfg := app.NewConfig()
		cfg.DisplayTimezone = "America/Bogota"

		loc, err := cfg.Location()

		require.NoError(t, err)
		require.Equal(t, "America/Bogota", loc.String())
	})

	t.Run("an unknown zone is an error", func(t *testing.T) {
		cfg := app.NewConfig()
		cfg.DisplayTimezone = "Nowhere/Special"

		_, err := cfg.Location()

		require.ErrorContains(t, err, "failed to load display timezone")
	})
}
