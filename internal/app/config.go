package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	ratingstorage "github.com/gaqzi/star-reviews/internal/rating/storage"
	reviewstorage "github.com/gaqzi/star-reviews/internal/reviewing/storage"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Addr string `env:"ADDR"`

	// Storage picks where the reviews and the rating are kept, one of the Storage* constants.
	Storage    string `env:"STORAGE"`
	SQLitePath string `env:"SQLITE_PATH"`
	// DatabaseURL falls back to tmp/postgres.conf, which local-dev-dependencies writes.
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`

	ReviewsKey string `env:"REVIEWS_KEY"`
	RatingKey  string `env:"RATING_KEY"`

	DisplayTimezone string `env:"DISPLAY_TIMEZONE"`

	LogLevel slog.Level `env:"LOG_LEVEL"`
	LogJSON  bool       `env:"LOG_JSON"`
}

func NewConfig() Config {
	return Config{
		Addr:            "127.0.0.1:3000",
		Storage:         StorageMemory,
		SQLitePath:      "tmp/star-reviews.db",
		RedisAddr:       "localhost:6379",
		ReviewsKey:      reviewstorage.DefaultKey,
		RatingKey:       ratingstorage.DefaultKey,
		DisplayTimezone: "Local",
		LogLevel:        slog.LevelInfo,
	}
}

// LoadConfig overlays the environment on top of NewConfig, unset variables keep their default.
func LoadConfig() (Config, error) {
	cfg := NewConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config from env: %w", err)
	}

	return cfg, nil
}

// Location is where review dates are displayed.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load display timezone %q: %w", c.DisplayTimezone, err)
	}

	return loc, nil
}
