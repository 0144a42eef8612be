package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	kvstorage "github.com/gaqzi/star-reviews/internal/platform/kv/storage"
)

const postgresConfFile = "tmp/postgres.conf"

// openStore connects to the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage {
	case StorageMemory, "":
		return kvstorage.NewMemoryStore(), noop, nil
	case StorageSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}

		store, err := kvstorage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case StoragePostgres:
		conn, err := databaseURL(cfg)
		if err != nil {
			return nil, noop, err
		}

		store, err := kvstorage.OpenPostgres(ctx, conn)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to ping redis at %q: %w", cfg.RedisAddr, err)
		}

		return kvstorage.NewRedisStore(client), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func databaseURL(cfg Config) (string, error) {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}

	conn, err := os.ReadFile(postgresConfFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("DATABASE_URL isn't set and %s doesn't exist, is local-dev-dependencies running?", postgresConfFile)
		}
		return "", fmt.Errorf("failed to read %s: %w", postgresConfFile, err)
	}

	return strings.TrimSpace(string(conn)), nil
}
