package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-sqlx/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
)

//go:embed migrations
var migrations embed.FS

// sqlStore holds the queries shared by the SQL backed stores, they only differ in how they
// connect and which migrations they run.
type sqlStore struct {
	db      *sqlx.DB
	backend string
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("failed to find migrations for %q: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNoKey
	}
	if s.db == nil {
		return nil, &ClosedError{Backend: s.backend}
	}

	var value []byte
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`SELECT value FROM kv_entries WHERE store_key = ?`), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get %q from %s: %w", key, s.backend, err)
	}

	return value, nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return ErrNoKey
	}
	if s.db == nil {
		return &ClosedError{Backend: s.backend}
	}
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(
		ctx,
		s.db.Rebind(`INSERT INTO kv_entries (store_key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (store_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key,
		value,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set %q in %s: %w", key, s.backend, err)
	}

	return nil
}

func (s *sqlStore) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrNoKey
	}
	if s.db == nil {
		return &ClosedError{Backend: s.backend}
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_entries WHERE store_key = ?`), key); err != nil {
		return fmt.Errorf("failed to remove %q from %s: %w", key, s.backend, err)
	}

	return nil
}

// Close releases the database connection.
func (s *sqlStore) Close() error {
	if s.db == nil {
		return nil
	}

	db := s.db
	s.db = nil

	return db.Close()
}
