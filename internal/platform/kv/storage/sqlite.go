package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-sqlx/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the values in a local SQLite file, which is the closest thing to a
// browser's local storage that survives restarts without any services running.
type SQLiteStore struct {
	sqlStore
}

// OpenSQLite opens, and migrates, the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if err := migrate(ctx, db.DB, goose.DialectSQLite3, "sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{sqlStore{db: db, backend: "sqlite"}}, nil
}
