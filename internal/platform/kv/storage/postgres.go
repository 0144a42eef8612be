package storage

import (
	"context"
	"fmt"

	"github.com/go-sqlx/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	sqlStore
}

// OpenPostgres connects to the database at conn and runs the migrations.
func OpenPostgres(ctx context.Context, conn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := migrate(ctx, db.DB, goose.DialectPostgres, "postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresStore{sqlStore{db: db, backend: "postgres"}}, nil
}
