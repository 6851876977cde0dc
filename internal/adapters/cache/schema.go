package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqliteGeocodeTable = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	address TEXT PRIMARY KEY,
	lon REAL NOT NULL,
	lat REAL NOT NULL,
	resolved_address TEXT NOT NULL DEFAULT ''
);
`

const postgresGeocodeTable = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	address TEXT PRIMARY KEY,
	lon DOUBLE PRECISION NOT NULL,
	lat DOUBLE PRECISION NOT NULL,
	resolved_address TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Initialize the SQLite geocode cache schema.
func InitSqliteSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, sqliteGeocodeTable)
}

// Initialize the Postgres geocode cache schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, postgresGeocodeTable)
}

func initSchema(ctx context.Context, db *sql.DB, statements ...string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
