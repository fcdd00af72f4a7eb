package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Every persisted document is one row. Bodies are JSON; version is the
		// document schema version, migrated forward by the docstore on read.
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL DEFAULT 1,
			body TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT 0
		);`,
		// revision counts committed writes so a process holding documents in
		// memory can tell when another process has written since.
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
