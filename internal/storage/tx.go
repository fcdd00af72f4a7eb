package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn with a DocumentRepo bound to a single SQL transaction.
// Every Put made through it lands together or not at all.
func WithTx(ctx context.Context, db *sql.DB, fn func(docs *DocumentRepo) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(NewDocumentRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
