package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DocumentRepo struct {
	db DBTX
}

func NewDocumentRepo(db DBTX) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Get returns nil, nil when the document does not exist.
func (r *DocumentRepo) Get(ctx context.Context, key string) (*Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, version, body, updated_at FROM documents WHERE key = ?`, key)
	var (
		d       Document
		body    string
		updated int64
	)
	if err := row.Scan(&d.Key, &d.Version, &body, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	d.Body = []byte(body)
	if updated > 0 {
		d.UpdatedAt = time.UnixMilli(updated).UTC()
	}
	return &d, nil
}

func (r *DocumentRepo) Put(ctx context.Context, key string, version int, body []byte, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, version, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, key, version, string(body), at.UnixMilli())
	if err != nil {
		return fmt.Errorf("document put: %w", err)
	}
	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("document delete: %w", err)
	}
	return nil
}

// List returns every document ordered by key, bodies included.
func (r *DocumentRepo) List(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, version, body, updated_at FROM documents ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("document list: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var (
			d       Document
			body    string
			updated int64
		)
		if err := rows.Scan(&d.Key, &d.Version, &body, &updated); err != nil {
			return nil, fmt.Errorf("document scan: %w", err)
		}
		d.Body = []byte(body)
		if updated > 0 {
			d.UpdatedAt = time.UnixMilli(updated).UTC()
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("document rows: %w", err)
	}
	return out, nil
}

const revisionKey = "revision"

// Revision returns the number of committed document writes, 0 for a new
// database.
func (r *DocumentRepo) Revision(ctx context.Context) (int64, error) {
	var rev int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, revisionKey).Scan(&rev)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("revision get: %w", err)
	}
	return rev, nil
}

// BumpRevision increments the revision and returns the new value. Inside a
// transaction it is a write, so call it before any read to take the write
// lock first.
func (r *DocumentRepo) BumpRevision(ctx context.Context) (int64, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1
	`, revisionKey)
	if err != nil {
		return 0, fmt.Errorf("revision bump: %w", err)
	}
	return r.Revision(ctx)
}
