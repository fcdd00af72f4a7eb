// Package docstore persists named JSON documents on top of the storage
// documents table.
//
// Reads never fail: a document that is absent, unparsable, or fails its
// migration yields the caller's default, and list/map documents drop invalid
// entries one by one instead of discarding the whole document. Every discard
// is logged.
//
// Each key has a schema version. Register attaches one Migration per version
// bump; documents stored at an older version are migrated forward on read and
// rewritten at the current version on the next save.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/storage"
)

// ErrStale is returned by SaveAllIf when another writer committed since the
// caller's revision.
var ErrStale = errors.New("stored documents changed since they were loaded")

// Migration rewrites a decoded document body (maps, slices, float64s and
// strings as produced by encoding/json) from version N to N+1.
type Migration func(body any) (any, error)

// Entry is one document in a batch save.
type Entry struct {
	Key   string
	Value any
}

type Store struct {
	db   *sql.DB
	docs *storage.DocumentRepo
	log  *logger.Logger

	mu         sync.RWMutex
	migrations map[string][]Migration

	// Now stamps updated_at. Tests replace it.
	Now func() time.Time
}

func New(db *sql.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		db:         db,
		docs:       storage.NewDocumentRepo(db),
		log:        log.With("component", "docstore"),
		migrations: map[string][]Migration{},
		Now:        time.Now,
	}
}

// Register sets the migration chain for key. The current version of key
// becomes len(migrations)+1.
func (s *Store) Register(key string, migrations ...Migration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.migrations[key] = migrations
}

// Version returns the current schema version for key.
func (s *Store) Version(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.migrations[key]) + 1
}

// Raw returns the document body migrated to the current version, or false
// when there is nothing usable under key.
func (s *Store) Raw(ctx context.Context, key string) (json.RawMessage, bool) {
	doc, err := s.docs.Get(ctx, key)
	if err != nil {
		s.log.Warn("document read failed, using default", "key", key, "error", err)
		return nil, false
	}
	if doc == nil {
		return nil, false
	}

	current := s.Version(key)
	if doc.Version == current {
		if !json.Valid(doc.Body) {
			s.log.Warn("document is not valid JSON, using default", "key", key)
			return nil, false
		}
		return doc.Body, true
	}
	if doc.Version > current || doc.Version < 1 {
		s.log.Warn("document version unknown, using default", "key", key, "version", doc.Version, "current", current)
		return nil, false
	}

	var body any
	if err := json.Unmarshal(doc.Body, &body); err != nil {
		s.log.Warn("document is not valid JSON, using default", "key", key, "error", err)
		return nil, false
	}
	s.mu.RLock()
	chain := s.migrations[key]
	s.mu.RUnlock()
	for v := doc.Version; v < current; v++ {
		body, err = chain[v-1](body)
		if err != nil {
			s.log.Warn("document migration failed, using default", "key", key, "from", v, "error", err)
			return nil, false
		}
	}
	out, err := json.Marshal(body)
	if err != nil {
		s.log.Warn("document re-encode failed, using default", "key", key, "error", err)
		return nil, false
	}
	s.log.Debug("document migrated", "key", key, "from", doc.Version, "to", current)
	return out, true
}

// Save writes a single document. Last write wins.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	return s.SaveAll(ctx, Entry{Key: key, Value: value})
}

// SaveAll writes every entry in one transaction. Last write wins.
func (s *Store) SaveAll(ctx context.Context, entries ...Entry) error {
	_, err := s.saveAll(ctx, -1, entries)
	return err
}

// SaveAllIf is SaveAll guarded by a revision: it fails with ErrStale, writing
// nothing, unless the stored revision still equals expected. It returns the
// revision after the write.
func (s *Store) SaveAllIf(ctx context.Context, expected int64, entries ...Entry) (int64, error) {
	return s.saveAll(ctx, expected, entries)
}

// Revision counts committed writes. Compare it with the value returned by
// SaveAllIf to tell whether another process wrote in between.
func (s *Store) Revision(ctx context.Context) (int64, error) {
	return s.docs.Revision(ctx)
}

// saveAll skips the revision check when expected is negative.
func (s *Store) saveAll(ctx context.Context, expected int64, entries []Entry) (int64, error) {
	type encoded struct {
		key     string
		version int
		body    []byte
	}
	batch := make([]encoded, 0, len(entries))
	for _, e := range entries {
		body, err := json.Marshal(e.Value)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", e.Key, err)
		}
		batch = append(batch, encoded{key: e.Key, version: s.Version(e.Key), body: body})
	}
	now := s.Now()
	var rev int64
	err := storage.WithTx(ctx, s.db, func(docs *storage.DocumentRepo) error {
		var err error
		if rev, err = docs.BumpRevision(ctx); err != nil {
			return err
		}
		if expected >= 0 && rev-1 != expected {
			return ErrStale
		}
		for _, e := range batch {
			if err := docs.Put(ctx, e.key, e.version, e.body, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rev, nil
}

// Documents lists every stored document as-is, for diagnostics.
func (s *Store) Documents(ctx context.Context) ([]storage.Document, error) {
	return s.docs.List(ctx)
}

// PutRaw writes pre-encoded bodies at an explicit version in one transaction.
// Bodies older than the current version are migrated on the next read, which
// lets callers import documents exported by older releases.
func (s *Store) PutRaw(ctx context.Context, version int, bodies map[string]json.RawMessage) error {
	for key, body := range bodies {
		if !json.Valid(body) {
			return fmt.Errorf("import %s: body is not valid JSON", key)
		}
	}
	now := s.Now()
	return storage.WithTx(ctx, s.db, func(docs *storage.DocumentRepo) error {
		if _, err := docs.BumpRevision(ctx); err != nil {
			return err
		}
		for key, body := range bodies {
			if err := docs.Put(ctx, key, version, body, now); err != nil {
				return err
			}
		}
		return nil
	})
}
