package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/storage"
)

type item struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

func validItem(it item) error {
	if it.ID == "" {
		return errors.New("id required")
	}
	return nil
}

func newTestStore(t *testing.T) (*Store, *storage.DocumentRepo) {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, logger.Nop()), storage.NewDocumentRepo(db)
}

func putRaw(t *testing.T, repo *storage.DocumentRepo, key string, version int, body string) {
	t.Helper()
	require.NoError(t, repo.Put(context.Background(), key, version, []byte(body), time.Now()))
}

func TestLoadAbsentReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	assert.Equal(t, 7, LoadScalar(ctx, s, "n", 7, nil))
	assert.Equal(t, []item{}, LoadList(ctx, s, "items", validItem))
	assert.Equal(t, map[string]item{}, LoadMap[item](ctx, s, "byid", nil))
}

func TestLoadMalformedReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)

	putRaw(t, repo, "n", 1, `{not json`)
	putRaw(t, repo, "items", 1, `{"id":"a"}`)
	putRaw(t, repo, "byid", 1, `[1,2,3]`)
	putRaw(t, repo, "s", 1, `"text"`)

	assert.Equal(t, 0, LoadScalar(ctx, s, "n", 0, nil))
	assert.Empty(t, LoadList(ctx, s, "items", validItem))
	assert.Empty(t, LoadMap[item](ctx, s, "byid", nil))
	assert.Equal(t, 3, LoadScalar(ctx, s, "s", 3, nil))
}

func TestLoadListDropsOnlyInvalidEntries(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)

	putRaw(t, repo, "items", 1, `[{"id":"a","score":1},{"score":2},{"id":"c","score":"x"},"junk",{"id":"d","score":4}]`)

	got := LoadList(ctx, s, "items", validItem)
	assert.Equal(t, []item{{ID: "a", Score: 1}, {ID: "d", Score: 4}}, got)
}

func TestLoadMapDropsOnlyInvalidEntries(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)

	putRaw(t, repo, "byid", 1, `{"a":{"id":"a","score":1},"b":{"id":"","score":2},"c":[]}`)

	got := LoadMap(ctx, s, "byid", func(k string, it item) error {
		if k != it.ID {
			return errors.New("key mismatch")
		}
		return nil
	})
	assert.Equal(t, map[string]item{"a": {ID: "a", Score: 1}}, got)
}

func TestScalarValidationFallsBack(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)
	putRaw(t, repo, "n", 1, `-5`)

	got := LoadScalar(ctx, s, "n", 0, func(v int) error {
		if v < 0 {
			return errors.New("negative")
		}
		return nil
	})
	assert.Equal(t, 0, got)
}

func TestMigrationsRunForwardAndSaveStampsVersion(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)

	s.Register("items",
		// v1 -> v2: "name" becomes "id"
		func(body any) (any, error) {
			list, ok := body.([]any)
			if !ok {
				return nil, errors.New("not a list")
			}
			for _, e := range list {
				if m, ok := e.(map[string]any); ok {
					if name, ok := m["name"]; ok {
						m["id"] = name
						delete(m, "name")
					}
				}
			}
			return list, nil
		},
		// v2 -> v3: score doubles
		func(body any) (any, error) {
			for _, e := range body.([]any) {
				if m, ok := e.(map[string]any); ok {
					if n, ok := m["score"].(float64); ok {
						m["score"] = n * 2
					}
				}
			}
			return body, nil
		},
	)
	assert.Equal(t, 3, s.Version("items"))

	putRaw(t, repo, "items", 1, `[{"name":"a","score":2}]`)
	got := LoadList(ctx, s, "items", validItem)
	assert.Equal(t, []item{{ID: "a", Score: 4}}, got)

	require.NoError(t, s.Save(ctx, "items", got))
	doc, err := repo.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)

	// Already current: no migration applied twice.
	assert.Equal(t, got, LoadList(ctx, s, "items", validItem))
}

func TestFailedMigrationFallsBack(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestStore(t)
	s.Register("n", func(any) (any, error) { return nil, errors.New("nope") })

	putRaw(t, repo, "n", 1, `12`)
	assert.Equal(t, 0, LoadScalar(ctx, s, "n", 0, nil))

	putRaw(t, repo, "n", 9, `12`)
	assert.Equal(t, 0, LoadScalar(ctx, s, "n", 0, nil))
}

func TestSaveAllWritesEveryEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveAll(ctx,
		Entry{Key: "n", Value: 50},
		Entry{Key: "items", Value: []item{{ID: "x"}}},
	))
	assert.Equal(t, 50, LoadScalar(ctx, s, "n", 0, nil))
	assert.Equal(t, []item{{ID: "x"}}, LoadList(ctx, s, "items", validItem))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSaveAllIfRejectsStaleRevision(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	rev, err := s.Revision(ctx)
	require.NoError(t, err)
	require.Zero(t, rev)

	rev, err = s.SaveAllIf(ctx, rev, Entry{Key: "n", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)

	// another writer commits in between
	require.NoError(t, s.Save(ctx, "n", 2))

	_, err = s.SaveAllIf(ctx, rev, Entry{Key: "n", Value: 3}, Entry{Key: "m", Value: 3})
	require.ErrorIs(t, err, ErrStale)

	assert.Equal(t, 2, LoadScalar(ctx, s, "n", 0, nil))
	assert.Equal(t, 0, LoadScalar(ctx, s, "m", 0, nil), "a stale batch writes nothing")

	current, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)

	rev, err = s.SaveAllIf(ctx, current, Entry{Key: "n", Value: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rev)
	assert.Equal(t, 3, LoadScalar(ctx, s, "n", 0, nil))
}
