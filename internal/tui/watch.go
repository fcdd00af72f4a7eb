package tui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
)

const defaultDebounce = 300 * time.Millisecond

// dbWatcher reports, debounced, when the database file (or its -wal/-journal
// siblings) changes on disk, e.g. because another asc process wrote to it.
type dbWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *logger.Logger

	pendingMu sync.Mutex
	pending   bool

	changes chan struct{}
}

func newDBWatcher(path string, log *logger.Logger) (*dbWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &dbWatcher{
		path:     path,
		debounce: defaultDebounce,
		watcher:  fsw,
		log:      log,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes is closed when the watcher stops.
func (w *dbWatcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *dbWatcher) Start(ctx context.Context) error {
	// The directory is watched rather than the file: sqlite replaces and
	// creates sibling files that a file watch would miss.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents(ctx)
	w.log.Debug("watching database", "path", w.path, "debounce", w.debounce)
	return nil
}

func (w *dbWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *dbWatcher) processEvents(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("database watcher error", "error", err)
		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *dbWatcher) handleFSEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !strings.HasPrefix(filepath.Base(event.Name), filepath.Base(w.path)) {
		return
	}
	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
}

func (w *dbWatcher) flushPending() {
	w.pendingMu.Lock()
	fire := w.pending
	w.pending = false
	w.pendingMu.Unlock()
	if !fire {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
