package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/docstore"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
)

type Options struct {
	// RepairLifetime replaces a stored lifetime counter that disagrees with
	// the ledger sum at Init. Without it the disagreement is only logged.
	RepairLifetime bool

	// Catalog replaces the built-in missions. Nil means BuiltInCatalog.
	Catalog []Mission
}

// Service owns the whole tracker state. It is built once, loaded with Init,
// and every call is serialized on one mutex.
type Service struct {
	store    *docstore.Store
	resolver *daykey.Resolver
	log      *logger.Logger
	opts     Options
	builtIn  []Mission
	newID    func() string

	mu       sync.Mutex
	rev      int64
	day      string
	ledger   *Ledger
	lifetime int
	archive  []MonthlyStats
	missions []Mission
	custom   []Mission
	bottles  []BottleCompletion

	scheduler *daykey.Scheduler
}

func NewService(db *sql.DB, resolver *daykey.Resolver, log *logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if resolver == nil {
		resolver = daykey.Default()
	}
	builtIn := opts.Catalog
	if builtIn == nil {
		builtIn = BuiltInCatalog()
	}
	store := docstore.New(db, log)
	RegisterDocuments(store)
	return &Service{
		store:    store,
		resolver: resolver,
		log:      log.With("component", "engine"),
		opts:     opts,
		builtIn:  builtIn,
		newID:    uuid.NewString,
		ledger:   NewLedger(nil),
	}
}

func (s *Service) Resolver() *daykey.Resolver { return s.resolver }
func (s *Service) Store() *docstore.Store     { return s.store }

// maxStaleRetries bounds how often a write is replayed after another process
// committed first.
const maxStaleRetries = 3

// Init loads every document, reconciles the mission catalog, rolls over if the
// stored day is stale and checks the lifetime counter against the ledger.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Refresh reloads the documents if another process wrote since the service
// last read or wrote them.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncLocked(ctx)
}

func (s *Service) syncLocked(ctx context.Context) error {
	rev, err := s.store.Revision(ctx)
	if err != nil {
		return fmt.Errorf("read revision: %w", err)
	}
	if rev == s.rev {
		return nil
	}
	s.log.Info("documents changed on disk, reloading", "loaded", s.rev, "stored", rev)
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		err := s.loadOnceLocked(ctx)
		if !errors.Is(err, docstore.ErrStale) || attempt == maxStaleRetries {
			return err
		}
	}
}

func (s *Service) loadOnceLocked(ctx context.Context) error {
	rev, err := s.store.Revision(ctx)
	if err != nil {
		return fmt.Errorf("read revision: %w", err)
	}
	st := loadState(ctx, s.store)
	s.rev = rev
	s.ledger = NewLedger(st.logs)
	s.lifetime = st.lifetime
	s.archive = st.archive
	s.custom = st.custom
	s.bottles = st.bottles
	s.missions = Reconcile(s.builtIn, s.custom, st.missions)
	s.day = st.lastDay

	dirty := false
	for _, fix := range s.ledger.Normalize() {
		s.log.Warn("daily log repaired at load", "fix", fix)
		dirty = true
	}

	if sum := LedgerLifetime(s.ledger.Snapshot()); sum != s.lifetime {
		s.log.Warn("lifetime points disagree with ledger", "stored", s.lifetime, "ledger", sum, "repair", s.opts.RepairLifetime)
		if s.opts.RepairLifetime {
			s.lifetime = sum
			dirty = true
		}
	}

	today := s.resolver.CurrentDayKey()
	if s.day != today {
		s.rolloverLocked(today)
		dirty = true
	}
	if archive, changed := ReconcileMonthlyArchive(s.ledger.Snapshot(), s.archive, daykey.MonthOf(today)); changed {
		s.archive = archive
		dirty = true
	}

	if !dirty {
		return nil
	}
	return s.persistLocked(ctx)
}

// Teardown stops the rollover scheduler, if running.
func (s *Service) Teardown() {
	s.mu.Lock()
	sched := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()
	if sched != nil {
		sched.Stop()
	}
}

// StartRolloverScheduler rolls the service over at every rollover instant and
// then calls onRollover, if set. A second call replaces the first.
func (s *Service) StartRolloverScheduler(ctx context.Context, onRollover func(day string)) {
	s.Teardown()
	sched := daykey.NewScheduler(s.resolver, func(ctx context.Context, day string) {
		if err := s.Rollover(ctx); err != nil {
			s.log.Error("scheduled rollover failed", "day", day, "error", err)
			return
		}
		if onRollover != nil {
			onRollover(day)
		}
	})
	s.mu.Lock()
	s.scheduler = sched
	s.mu.Unlock()
	sched.Start(ctx)
}

// Rollover moves the service to the current day key if it has changed.
// Calling it again on the same day does nothing.
func (s *Service) Rollover(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for attempt := 0; ; attempt++ {
		if err := s.syncLocked(ctx); err != nil {
			return err
		}
		err := s.ensureDayLocked(ctx)
		if !errors.Is(err, docstore.ErrStale) || attempt == maxStaleRetries {
			return err
		}
	}
}

func (s *Service) ensureDayLocked(ctx context.Context) error {
	today := s.resolver.CurrentDayKey()
	if today == s.day {
		return nil
	}
	snap := s.checkpoint()
	s.rolloverLocked(today)
	if archive, changed := ReconcileMonthlyArchive(s.ledger.Snapshot(), s.archive, daykey.MonthOf(today)); changed {
		s.archive = archive
	}
	if err := s.persistLocked(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Service) rolloverLocked(today string) {
	s.log.Info("day rollover", "from", s.day, "to", today)
	s.missions = ResetForNewDay(s.missions)
	s.day = today
}

type snapshot struct {
	day      string
	logs     map[string]DailyLog
	lifetime int
	archive  []MonthlyStats
	missions []Mission
	custom   []Mission
	bottles  []BottleCompletion
}

func (s *Service) checkpoint() snapshot {
	return snapshot{
		day:      s.day,
		logs:     s.ledger.Snapshot(),
		lifetime: s.lifetime,
		archive:  append([]MonthlyStats(nil), s.archive...),
		missions: append([]Mission(nil), s.missions...),
		custom:   append([]Mission(nil), s.custom...),
		bottles:  append([]BottleCompletion(nil), s.bottles...),
	}
}

func (s *Service) restore(snap snapshot) {
	s.day = snap.day
	s.ledger = NewLedger(snap.logs)
	s.lifetime = snap.lifetime
	s.archive = snap.archive
	s.missions = snap.missions
	s.custom = snap.custom
	s.bottles = snap.bottles
}

// persistLocked writes every document in one transaction, so the ledger and
// the lifetime counter cannot drift apart on a crash between writes. The
// write fails with docstore.ErrStale if another process committed after the
// service last loaded.
func (s *Service) persistLocked(ctx context.Context) error {
	rev, err := s.store.SaveAllIf(ctx, s.rev,
		docstore.Entry{Key: KeyDailyLogs, Value: s.ledger.Snapshot()},
		docstore.Entry{Key: KeyLifetimePoints, Value: s.lifetime},
		docstore.Entry{Key: KeyMonthlyHistory, Value: nonNil(s.archive)},
		docstore.Entry{Key: KeyMissions, Value: nonNil(s.missions)},
		docstore.Entry{Key: KeyCustomTasks, Value: nonNil(s.custom)},
		docstore.Entry{Key: KeyBottleHistory, Value: nonNil(s.bottles)},
		docstore.Entry{Key: KeyLastReset, Value: s.day},
	)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	s.rev = rev
	return nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// MutationResult reports the effect of a point-bearing mutation.
type MutationResult struct {
	Day         string
	Delta       int
	DayTotal    int
	Lifetime    int
	LevelBefore int
	LevelAfter  int
}

func (r MutationResult) LevelUp() bool   { return r.LevelAfter > r.LevelBefore }
func (r MutationResult) LevelDown() bool { return r.LevelAfter < r.LevelBefore }

// mutate runs fn against the current day, applies its point delta to the
// lifetime counter and persists. State is rolled back if fn or the write
// fails. When another process wrote first, the service reloads and fn runs
// again on the fresh state, so fn must not keep state between calls.
func (s *Service) mutate(ctx context.Context, fn func(day string) (int, error)) (*MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; ; attempt++ {
		res, err := s.mutateOnceLocked(ctx, fn)
		if errors.Is(err, docstore.ErrStale) && attempt < maxStaleRetries {
			s.log.Info("write raced another process, retrying", "attempt", attempt+1)
			continue
		}
		return res, err
	}
}

func (s *Service) mutateOnceLocked(ctx context.Context, fn func(day string) (int, error)) (*MutationResult, error) {
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}
	if err := s.ensureDayLocked(ctx); err != nil {
		return nil, err
	}
	snap := s.checkpoint()
	before := LevelForPoints(s.lifetime)

	delta, err := fn(s.day)
	if err != nil {
		s.restore(snap)
		return nil, err
	}
	s.lifetime += delta
	if err := s.persistLocked(ctx); err != nil {
		s.restore(snap)
		return nil, err
	}

	res := &MutationResult{
		Day:         s.day,
		Delta:       delta,
		DayTotal:    s.ledger.Log(s.day).TotalPoints,
		Lifetime:    s.lifetime,
		LevelBefore: before,
		LevelAfter:  LevelForPoints(s.lifetime),
	}
	if res.LevelUp() {
		s.log.Info("level up", "level", res.LevelAfter, "lifetime", res.Lifetime)
	}
	return res, nil
}

func (s *Service) now() time.Time {
	return s.resolver.Now().UTC()
}

// Import loads a browser storage export, replacing the documents it contains,
// and reloads the service.
func (s *Service) Import(ctx context.Context, data []byte) error {
	bodies, err := ParseLegacyExport(data)
	if err != nil {
		return err
	}
	if err := s.store.PutRaw(ctx, 1, bodies); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	s.log.Info("imported documents", "count", len(bodies))
	return s.Init(ctx)
}
