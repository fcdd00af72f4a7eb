package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/storage"
)

var utcMinus3 = time.FixedZone("UTC-3", -3*3600)

// localNoon is noon of day in the default UTC-3 zone.
func localNoon(day string) time.Time {
	t, err := time.ParseInLocation(daykey.Layout, day, utcMinus3)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openService(t *testing.T, db *sql.DB, clock *testClock, opts Options) *Service {
	t.Helper()
	resolver := daykey.Default()
	resolver.Now = clock.Now
	svc := NewService(db, resolver, logger.Nop(), opts)
	require.NoError(t, svc.Init(context.Background()))
	t.Cleanup(svc.Teardown)
	return svc
}

func newTestService(t *testing.T, day string, opts Options) (*Service, *testClock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	clock := &testClock{now: localNoon(day)}
	return openService(t, openDB(t, path), clock, opts), clock, path
}

func assertLifetimeMatchesLedger(t *testing.T, svc *Service) {
	t.Helper()
	logs := map[string]DailyLog{}
	for _, l := range svc.SortedLogs() {
		logs[l.Date] = l
		assert.Equal(t, ExpectedTotal(l), l.TotalPoints, "day %s", l.Date)
	}
	assert.Equal(t, LedgerLifetime(logs), svc.Lifetime())
}

func TestEndToEndDayCycle(t *testing.T) {
	ctx := context.Background()
	svc, clock, path := newTestService(t, "2024-06-01", Options{
		Catalog: []Mission{{ID: "p1", Title: "Run", Points: 90, Category: CategoryPhysical}},
	})
	assert.Equal(t, "2024-06-01", svc.CurrentDayKey())

	res, err := svc.CompleteMission(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 90, res.Delta)
	assert.Equal(t, 90, svc.Today().TotalPoints)
	assert.Equal(t, 90, svc.Lifetime())
	assert.Equal(t, 1, svc.Level())

	_, err = svc.SelectPractice(ctx, Practice1)
	require.NoError(t, err)
	assert.Equal(t, 50, svc.Today().TotalPoints)
	assert.Equal(t, 50, svc.Lifetime())

	clock.now = localNoon("2024-06-02")
	require.NoError(t, svc.Rollover(ctx))

	assert.Equal(t, "2024-06-02", svc.CurrentDayKey())
	for _, m := range svc.Missions() {
		assert.False(t, m.Completed, m.ID)
	}
	assert.Equal(t, 50, svc.Lifetime())
	today := svc.Today()
	assert.Equal(t, "2024-06-02", today.Date)
	assert.Empty(t, today.CompletedMissions)
	assert.Zero(t, today.TotalPoints)
	assert.Equal(t, 50, svc.Log("2024-06-01").TotalPoints)

	reopened := openService(t, openDB(t, path), clock, Options{
		Catalog: []Mission{{ID: "p1", Title: "Run", Points: 90, Category: CategoryPhysical}},
	})
	assert.Equal(t, 50, reopened.Lifetime())
	assert.Equal(t, "2024-06-02", reopened.CurrentDayKey())
	assert.Equal(t, svc.SortedLogs(), reopened.SortedLogs())
}

func TestLifetimeMatchesLedgerAcrossDays(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newTestService(t, "2024-06-01", Options{})

	_, err := svc.CompleteMission(ctx, "p8")
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "a4")
	require.NoError(t, err)
	_, _, err = svc.AddRitual(ctx, CandleGold, "gratitude")
	require.NoError(t, err)
	_, err = svc.SelectPractice(ctx, Practice3)
	require.NoError(t, err)
	assertLifetimeMatchesLedger(t, svc)

	clock.now = localNoon("2024-06-02")
	custom, err := svc.AddCustomMission(ctx, "Cold shower", -20, CategoryPhysical)
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, custom.ID)
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "m5")
	require.NoError(t, err)
	_, err = svc.UncompleteMission(ctx, "m5")
	require.NoError(t, err)
	_, err = svc.ToggleMission(ctx, "p1")
	require.NoError(t, err)
	assertLifetimeMatchesLedger(t, svc)

	assert.Equal(t, 90-80+50-150, svc.Log("2024-06-01").TotalPoints)
	assert.Equal(t, -20+50, svc.Today().TotalPoints)
}

func TestMissionErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "2024-06-01", Options{})

	_, err := svc.CompleteMission(ctx, "nope")
	assert.ErrorIs(t, err, ErrMissionNotFound)

	_, err = svc.CompleteMission(ctx, "p1")
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "p1")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Len(t, svc.Today().CompletedMissions, 1)

	_, err = svc.UncompleteMission(ctx, "p2")
	assert.ErrorIs(t, err, ErrNotCompleted)

	res, err := svc.ToggleMission(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, -50, res.Delta)
	assert.Zero(t, svc.Lifetime())
}

func TestPracticeIsOnePerDay(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "2024-06-01", Options{})

	_, err := svc.SelectPractice(ctx, Practice2)
	require.NoError(t, err)
	_, err = svc.SelectPractice(ctx, Practice1)
	assert.ErrorIs(t, err, ErrPracticeAlreadySelected)

	assert.Equal(t, Practice2, svc.Today().Practice)
	assert.Equal(t, -90, svc.Today().TotalPoints)
	assert.Equal(t, -90, svc.Lifetime())
}

func TestRitualIsOnePerColorPerDay(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "2024-06-01", Options{})

	r, res, err := svc.AddRitual(ctx, CandleRed, "note A")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, RitualBonus, res.Delta)

	_, _, err = svc.AddRitual(ctx, CandleRed, "note B")
	assert.ErrorIs(t, err, ErrRitualAlreadyDone)

	today := svc.Today()
	require.Len(t, today.Rituals, 1)
	assert.Equal(t, "note A", today.Rituals[0].Note)
	assert.Equal(t, RitualBonus, today.TotalPoints)
	assert.Equal(t, RitualBonus, svc.Lifetime())
}

func TestRolloverIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, clock, path := newTestService(t, "2024-05-31", Options{})

	_, err := svc.UpdateCounter(ctx, CounterRunningKm, 3)
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "p1")
	require.NoError(t, err)

	clock.now = localNoon("2024-06-01")
	require.NoError(t, svc.Rollover(ctx))

	missions, history, logs := svc.Missions(), svc.MonthlyHistory(), svc.SortedLogs()
	require.Equal(t, []MonthlyStats{{Month: "2024-05", TotalKm: 3}}, history)

	require.NoError(t, svc.Rollover(ctx))
	assert.Equal(t, missions, svc.Missions())
	assert.Equal(t, history, svc.MonthlyHistory())
	assert.Equal(t, logs, svc.SortedLogs())

	// Reloading does not archive May a second time.
	reopened := openService(t, openDB(t, path), clock, Options{})
	assert.Equal(t, history, reopened.MonthlyHistory())
}

func TestCountersClampAndRollIntoMonth(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newTestService(t, "2024-06-01", Options{})

	res, err := svc.UpdateCounter(ctx, CounterPunches, 2000)
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Equal(t, 1000.0, res.Value)

	_, err = svc.UpdateCounter(ctx, CounterClonaDrops, 7)
	require.NoError(t, err)

	clock.now = localNoon("2024-06-02")
	_, err = svc.UpdateCounter(ctx, CounterPunches, 10)
	require.NoError(t, err)

	month := svc.CurrentMonthStats()
	assert.Equal(t, "2024-06", month.Month)
	assert.Equal(t, 1010, month.TotalPunches)
	assert.Equal(t, 7, month.TotalClona)
	assert.Equal(t, 2, month.DaysLogged)
	assert.Zero(t, svc.Lifetime())
}

func TestJournalEditsEarlierDays(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newTestService(t, "2024-06-01", Options{})

	r, _, err := svc.AddRitual(ctx, CandleWhite, "peace")
	require.NoError(t, err)
	in, err := svc.AddInsight(ctx, "saw the silver cord")
	require.NoError(t, err)

	clock.now = localNoon("2024-06-03")
	require.NoError(t, svc.EditRitualNote(ctx, r.ID, "deep peace"))
	require.NoError(t, svc.EditInsight(ctx, in.ID, "saw the silver cord twice"))

	old := svc.Log("2024-06-01")
	assert.Equal(t, "deep peace", old.Rituals[0].Note)
	assert.Equal(t, "saw the silver cord twice", old.Insights[0].Content)
	assert.True(t, old.Insights[0].UpdatedAt.After(old.Insights[0].CreatedAt))
	assert.Equal(t, RitualBonus, old.TotalPoints)
	assert.Equal(t, RitualBonus, svc.Lifetime())

	assert.ErrorIs(t, svc.EditInsight(ctx, "missing", "x"), ErrEntryNotFound)
	assert.ErrorIs(t, svc.EditRitualNote(ctx, "missing", "x"), ErrEntryNotFound)
	var verr ValidationError
	assert.ErrorAs(t, svc.EditInsight(ctx, in.ID, "  "), &verr)

	require.NoError(t, svc.EditRitualNote(ctx, r.ID, "  "))
	assert.Empty(t, svc.Log("2024-06-01").Rituals[0].Note, "a blank edit clears the note")
	assert.Equal(t, RitualBonus, svc.Lifetime())

	assert.Len(t, svc.AllRituals(), 1)
	assert.Equal(t, "2024-06-01", svc.AllInsights()[0].Day)
}

func TestBottleOncePerDay(t *testing.T) {
	ctx := context.Background()
	svc, clock, _ := newTestService(t, "2024-06-01", Options{})

	b, err := svc.CompleteBottle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", b.DayKey)
	assert.True(t, strings.HasPrefix(b.ID, "clona-"))
	assert.True(t, svc.HasBottleToday())

	_, err = svc.CompleteBottle(ctx)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	clock.now = localNoon("2024-06-02")
	_, err = svc.CompleteBottle(ctx)
	require.NoError(t, err)
	history := svc.BottleHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "2024-06-02", history[0].DayKey)

	require.NoError(t, svc.UndoBottle(ctx))
	assert.ErrorIs(t, svc.UndoBottle(ctx), ErrBottleNotDone)
	assert.Len(t, svc.BottleHistory(), 1)
	assert.Zero(t, svc.Lifetime())
}

func TestCustomMissionsPersist(t *testing.T) {
	ctx := context.Background()
	svc, clock, path := newTestService(t, "2024-06-01", Options{})

	m, err := svc.AddCustomMission(ctx, "Swim", 30, CategoryPhysical)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.ID, "custom-"))

	_, err = svc.AddCustomMission(ctx, "Too much", 900, CategoryPhysical)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.CompleteMission(ctx, m.ID)
	require.NoError(t, err)

	reopened := openService(t, openDB(t, path), clock, Options{})
	found := reopened.MissionsByCategory(CategoryPhysical)
	require.NotEmpty(t, found)
	last := found[len(found)-1]
	assert.Equal(t, m.ID, last.ID)
	assert.True(t, last.Custom)
	assert.True(t, last.Completed)
	assert.Equal(t, 30, reopened.Lifetime())
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)
	svc := openService(t, db, &testClock{now: localNoon("2024-06-01")}, Options{})

	require.NoError(t, db.Close())
	_, err := svc.CompleteMission(ctx, "p1")
	require.Error(t, err)

	assert.Zero(t, svc.Lifetime())
	assert.Empty(t, svc.Today().CompletedMissions)
	for _, m := range svc.Missions() {
		assert.False(t, m.Completed)
	}
}

func putDoc(t *testing.T, db *sql.DB, key string, version int, body string) {
	t.Helper()
	require.NoError(t, storage.NewDocumentRepo(db).Put(context.Background(), key, version, []byte(body), time.Now()))
}

const legacyLogs = `{
  "2024-06-01": {
    "date": "2024-06-01",
    "completedMissions": [{"missionId": "ab1", "title": "Registrar insight astral", "points": 40, "category": "emotional", "completedAt": "2024-06-01T15:00:00.000Z"}],
    "totalPoints": 90,
    "practiceSelected": null,
    "runningKm": 2,
    "punches": 10,
    "candleIntentions": [{"color": "red", "intention": "focus", "completedAt": "2024-06-01T22:00:00.000Z"}],
    "astralInsights": ["flew over the city"]
  }
}`

func TestInitMigratesVersionOneDocuments(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)

	putDoc(t, db, KeyDailyLogs, 1, legacyLogs)
	putDoc(t, db, KeyMissions, 1, `[{"id":"ab1","title":"x","points":40,"completed":true,"category":"emotional"}]`)
	putDoc(t, db, KeyCustomTasks, 1, `[{"id":"c1","title":"Swim","points":30,"completed":false,"category":"emotional"}]`)
	putDoc(t, db, KeyLifetimePoints, 1, `90`)
	putDoc(t, db, KeyLastReset, 1, `"2024-06-01"`)

	svc := openService(t, db, &testClock{now: localNoon("2024-06-01")}, Options{})

	log := svc.Log("2024-06-01")
	require.Len(t, log.Rituals, 1)
	assert.Equal(t, CandleRed, log.Rituals[0].Color)
	assert.Equal(t, "focus", log.Rituals[0].Note)
	assert.NotEmpty(t, log.Rituals[0].ID)
	require.Len(t, log.Insights, 1)
	assert.Equal(t, "flew over the city", log.Insights[0].Content)
	assert.Equal(t, CategoryAstralBody, log.CompletedMissions[0].Category)
	assert.Zero(t, log.ClonaDrops)
	assert.Empty(t, log.Practice)
	assert.Equal(t, 90, svc.Lifetime())

	var ab1, c1 Mission
	for _, m := range svc.Missions() {
		switch m.ID {
		case "ab1":
			ab1 = m
		case "c1":
			c1 = m
		}
	}
	assert.True(t, ab1.Completed)
	assert.True(t, c1.Custom)
	assert.Equal(t, CategoryAstralBody, c1.Category)

	_, err := svc.UpdateCounter(ctx, CounterClonaDrops, 3)
	require.NoError(t, err)
	doc, err := storage.NewDocumentRepo(db).Get(ctx, KeyDailyLogs)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
}

func TestInitToleratesCorruptDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)

	putDoc(t, db, KeyDailyLogs, 2, `{
	  "2024-06-01": {"date": "2024-06-01", "completedMissions": [], "totalPoints": 50, "rituals": [{"id": "r", "color": "red", "note": "", "completedAt": "2024-06-01T22:00:00Z"}], "insights": []},
	  "2024-06-02": {"date": "2024-05-02", "completedMissions": [], "totalPoints": 0, "rituals": [], "insights": []},
	  "2024-06-03": {"date": "2024-06-03", "completedMissions": [{"missionId": "p1", "category": "unknown"}], "totalPoints": 0, "rituals": [], "insights": []},
	  "2024-06-04": "garbage"
	}`)
	putDoc(t, db, KeyLifetimePoints, 1, `"abc"`)
	putDoc(t, db, KeyMonthlyHistory, 1, `{not json`)

	svc := openService(t, db, &testClock{now: localNoon("2024-06-05")}, Options{})

	logs := svc.SortedLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-06-01", logs[0].Date)
	assert.Zero(t, svc.Lifetime(), "disagreement is only logged without repair")
	assert.Empty(t, svc.MonthlyHistory())
}

func TestInitRepairsLifetimeWhenAsked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)
	putDoc(t, db, KeyDailyLogs, 2, `{"2024-06-01": {"date": "2024-06-01", "completedMissions": [], "totalPoints": -40, "practiceSelected": "practice1", "rituals": [], "insights": []}}`)
	putDoc(t, db, KeyLifetimePoints, 1, `500`)

	svc := openService(t, db, &testClock{now: localNoon("2024-06-02")}, Options{RepairLifetime: true})
	assert.Equal(t, -40, svc.Lifetime())
	assert.Equal(t, 1, svc.Level())
}

func TestImportLegacyExport(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "2024-06-02", Options{})

	export, err := json.Marshal(map[string]string{
		"ascencao-daily-logs":      legacyLogs,
		"ascencao-lifetime-points": "90",
		"ascencao-last-reset":      "Sat Jun 01 2024",
		"ascencao-missions":        `[{"id":"ab1","title":"x","points":40,"completed":true,"category":"emotional"}]`,
		"sidebar:state":            "true",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Import(ctx, export))
	assert.Equal(t, 90, svc.Lifetime())
	assert.Equal(t, "2024-06-02", svc.CurrentDayKey())
	assert.Len(t, svc.Log("2024-06-01").Rituals, 1)
	for _, m := range svc.Missions() {
		assert.False(t, m.Completed, "stale flags are reset")
	}

	assert.Error(t, svc.Import(ctx, []byte(`{"unrelated": 1}`)))
	assert.Error(t, svc.Import(ctx, []byte(`[`)))
}

func TestSchedulerRollsServiceOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)

	start := time.Now()
	base := time.Date(2024, 6, 2, 3, 59, 59, 980_000_000, utcMinus3)
	resolver := daykey.Default()
	resolver.Now = func() time.Time { return base.Add(time.Since(start)) }

	svc := NewService(db, resolver, logger.Nop(), Options{})
	require.NoError(t, svc.Init(context.Background()))
	require.Equal(t, "2024-06-01", svc.CurrentDayKey())

	fired := make(chan string, 1)
	svc.StartRolloverScheduler(context.Background(), func(day string) { fired <- day })
	defer svc.Teardown()

	select {
	case day := <-fired:
		assert.Equal(t, "2024-06-02", day)
		assert.Equal(t, "2024-06-02", svc.CurrentDayKey())
	case <-time.After(2 * time.Second):
		t.Fatal("rollover did not fire")
	}
}

func TestStatusSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "2024-06-01", Options{})

	_, err := svc.CompleteMission(ctx, "m5")
	require.NoError(t, err)
	_, err = svc.CompleteMission(ctx, "m4")
	require.NoError(t, err)

	st := svc.Status()
	assert.Equal(t, "2024-06-01", st.Day)
	assert.Equal(t, 270, st.Lifetime)
	assert.Equal(t, 730, st.PointsToNext)
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, len(BuiltInCatalog()), st.Total)
	for _, c := range st.Categories {
		if c.Category == CategoryMental {
			assert.Equal(t, 270, c.Points)
			assert.Equal(t, 7, c.Total)
		}
	}
	assert.Greater(t, st.UntilRollover, time.Duration(0))
}

func TestTwoServicesOnOneFileKeepEachOthersWrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	clock := &testClock{now: localNoon("2024-06-01")}
	opts := Options{Catalog: []Mission{
		{ID: "p1", Title: "Run", Points: 90, Category: CategoryPhysical},
		{ID: "p2", Title: "Swim", Points: 50, Category: CategoryPhysical},
	}}

	// a long-running board and a one-shot command, each with its own connection
	board := openService(t, openDB(t, path), clock, opts)
	cli := openService(t, openDB(t, path), clock, opts)

	_, err := cli.CompleteMission(ctx, "p1")
	require.NoError(t, err)

	res, err := board.CompleteMission(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 140, res.Lifetime)
	assert.Equal(t, 140, res.DayTotal)

	reopened := openService(t, openDB(t, path), clock, opts)
	assert.Equal(t, 140, reopened.Lifetime())
	assert.Len(t, reopened.Today().CompletedMissions, 2)
	for _, m := range reopened.Missions() {
		assert.True(t, m.Completed, m.ID)
	}

	// the one-shot side sees the board's write once it refreshes
	require.NoError(t, cli.Refresh(ctx))
	assert.Equal(t, 140, cli.Lifetime())
	assertLifetimeMatchesLedger(t, cli)
}

func TestWriteRacingAnotherProcessIsReplayed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	clock := &testClock{now: localNoon("2024-06-01")}
	opts := Options{Catalog: []Mission{
		{ID: "p1", Title: "Run", Points: 90, Category: CategoryPhysical},
		{ID: "p2", Title: "Swim", Points: 50, Category: CategoryPhysical},
	}}
	svc := openService(t, openDB(t, path), clock, opts)
	other := openService(t, openDB(t, path), clock, opts)

	runs := 0
	res, err := svc.mutate(ctx, func(day string) (int, error) {
		runs++
		if runs == 1 {
			// commits between this service's sync and its write
			_, err := other.CompleteMission(ctx, "p1")
			require.NoError(t, err)
		}
		return svc.completeLocked(day, "p2")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 140, res.Lifetime)

	reopened := openService(t, openDB(t, path), clock, opts)
	assert.Equal(t, 140, reopened.Lifetime())
	assert.Len(t, reopened.Today().CompletedMissions, 2)
}

func TestStatusCategoryPointsKeepCompletionValue(t *testing.T) {
	ctx := context.Background()
	svc, clock, path := newTestService(t, "2024-06-01", Options{
		Catalog: []Mission{{ID: "p1", Title: "Run", Points: 90, Category: CategoryPhysical}},
	})
	_, err := svc.CompleteMission(ctx, "p1")
	require.NoError(t, err)

	// the catalog re-prices the mission later the same day
	repriced := openService(t, openDB(t, path), clock, Options{
		Catalog: []Mission{{ID: "p1", Title: "Run", Points: 120, Category: CategoryPhysical}},
	})
	require.True(t, repriced.Missions()[0].Completed)
	assert.Equal(t, 120, repriced.Missions()[0].Points)

	st := repriced.Status()
	sum := 0
	for _, c := range st.Categories {
		sum += c.Points
		if c.Category == CategoryPhysical {
			assert.Equal(t, 90, c.Points)
			assert.Equal(t, 1, c.Completed)
		}
	}
	assert.Equal(t, st.Today.TotalPoints, sum)
	assert.Equal(t, 90, st.Lifetime)
}
