package engine

import (
	"time"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
)

// Reads return copies and reflect the state as of the last rollover or
// mutation. Long-running callers keep the day current with
// StartRolloverScheduler.

// CurrentDayKey is the day the service state belongs to.
func (s *Service) CurrentDayKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// Today returns today's log, empty if nothing was logged yet.
func (s *Service) Today() DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Log(s.day)
}

// Log returns the log of any day, empty if there is none.
func (s *Service) Log(day string) DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Log(day)
}

// SortedLogs returns every log, most recent day first.
func (s *Service) SortedLogs() []DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SortedLogs()
}

// LogsInRange returns the n most recent logs.
func (s *Service) LogsInRange(n int) []DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.LogsInRange(n)
}

func (s *Service) Lifetime() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifetime
}

func (s *Service) Level() int {
	return LevelForPoints(s.Lifetime())
}

// Missions returns the reconciled catalog with today's completion flags.
func (s *Service) Missions() []Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mission(nil), s.missions...)
}

// MissionsByCategory filters Missions to one category.
func (s *Service) MissionsByCategory(c Category) []Mission {
	var out []Mission
	for _, m := range s.Missions() {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// MonthlyHistory returns the archived months, oldest first.
func (s *Service) MonthlyHistory() []MonthlyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MonthlyStats{}, s.archive...)
}

// CurrentMonthStats is the live rollup of the active month.
func (s *Service) CurrentMonthStats() MonthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MonthlyCumulative(s.ledger.Snapshot(), daykey.MonthOf(s.day))
}

// BottleHistory returns every bottle completion, newest first.
func (s *Service) BottleHistory() []BottleCompletion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]BottleCompletion{}, s.bottles...)
}

func (s *Service) HasBottleToday() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hasBottle(s.bottles, s.day)
}

func (s *Service) AllRituals() []RitualEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Rituals()
}

func (s *Service) AllInsights() []InsightEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Insights()
}

// CategoryStats summarizes today's progress in one category.
type CategoryStats struct {
	Category  Category
	Points    int
	Completed int
	Total     int
}

// Status is a snapshot for dashboards.
type Status struct {
	Day           string
	Today         DailyLog
	Lifetime      int
	Level         int
	LevelInto     int
	LevelSize     int
	PointsToNext  int
	Completed     int
	Total         int
	Categories    []CategoryStats
	BottleToday   bool
	NextRollover  time.Time
	UntilRollover time.Duration
	CurrentMonth  MonthSummary
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	into, size := LevelProgress(s.lifetime)
	st := Status{
		Day:           s.day,
		Today:         s.ledger.Log(s.day),
		Lifetime:      s.lifetime,
		Level:         LevelForPoints(s.lifetime),
		LevelInto:     into,
		LevelSize:     size,
		PointsToNext:  PointsToNextLevel(s.lifetime),
		Total:         len(s.missions),
		BottleToday:   hasBottle(s.bottles, s.day),
		NextRollover:  s.resolver.NextRollover(s.resolver.Now()),
		UntilRollover: s.resolver.UntilNextRollover(),
		CurrentMonth:  MonthlyCumulative(s.ledger.Snapshot(), daykey.MonthOf(s.day)),
	}
	byCat := map[Category]*CategoryStats{}
	for _, c := range Categories {
		st.Categories = append(st.Categories, CategoryStats{Category: c})
	}
	for i := range st.Categories {
		byCat[st.Categories[i].Category] = &st.Categories[i]
	}
	for _, m := range s.missions {
		cs := byCat[m.Category]
		if cs == nil {
			continue
		}
		cs.Total++
		if m.Completed {
			cs.Completed++
			st.Completed++
		}
	}
	// Points come from the completion facts, which keep the points a mission
	// was worth when it was completed.
	for _, cm := range st.Today.CompletedMissions {
		if cs := byCat[cm.Category]; cs != nil {
			cs.Points += cm.Points
		}
	}
	return st
}
