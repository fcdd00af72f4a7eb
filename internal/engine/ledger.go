package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Ledger holds one DailyLog per day key. Point-bearing operations return the
// signed delta they applied to that day's TotalPoints so the caller can apply
// the same delta to lifetime points.
//
// Logs are created lazily by the first mutation of a day and never deleted.
type Ledger struct {
	logs map[string]*DailyLog
}

func NewLedger(logs map[string]DailyLog) *Ledger {
	l := &Ledger{logs: make(map[string]*DailyLog, len(logs))}
	for k, v := range logs {
		c := v.clone()
		l.logs[k] = &c
	}
	return l
}

func emptyLog(day string) DailyLog {
	return DailyLog{
		Date:              day,
		CompletedMissions: []CompletedMission{},
		Rituals:           []Ritual{},
		Insights:          []Insight{},
	}
}

func (d DailyLog) clone() DailyLog {
	c := d
	c.CompletedMissions = append([]CompletedMission{}, d.CompletedMissions...)
	c.Rituals = append([]Ritual{}, d.Rituals...)
	c.Insights = append([]Insight{}, d.Insights...)
	return c
}

func (l *Ledger) ensure(day string) *DailyLog {
	if log, ok := l.logs[day]; ok {
		return log
	}
	log := emptyLog(day)
	l.logs[day] = &log
	return &log
}

// Log returns a copy of the day's log, or an empty one.
func (l *Ledger) Log(day string) DailyLog {
	if log, ok := l.logs[day]; ok {
		return log.clone()
	}
	return emptyLog(day)
}

// Has reports whether a log has been created for day.
func (l *Ledger) Has(day string) bool {
	_, ok := l.logs[day]
	return ok
}

// Snapshot returns a deep copy of every log, keyed by day.
func (l *Ledger) Snapshot() map[string]DailyLog {
	out := make(map[string]DailyLog, len(l.logs))
	for k, v := range l.logs {
		out[k] = v.clone()
	}
	return out
}

// CompleteMission appends a completion fact. Duplicates are recorded as-is;
// callers guard against double completion.
func (l *Ledger) CompleteMission(day string, m CompletedMission) int {
	log := l.ensure(day)
	log.CompletedMissions = append(log.CompletedMissions, m)
	log.TotalPoints += m.Points
	return m.Points
}

// UncompleteMission removes the most recent fact for missionID on day.
func (l *Ledger) UncompleteMission(day, missionID string) (int, error) {
	log, ok := l.logs[day]
	if !ok {
		return 0, ErrNotCompleted
	}
	for i := len(log.CompletedMissions) - 1; i >= 0; i-- {
		m := log.CompletedMissions[i]
		if m.MissionID != missionID {
			continue
		}
		log.CompletedMissions = append(log.CompletedMissions[:i], log.CompletedMissions[i+1:]...)
		log.TotalPoints -= m.Points
		return -m.Points, nil
	}
	return 0, ErrNotCompleted
}

// SelectPractice applies the practice penalty. Only the first selection of a
// day takes effect.
func (l *Ledger) SelectPractice(day string, p Practice) (int, error) {
	penalty, ok := PracticePenalties[p]
	if !ok {
		return 0, ValidationError{Field: "practice", Reason: fmt.Sprintf("unknown practice %q", p)}
	}
	if existing, ok := l.logs[day]; ok && existing.Practice != "" {
		return 0, ErrPracticeAlreadySelected
	}
	log := l.ensure(day)
	log.Practice = p
	log.TotalPoints += penalty
	return penalty, nil
}

// UpdateCounter clamps value into the counter's range and stores it,
// returning the stored value.
func (l *Ledger) UpdateCounter(day string, c Counter, value float64) (float64, error) {
	r, ok := CounterRanges[c]
	if !ok {
		return 0, ValidationError{Field: "counter", Reason: fmt.Sprintf("unknown counter %q", c)}
	}
	v := r.Clamp(value)
	setCounter(l.ensure(day), c, v)
	return v, nil
}

// AddRitual appends a ritual and awards RitualBonus, once per color per day.
func (l *Ledger) AddRitual(day string, r Ritual) (int, error) {
	if !r.Color.IsValid() {
		return 0, ValidationError{Field: "color", Reason: fmt.Sprintf("unknown candle color %q", r.Color)}
	}
	if existing, ok := l.logs[day]; ok {
		for _, done := range existing.Rituals {
			if done.Color == r.Color {
				return 0, ErrRitualAlreadyDone
			}
		}
	}
	log := l.ensure(day)
	log.Rituals = append(log.Rituals, r)
	log.TotalPoints += RitualBonus
	return RitualBonus, nil
}

// EditRitualNote rewrites the note of a ritual on any day. Points are untouched.
func (l *Ledger) EditRitualNote(id, note string) (string, error) {
	for day, log := range l.logs {
		for i := range log.Rituals {
			if log.Rituals[i].ID == id {
				log.Rituals[i].Note = note
				return day, nil
			}
		}
	}
	return "", ErrEntryNotFound
}

func (l *Ledger) AddInsight(day string, in Insight) {
	log := l.ensure(day)
	log.Insights = append(log.Insights, in)
}

// EditInsight rewrites the content of an insight on any day.
func (l *Ledger) EditInsight(id, content string, at time.Time) (string, error) {
	for day, log := range l.logs {
		for i := range log.Insights {
			if log.Insights[i].ID == id {
				log.Insights[i].Content = content
				log.Insights[i].UpdatedAt = at
				return day, nil
			}
		}
	}
	return "", ErrEntryNotFound
}

// SortedLogs returns every log, most recent first.
func (l *Ledger) SortedLogs() []DailyLog {
	out := make([]DailyLog, 0, len(l.logs))
	for _, log := range l.logs {
		out = append(out, log.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// LogsInRange returns the first n of SortedLogs.
func (l *Ledger) LogsInRange(n int) []DailyLog {
	logs := l.SortedLogs()
	if n < 0 {
		n = 0
	}
	if len(logs) > n {
		logs = logs[:n]
	}
	return logs
}

// Rituals lists every ritual across all days, most recent day first.
func (l *Ledger) Rituals() []RitualEntry {
	var out []RitualEntry
	for _, log := range l.SortedLogs() {
		for _, r := range log.Rituals {
			out = append(out, RitualEntry{Day: log.Date, Ritual: r})
		}
	}
	return out
}

// Insights lists every insight across all days, most recent day first.
func (l *Ledger) Insights() []InsightEntry {
	var out []InsightEntry
	for _, log := range l.SortedLogs() {
		for _, in := range log.Insights {
			out = append(out, InsightEntry{Day: log.Date, Insight: in})
		}
	}
	return out
}

// ExpectedTotal is the sum of every signed point source in a log.
func ExpectedTotal(log DailyLog) int {
	total := 0
	for _, m := range log.CompletedMissions {
		total += m.Points
	}
	total += PracticePenalties[log.Practice]
	total += RitualBonus * len(log.Rituals)
	return total
}

// Normalize fixes logs that were loaded from storage: nil lists become empty,
// counters are clamped, and a TotalPoints that disagrees with its sources is
// recomputed. It returns a description of each fix.
func (l *Ledger) Normalize() []string {
	var fixes []string
	for day, log := range l.logs {
		if log.CompletedMissions == nil {
			log.CompletedMissions = []CompletedMission{}
		}
		if log.Rituals == nil {
			log.Rituals = []Ritual{}
		}
		if log.Insights == nil {
			log.Insights = []Insight{}
		}
		for _, c := range Counters {
			cur := counterValue(log, c)
			if v := CounterRanges[c].Clamp(cur); v != cur {
				setCounter(log, c, v)
				fixes = append(fixes, fmt.Sprintf("%s: %s clamped %v -> %v", day, c, cur, v))
			}
		}
		if want := ExpectedTotal(*log); want != log.TotalPoints {
			fixes = append(fixes, fmt.Sprintf("%s: totalPoints %d -> %d", day, log.TotalPoints, want))
			log.TotalPoints = want
		}
	}
	sort.Strings(fixes)
	return fixes
}

func normalizeText(field, s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ValidationError{Field: field, Reason: "must not be empty"}
	}
	return t, nil
}
