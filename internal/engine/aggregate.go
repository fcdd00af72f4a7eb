package engine

import (
	"sort"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
)

// MonthSummary is the live rollup of a month that is not archived yet.
type MonthSummary struct {
	MonthlyStats
	DaysLogged int `json:"daysLogged"`
}

// MonthlyCumulative sums the bounded counters of every log in month.
func MonthlyCumulative(logs map[string]DailyLog, month string) MonthSummary {
	out := MonthSummary{MonthlyStats: MonthlyStats{Month: month}}
	for day, log := range logs {
		if daykey.MonthOf(day) != month {
			continue
		}
		out.TotalKm += log.RunningKm
		out.TotalPunches += log.Punches
		out.TotalClona += log.ClonaDrops
		out.DaysLogged++
	}
	return out
}

// ReconcileMonthlyArchive appends a rollup for every month in logs that is
// older than activeMonth and not yet archived. Existing entries are never
// touched. The bool reports whether anything was appended, so a second call
// with the same inputs is a no-op.
func ReconcileMonthlyArchive(logs map[string]DailyLog, archive []MonthlyStats, activeMonth string) ([]MonthlyStats, bool) {
	have := make(map[string]bool, len(archive))
	for _, m := range archive {
		have[m.Month] = true
	}

	pending := map[string]bool{}
	for day := range logs {
		month := daykey.MonthOf(day)
		if month == "" || month >= activeMonth || have[month] {
			continue
		}
		pending[month] = true
	}
	if len(pending) == 0 {
		return archive, false
	}

	months := make([]string, 0, len(pending))
	for m := range pending {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyStats, len(archive), len(archive)+len(months))
	copy(out, archive)
	for _, m := range months {
		out = append(out, MonthlyCumulative(logs, m).MonthlyStats)
	}
	return out, true
}

// LedgerLifetime is the sum of TotalPoints across every log. With no lost
// writes it equals the incrementally maintained lifetime counter.
func LedgerLifetime(logs map[string]DailyLog) int {
	total := 0
	for _, log := range logs {
		total += log.TotalPoints
	}
	return total
}
