package engine

import "math"

// Counter names a bounded per-day progress counter.
type Counter string

const (
	CounterRunningKm  Counter = "runningKm"
	CounterPunches    Counter = "punches"
	CounterClonaDrops Counter = "clonaDrops"
)

var Counters = []Counter{CounterRunningKm, CounterPunches, CounterClonaDrops}

// CounterRange is the inclusive [Min, Max] of a counter. Integer counters are
// rounded to the nearest whole number before clamping.
type CounterRange struct {
	Min     float64
	Max     float64
	Integer bool
}

var CounterRanges = map[Counter]CounterRange{
	CounterRunningKm:  {Min: 0, Max: 5},
	CounterPunches:    {Min: 0, Max: 1000, Integer: true},
	CounterClonaDrops: {Min: 0, Max: 50, Integer: true},
}

func (r CounterRange) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Integer {
		v = math.Round(v)
	}
	return math.Min(r.Max, math.Max(r.Min, v))
}

func counterValue(l *DailyLog, c Counter) float64 {
	switch c {
	case CounterRunningKm:
		return l.RunningKm
	case CounterPunches:
		return float64(l.Punches)
	case CounterClonaDrops:
		return float64(l.ClonaDrops)
	default:
		return 0
	}
}

func setCounter(l *DailyLog, c Counter, v float64) {
	switch c {
	case CounterRunningKm:
		l.RunningKm = v
	case CounterPunches:
		l.Punches = int(v)
	case CounterClonaDrops:
		l.ClonaDrops = int(v)
	}
}

// CounterValue reads a counter from a log snapshot.
func (l DailyLog) CounterValue(c Counter) float64 {
	return counterValue(&l, c)
}
