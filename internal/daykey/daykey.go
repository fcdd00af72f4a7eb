// Package daykey maps wall-clock time onto the calendar day that activity is
// bucketed under. A day starts at a fixed rollover hour in a fixed UTC offset,
// so late-night activity still counts toward the previous day.
//
// If the system clock is moved backwards the resolver follows it; day keys are
// then no longer monotonic. That is a known limitation.
package daykey

import (
	"fmt"
	"time"
)

const (
	// Layout is the canonical DayKey format.
	Layout = "2006-01-02"
	// MonthLayout is the canonical MonthKey format.
	MonthLayout = "2006-01"

	DefaultOffsetHours  = -3
	DefaultRolloverHour = 4
)

// Resolver computes day keys for a fixed offset and rollover hour.
type Resolver struct {
	loc          *time.Location
	offsetHours  int
	rolloverHour int

	// Now is the wall clock. Tests replace it.
	Now func() time.Time
}

// New returns a resolver for the given UTC offset (hours) and rollover hour.
func New(offsetHours, rolloverHour int) (*Resolver, error) {
	if offsetHours < -12 || offsetHours > 14 {
		return nil, fmt.Errorf("utc offset %d out of range", offsetHours)
	}
	if rolloverHour < 0 || rolloverHour > 23 {
		return nil, fmt.Errorf("rollover hour %d out of range", rolloverHour)
	}
	return &Resolver{
		loc:          time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600),
		offsetHours:  offsetHours,
		rolloverHour: rolloverHour,
		Now:          time.Now,
	}, nil
}

// Default returns the UTC-3 / 04:00 resolver.
func Default() *Resolver {
	r, _ := New(DefaultOffsetHours, DefaultRolloverHour)
	return r
}

func (r *Resolver) OffsetHours() int  { return r.offsetHours }
func (r *Resolver) RolloverHour() int { return r.rolloverHour }

// DayKeyAt returns the day key that t belongs to.
func (r *Resolver) DayKeyAt(t time.Time) string {
	local := t.In(r.loc)
	if local.Hour() < r.rolloverHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(Layout)
}

// CurrentDayKey returns today's key.
func (r *Resolver) CurrentDayKey() string {
	return r.DayKeyAt(r.Now())
}

// IsDayKey reports whether candidate is today's key.
func (r *Resolver) IsDayKey(candidate string) bool {
	return candidate == r.CurrentDayKey()
}

// NextRollover returns the first rollover instant strictly after t.
func (r *Resolver) NextRollover(t time.Time) time.Time {
	local := t.In(r.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), r.rolloverHour, 0, 0, 0, r.loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// UntilNextRollover is never negative.
func (r *Resolver) UntilNextRollover() time.Duration {
	now := r.Now()
	d := r.NextRollover(now).Sub(now)
	for d < 0 {
		d += 24 * time.Hour
	}
	return d
}

// MillisUntilNextRollover is UntilNextRollover in milliseconds.
func (r *Resolver) MillisUntilNextRollover() int64 {
	return r.UntilNextRollover().Milliseconds()
}

// CurrentMonth returns the month key of today's day key.
func (r *Resolver) CurrentMonth() string {
	return MonthOf(r.CurrentDayKey())
}

// MonthOf returns the YYYY-MM prefix of a day key. Malformed keys return "".
func MonthOf(dayKey string) string {
	if _, err := time.Parse(Layout, dayKey); err != nil {
		return ""
	}
	return dayKey[:len(MonthLayout)]
}

// Valid reports whether s is a well-formed day key.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}
