package engine

import (
	"context"
)

// SelectPractice applies today's practice penalty. Once a practice is chosen
// the day is locked: later calls return ErrPracticeAlreadySelected and change
// nothing.
func (s *Service) SelectPractice(ctx context.Context, p Practice) (*MutationResult, error) {
	return s.mutate(ctx, func(day string) (int, error) {
		return s.ledger.SelectPractice(day, p)
	})
}

// CounterResult is the value actually stored after clamping.
type CounterResult struct {
	Counter Counter
	Value   float64
	Clamped bool
}

// UpdateCounter sets one of today's progress counters. Out of range values are
// clamped, not rejected.
func (s *Service) UpdateCounter(ctx context.Context, c Counter, value float64) (*CounterResult, error) {
	var stored float64
	_, err := s.mutate(ctx, func(day string) (int, error) {
		v, err := s.ledger.UpdateCounter(day, c, value)
		stored = v
		return 0, err
	})
	if err != nil {
		return nil, err
	}
	if stored != value {
		s.log.Debug("counter clamped", "counter", c, "requested", value, "stored", stored)
	}
	return &CounterResult{Counter: c, Value: stored, Clamped: stored != value}, nil
}
