package engine

import (
	"context"
)

// CompleteBottle records today's clona bottle. It counts once per day and
// carries no points.
func (s *Service) CompleteBottle(ctx context.Context) (*BottleCompletion, error) {
	var b BottleCompletion
	_, err := s.mutate(ctx, func(day string) (int, error) {
		if hasBottle(s.bottles, day) {
			return 0, ErrAlreadyCompleted
		}
		b = BottleCompletion{ID: "clona-" + s.newID(), CompletedAt: s.now(), DayKey: day}
		s.bottles = append([]BottleCompletion{b}, s.bottles...)
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UndoBottle removes today's most recent bottle completion.
func (s *Service) UndoBottle(ctx context.Context) error {
	_, err := s.mutate(ctx, func(day string) (int, error) {
		for i, b := range s.bottles {
			if b.DayKey == day {
				s.bottles = append(s.bottles[:i:i], s.bottles[i+1:]...)
				return 0, nil
			}
		}
		return 0, ErrBottleNotDone
	})
	return err
}

func hasBottle(history []BottleCompletion, day string) bool {
	for _, b := range history {
		if b.DayKey == day {
			return true
		}
	}
	return false
}
