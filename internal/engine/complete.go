package engine

import (
	"context"
	"errors"
)

// CompleteMission marks a catalog mission done for today and records the
// completion fact with the mission definition as it is now.
func (s *Service) CompleteMission(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, func(day string) (int, error) {
		return s.completeLocked(day, id)
	})
}

func (s *Service) completeLocked(day, id string) (int, error) {
	i, ok := findMission(s.missions, id)
	if !ok {
		return 0, ErrMissionNotFound
	}
	m := s.missions[i]
	if m.Completed {
		return 0, ErrAlreadyCompleted
	}
	delta := s.ledger.CompleteMission(day, CompletedMission{
		MissionID:   m.ID,
		Title:       m.Title,
		Points:      m.Points,
		Category:    m.Category,
		CompletedAt: s.now(),
	})
	s.missions[i].Completed = true
	return delta, nil
}

// UncompleteMission reverses today's completion of a mission, subtracting the
// points that were recorded for it. Completions on earlier days are history
// and cannot be reversed.
func (s *Service) UncompleteMission(ctx context.Context, id string) (*MutationResult, error) {
	return s.mutate(ctx, func(day string) (int, error) {
		i, inCatalog := findMission(s.missions, id)
		delta, err := s.ledger.UncompleteMission(day, id)
		if err != nil {
			// A flag without a fact can only come from a lost write; clear it.
			if errors.Is(err, ErrNotCompleted) && inCatalog && s.missions[i].Completed {
				s.log.Warn("mission flagged done without a completion fact", "mission", id, "day", day)
				s.missions[i].Completed = false
				return 0, nil
			}
			return 0, err
		}
		if inCatalog {
			s.missions[i].Completed = false
		}
		return delta, nil
	})
}

// ToggleMission completes the mission if it is open and reverses it otherwise.
func (s *Service) ToggleMission(ctx context.Context, id string) (*MutationResult, error) {
	s.mu.Lock()
	if err := s.syncLocked(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	i, ok := findMission(s.missions, id)
	done := ok && s.missions[i].Completed
	s.mu.Unlock()
	if !ok {
		return nil, ErrMissionNotFound
	}
	if done {
		return s.UncompleteMission(ctx, id)
	}
	return s.CompleteMission(ctx, id)
}
