package engine

import (
	"context"
	"strings"
)

// AddRitual records a candle ritual for today and awards RitualBonus. Each
// color counts once per day.
func (s *Service) AddRitual(ctx context.Context, color CandleColor, note string) (*Ritual, *MutationResult, error) {
	r := Ritual{ID: s.newID(), Color: color, Note: strings.TrimSpace(note)}
	res, err := s.mutate(ctx, func(day string) (int, error) {
		r.CompletedAt = s.now()
		return s.ledger.AddRitual(day, r)
	})
	if err != nil {
		return nil, nil, err
	}
	return &r, res, nil
}

// EditRitualNote rewrites a ritual's note on whichever day it was logged.
// Notes are optional, so an empty note clears it. Points do not change.
func (s *Service) EditRitualNote(ctx context.Context, id, note string) error {
	text := strings.TrimSpace(note)
	_, err := s.mutate(ctx, func(string) (int, error) {
		_, err := s.ledger.EditRitualNote(id, text)
		return 0, err
	})
	return err
}

// AddInsight appends a free-text entry to today's log.
func (s *Service) AddInsight(ctx context.Context, content string) (*Insight, error) {
	text, err := normalizeText("content", content)
	if err != nil {
		return nil, err
	}
	in := Insight{ID: s.newID(), Content: text}
	_, err = s.mutate(ctx, func(day string) (int, error) {
		in.CreatedAt = s.now()
		in.UpdatedAt = in.CreatedAt
		s.ledger.AddInsight(day, in)
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// EditInsight rewrites an insight on whichever day it was logged.
func (s *Service) EditInsight(ctx context.Context, id, content string) error {
	text, err := normalizeText("content", content)
	if err != nil {
		return err
	}
	_, err = s.mutate(ctx, func(string) (int, error) {
		_, err := s.ledger.EditInsight(id, text, s.now())
		return 0, err
	})
	return err
}
