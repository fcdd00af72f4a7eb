package engine

import (
	"context"
)

// AddCustomMission validates and stores a user-defined mission. Custom
// missions are permanent; there is no delete.
func (s *Service) AddCustomMission(ctx context.Context, title string, points int, category Category) (*Mission, error) {
	m, err := NewCustomMission(s.newID(), title, points, category)
	if err != nil {
		return nil, err
	}
	m.ID = "custom-" + m.ID
	_, err = s.mutate(ctx, func(string) (int, error) {
		s.custom = append(s.custom, m)
		s.missions = Reconcile(s.builtIn, s.custom, s.missions)
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("custom mission added", "id", m.ID, "points", m.Points, "category", m.Category)
	return &m, nil
}
