package engine

import (
	"errors"
	"fmt"
)

var (
	ErrMissionNotFound         = errors.New("mission not found")
	ErrAlreadyCompleted        = errors.New("already completed today")
	ErrNotCompleted            = errors.New("not completed today")
	ErrPracticeAlreadySelected = errors.New("a practice was already selected today")
	ErrRitualAlreadyDone       = errors.New("ritual already done today")
	ErrEntryNotFound           = errors.New("entry not found")
	ErrBottleNotDone           = errors.New("no bottle completion today")
)

// ValidationError rejects structurally invalid input. It is returned before
// any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
