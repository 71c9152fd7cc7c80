package engine

import (
	"errors"
	"fmt"
)

// ErrHideIncomplete is returned when hiding a task that is not completed.
var ErrHideIncomplete = errors.New("only completed tasks can be hidden")

// GateError indicates a feature is locked behind a required level.
// This is returned by gate checks and should be shown to the user.
type GateError struct {
	Feature       string
	RequiredLevel int
}

func (e GateError) Error() string {
	if e.RequiredLevel <= 0 {
		return fmt.Sprintf("'%s' is locked", e.Feature)
	}
	return fmt.Sprintf("'%s' unlocks at level %d", e.Feature, e.RequiredLevel)
}
