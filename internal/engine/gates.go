package engine

import "fmt"

// ChallengeUnlocked reports whether the tier of the challenge is reachable at level.
func ChallengeUnlocked(c Challenge, level int) bool {
	return level >= c.Tier()
}

// CanUseTheme returns an error if the theme is not unlocked for the state.
func CanUseTheme(s ProgressionState, value string) error {
	t, ok := ThemeByValue(value)
	if !ok {
		return fmt.Errorf("unknown theme: %q", value)
	}
	if !themeUnlocked(t, s.Level, s.Override) {
		return GateError{Feature: "theme " + t.Name, RequiredLevel: t.LevelToUnlock}
	}
	return nil
}

// CanHide returns ErrHideIncomplete unless the task is completed.
// Hidden tasks must always be completed ones.
func CanHide(t Task) error {
	if !t.Completed {
		return ErrHideIncomplete
	}
	return nil
}
