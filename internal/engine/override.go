package engine

// ForceState applies an administrative override outside of Evaluate.
//
//   - OverrideFull jumps to MaxLevel with zero XP and starts challenges.
//   - OverridePartial only records the tier, unlocking every non-terminal theme.
//   - OverrideNone clears the tier and leaves level and XP untouched.
func ForceState(s ProgressionState, tier OverrideTier) ProgressionState {
	out := s.Clone()
	switch tier {
	case OverrideFull:
		out.Level = MaxLevel
		out.XP = 0
		out.HasStartedChallenges = true
		out.Override = OverrideFull
	case OverridePartial:
		out.Override = OverridePartial
	default:
		out.Override = OverrideNone
	}
	return out
}

// Reconcile repairs a state loaded from storage against the current catalog.
// Catalog ids missing from the stored map are incomplete, unknown ids are
// dropped, and out-of-range numbers are clamped. XP at or above the current
// threshold is rolled over; no XP is ever added.
func Reconcile(stored ProgressionState) ProgressionState {
	out := NewProgressionState()
	for id := range out.Challenges {
		out.Challenges[id] = stored.Challenges[id]
	}
	out.HasStartedChallenges = stored.HasStartedChallenges
	if stored.Override.IsValid() {
		out.Override = stored.Override
	}

	level := stored.Level
	if level < 1 {
		level = 1
	}
	xp := stored.XP
	if xp < 0 {
		xp = 0
	}
	out.XP, out.Level, _ = rollover(level, xp)
	return out
}
