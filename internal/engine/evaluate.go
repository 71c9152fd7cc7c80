package engine

import "strings"

type EventKind string

const (
	EventChallengeCompleted EventKind = "challenge_completed"
	EventLevelUp            EventKind = "level_up"
	EventThemesUnlocked     EventKind = "themes_unlocked"
)

// Event is a side effect of Evaluate for the presentation layer to render.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind `json:"kind"`
	ChallengeID int       `json:"challengeId,omitempty"`
	XPAwarded   int       `json:"xpAwarded,omitempty"`
	Level       int       `json:"level,omitempty"`
	Themes      []string  `json:"themes,omitempty"`
}

// CompletedSet returns the completed tasks (hidden ones included) and the set
// of their distinct non-empty trimmed categories.
func CompletedSet(tasks []Task) ([]Task, map[string]struct{}) {
	var completed []Task
	categories := map[string]struct{}{}
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		completed = append(completed, t)
		if c := strings.TrimSpace(t.Category); c != "" {
			categories[c] = struct{}{}
		}
	}
	return completed, categories
}

// Evaluate completes every unlocked challenge whose predicate holds for tasks,
// awards its XP and applies level-up rollover. It never mutates state.
//
// Events are ordered: challenge completions by id, then level-ups ascending,
// then theme unlock notices. Nothing is evaluated until challenges are started.
func Evaluate(tasks []Task, state ProgressionState) (ProgressionState, []Event) {
	out := state.Clone()
	if !state.HasStartedChallenges {
		return out, nil
	}

	completed, categories := CompletedSet(tasks)

	var events []Event
	gained := 0
	for _, c := range catalog {
		if out.Challenges[c.ID] {
			continue
		}
		if !ChallengeUnlocked(c, state.Level) {
			continue
		}
		if !c.Predicate.Holds(completed, categories) {
			continue
		}
		out.Challenges[c.ID] = true
		gained += c.XP
		events = append(events, Event{Kind: EventChallengeCompleted, ChallengeID: c.ID, XPAwarded: c.XP})
	}
	if gained == 0 {
		return out, events
	}

	xp, level, reached := rollover(out.Level, out.XP+gained)
	out.XP = xp
	out.Level = level
	for _, l := range reached {
		events = append(events, Event{Kind: EventLevelUp, Level: l})
	}
	for _, l := range reached {
		if names := newlyUnlockedThemes(l, out.Override); len(names) > 0 {
			events = append(events, Event{Kind: EventThemesUnlocked, Level: l, Themes: names})
		}
	}
	return out, events
}

// XPGained sums the XP of challenge completion events.
func XPGained(events []Event) int {
	total := 0
	for _, e := range events {
		if e.Kind == EventChallengeCompleted {
			total += e.XPAwarded
		}
	}
	return total
}

// Settle repeats Evaluate until it yields no events, so challenges in tiers
// reached by a level-up are checked against the same tasks. Each pass that
// yields events completes at least one challenge, which bounds the loop by the
// catalog size.
func Settle(tasks []Task, state ProgressionState) (ProgressionState, []Event) {
	cur := state
	var all []Event
	for i := 0; i < len(catalog)+1; i++ {
		next, events := Evaluate(tasks, cur)
		cur = next
		if len(events) == 0 {
			break
		}
		all = append(all, events...)
	}
	if len(all) == 0 {
		return state.Clone(), nil
	}
	return cur, all
}
