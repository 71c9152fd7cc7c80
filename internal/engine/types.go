package engine

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Rank orders priorities for display: urgent=0, high=1, medium=2, low=3.
// Unknown values sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// DefaultPriority is used when user input is missing/invalid.
const DefaultPriority Priority = PriorityMedium

// SuggestedCategories is the category list offered by the UI. It is not enforced.
var SuggestedCategories = []string{
	"Work", "Personal", "Health", "Finance", "Home", "Errands", "Learning", "Social",
}

// Recurrence marks a task that repeats after completion.
type Recurrence struct {
	Frequency Frequency `json:"frequency"`
}

type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Priority    Priority    `json:"priority"`
	DueDate     time.Time   `json:"dueDate"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
	Hidden      bool        `json:"hidden"`
	Recurrence  *Recurrence `json:"recurrence"`
}

// NormalizedCategory returns the trimmed category label.
func (t Task) NormalizedCategory() string {
	return strings.TrimSpace(t.Category)
}

// OverrideTier is the administrative bypass level stored with the progression state.
type OverrideTier string

const (
	OverrideNone    OverrideTier = "none"
	OverridePartial OverrideTier = "partial"
	OverrideFull    OverrideTier = "full"
)

func (o OverrideTier) IsValid() bool {
	switch o {
	case OverrideNone, OverridePartial, OverrideFull:
		return true
	default:
		return false
	}
}

// ProgressionState is the per-account level, XP and challenge record.
type ProgressionState struct {
	Level                int          `json:"level"`
	XP                   int          `json:"xp"`
	Challenges           map[int]bool `json:"challenges"`
	HasStartedChallenges bool         `json:"hasStartedChallenges"`
	Override             OverrideTier `json:"override"`
}

// NewProgressionState returns the state of a fresh account: level 1, no XP,
// every catalog challenge incomplete and challenges not yet started.
func NewProgressionState() ProgressionState {
	challenges := make(map[int]bool, len(catalog))
	for _, c := range catalog {
		challenges[c.ID] = false
	}
	return ProgressionState{
		Level:      1,
		XP:         0,
		Challenges: challenges,
		Override:   OverrideNone,
	}
}

// Clone returns a deep copy of the state.
func (s ProgressionState) Clone() ProgressionState {
	out := s
	out.Challenges = make(map[int]bool, len(s.Challenges))
	for id, done := range s.Challenges {
		out.Challenges[id] = done
	}
	return out
}

// CompletedChallenges returns how many challenges are marked complete.
func (s ProgressionState) CompletedChallenges() int {
	n := 0
	for _, done := range s.Challenges {
		if done {
			n++
		}
	}
	return n
}
