package engine

import (
	"fmt"
	"strings"
)

const (
	// ChallengesPerTier is how many consecutive challenge ids share an unlock tier.
	ChallengesPerTier = 7

	// MaxTier caps the tier derived from a challenge id.
	MaxTier = 11
)

type PredicateKind string

const (
	PredicateCompletedCount  PredicateKind = "completed_count"
	PredicatePriorityCount   PredicateKind = "priority_count"
	PredicateCategoryPresent PredicateKind = "category_present"
	PredicateCategoryCount   PredicateKind = "category_count"
)

// Predicate is a declarative rule over the completed tasks of an account.
// Only the fields relevant to Kind are set.
type Predicate struct {
	Kind     PredicateKind `json:"kind"               yaml:"kind"`
	N        int           `json:"n,omitempty"        yaml:"n,omitempty"`
	Priority Priority      `json:"priority,omitempty" yaml:"priority,omitempty"`
	Category string        `json:"category,omitempty" yaml:"category,omitempty"`
}

// Holds reports whether the predicate is satisfied. completed must contain
// only completed tasks and categories their distinct trimmed categories.
func (p Predicate) Holds(completed []Task, categories map[string]struct{}) bool {
	switch p.Kind {
	case PredicateCompletedCount:
		return len(completed) >= p.N
	case PredicatePriorityCount:
		n := 0
		for _, t := range completed {
			if t.Priority == p.Priority {
				n++
			}
		}
		return n >= p.N
	case PredicateCategoryPresent:
		want := strings.TrimSpace(p.Category)
		for c := range categories {
			if strings.EqualFold(c, want) {
				return true
			}
		}
		return false
	case PredicateCategoryCount:
		return len(categories) >= p.N
	default:
		return false
	}
}

// Describe renders the predicate as challenge text.
func (p Predicate) Describe() string {
	switch p.Kind {
	case PredicateCompletedCount:
		if p.N == 1 {
			return "Complete your first task"
		}
		return fmt.Sprintf("Complete %d tasks", p.N)
	case PredicatePriorityCount:
		if p.N == 1 {
			return fmt.Sprintf("Complete %s %s priority task", article(string(p.Priority)), p.Priority)
		}
		return fmt.Sprintf("Complete %d %s priority tasks", p.N, p.Priority)
	case PredicateCategoryPresent:
		return fmt.Sprintf("Complete a task in %s", p.Category)
	case PredicateCategoryCount:
		return fmt.Sprintf("Complete tasks in %d different categories", p.N)
	default:
		return string(p.Kind)
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

// Challenge is a static catalog entry.
type Challenge struct {
	ID        int       `json:"id"        yaml:"id"`
	Text      string    `json:"text"      yaml:"text"`
	XP        int       `json:"xp"        yaml:"xp"`
	Predicate Predicate `json:"predicate" yaml:"predicate"`
}

// Tier returns the unlock tier of the challenge.
func (c Challenge) Tier() int {
	return TierForChallenge(c.ID)
}

// TierForChallenge computes ceil(id/ChallengesPerTier), capped at MaxTier.
func TierForChallenge(id int) int {
	if id < 1 {
		return 1
	}
	tier := (id + ChallengesPerTier - 1) / ChallengesPerTier
	if tier > MaxTier {
		return MaxTier
	}
	return tier
}

// Catalog returns a copy of the challenge catalog in ascending id order.
func Catalog() []Challenge {
	out := make([]Challenge, len(catalog))
	copy(out, catalog)
	return out
}

// ChallengeByID looks up a catalog entry.
func ChallengeByID(id int) (Challenge, bool) {
	if id < 1 || id > len(catalog) {
		return Challenge{}, false
	}
	return catalog[id-1], true
}

func completedCount(id, xp, n int) Challenge {
	return newChallenge(id, xp, Predicate{Kind: PredicateCompletedCount, N: n})
}

func priorityCount(id, xp int, p Priority, n int) Challenge {
	return newChallenge(id, xp, Predicate{Kind: PredicatePriorityCount, Priority: p, N: n})
}

func categoryPresent(id, xp int, category string) Challenge {
	return newChallenge(id, xp, Predicate{Kind: PredicateCategoryPresent, Category: category})
}

func categoryCount(id, xp, n int) Challenge {
	return newChallenge(id, xp, Predicate{Kind: PredicateCategoryCount, N: n})
}

func newChallenge(id, xp int, p Predicate) Challenge {
	return Challenge{ID: id, Text: p.Describe(), XP: xp, Predicate: p}
}

// catalog must stay sorted by id with ids 1..len(catalog); ChallengeByID relies on it.
var catalog = []Challenge{
	// Tier 1
	completedCount(1, 10, 1),
	completedCount(2, 15, 3),
	priorityCount(3, 15, PriorityHigh, 1),
	categoryPresent(4, 15, "Work"),
	completedCount(5, 20, 5),
	priorityCount(6, 20, PriorityUrgent, 1),
	categoryCount(7, 25, 2),

	// Tier 2
	completedCount(8, 20, 8),
	categoryPresent(9, 20, "Personal"),
	categoryPresent(10, 25, "Health"),
	priorityCount(11, 25, PriorityHigh, 3),
	priorityCount(12, 30, PriorityUrgent, 2),
	priorityCount(13, 30, PriorityLow, 3),
	categoryCount(14, 35, 3),

	// Tier 3
	completedCount(15, 30, 12),
	categoryPresent(16, 30, "Finance"),
	categoryPresent(17, 30, "Home"),
	priorityCount(18, 35, PriorityMedium, 5),
	priorityCount(19, 35, PriorityHigh, 5),
	completedCount(20, 40, 15),
	categoryCount(21, 45, 4),

	// Tier 4
	completedCount(22, 40, 20),
	categoryPresent(23, 40, "Errands"),
	priorityCount(24, 45, PriorityUrgent, 4),
	priorityCount(25, 45, PriorityLow, 6),
	categoryPresent(26, 45, "Learning"),
	priorityCount(27, 50, PriorityHigh, 8),
	categoryCount(28, 55, 5),

	// Tier 5
	completedCount(29, 50, 25),
	categoryPresent(30, 50, "Social"),
	priorityCount(31, 55, PriorityMedium, 10),
	priorityCount(32, 55, PriorityUrgent, 6),
	completedCount(33, 60, 30),
	priorityCount(34, 60, PriorityHigh, 12),
	categoryCount(35, 70, 6),

	// Tier 6
	completedCount(36, 60, 35),
	priorityCount(37, 60, PriorityLow, 10),
	priorityCount(38, 65, PriorityUrgent, 8),
	priorityCount(39, 65, PriorityMedium, 15),
	completedCount(40, 70, 40),
	priorityCount(41, 70, PriorityHigh, 15),
	categoryCount(42, 80, 7),

	// Tier 7
	completedCount(43, 70, 45),
	priorityCount(44, 75, PriorityUrgent, 10),
	priorityCount(45, 75, PriorityLow, 15),
	completedCount(46, 80, 50),
	priorityCount(47, 80, PriorityMedium, 20),
	priorityCount(48, 85, PriorityHigh, 20),
	categoryCount(49, 90, 8),

	// Tier 8
	completedCount(50, 80, 60),
	priorityCount(51, 85, PriorityUrgent, 12),
	priorityCount(52, 85, PriorityLow, 20),
	priorityCount(53, 90, PriorityMedium, 25),
	completedCount(54, 90, 70),
	priorityCount(55, 95, PriorityHigh, 25),
	priorityCount(56, 100, PriorityUrgent, 15),

	// Tier 9
	completedCount(57, 90, 80),
	priorityCount(58, 95, PriorityLow, 25),
	priorityCount(59, 95, PriorityMedium, 30),
	priorityCount(60, 100, PriorityHigh, 30),
	completedCount(61, 100, 90),
	priorityCount(62, 105, PriorityUrgent, 20),
	completedCount(63, 120, 100),

	// Tier 10
	completedCount(64, 100, 110),
	priorityCount(65, 105, PriorityLow, 30),
	priorityCount(66, 105, PriorityMedium, 40),
	priorityCount(67, 110, PriorityHigh, 40),
	priorityCount(68, 115, PriorityUrgent, 25),
	completedCount(69, 120, 125),
	completedCount(70, 140, 150),

	// Tier 11
	completedCount(71, 120, 175),
	priorityCount(72, 125, PriorityMedium, 50),
	priorityCount(73, 130, PriorityHigh, 50),
	priorityCount(74, 135, PriorityUrgent, 30),
	priorityCount(75, 135, PriorityLow, 40),
	completedCount(76, 150, 200),
	completedCount(77, 200, 250),
}
