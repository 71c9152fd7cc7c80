package ui

import (
	"fmt"
	"strings"
	"time"

	"lifeadmin/internal/engine"
)

const repeatsPrefix = "Repeats:"

// FormatRecurrence renders the legacy "Repeats: <freq>" label, or "" for none.
func FormatRecurrence(r *engine.Recurrence) string {
	if r == nil {
		return ""
	}
	return repeatsPrefix + " " + string(r.Frequency)
}

// SplitRecurrence pulls a "Repeats: <freq>" line out of a description.
// Older exports stored recurrence that way. Lines with an unknown
// frequency are left in the description.
func SplitRecurrence(description string) (string, *engine.Recurrence) {
	var (
		kept []string
		rec  *engine.Recurrence
	)
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if rec == nil && len(trimmed) >= len(repeatsPrefix) && strings.EqualFold(trimmed[:len(repeatsPrefix)], repeatsPrefix) {
			if f, err := engine.ParseFrequency(trimmed[len(repeatsPrefix):]); err == nil {
				rec = &engine.Recurrence{Frequency: f}
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), rec
}

// TaskLine renders one task row for `la list` and `la calendar`.
func TaskLine(t engine.Task) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = Good.Render("[x]")
		title = Done.Render(title)
	}
	parts := []string{check, title, PriorityText(t.Priority)}
	if c := t.NormalizedCategory(); c != "" {
		parts = append(parts, Muted.Render("#"+c))
	}
	parts = append(parts, Muted.Render("due "+t.DueDate.Local().Format(time.DateOnly)))
	if t.Recurrence != nil {
		parts = append(parts, IconLoop)
	}
	if t.Hidden {
		parts = append(parts, IconEye)
	}
	parts = append(parts, Dim.Render(ShortID(t.ID)))
	return strings.Join(parts, " ")
}

// ShortID trims a uuid for display. Commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatEvent renders a progression event as a single line.
func FormatEvent(e engine.Event) string {
	switch e.Kind {
	case engine.EventChallengeCompleted:
		text := fmt.Sprintf("challenge #%d", e.ChallengeID)
		if c, ok := engine.ChallengeByID(e.ChallengeID); ok {
			text = c.Text
		}
		return fmt.Sprintf("%s %s %s", IconTrophy, text, Gold.Render(fmt.Sprintf("+%d XP", e.XPAwarded)))
	case engine.EventLevelUp:
		return fmt.Sprintf("%s %s level %d, %s", IconBolt, BadgeLevelUp, e.Level, RankBadge(engine.RankForLevel(e.Level)))
	case engine.EventThemesUnlocked:
		return fmt.Sprintf("%s New themes: %s", IconPalette, strings.Join(e.Themes, ", "))
	default:
		return string(e.Kind)
	}
}

// XPLine renders "xp/needed XP".
func XPLine(s engine.ProgressionState) string {
	cur, needed := engine.Progress(s)
	return fmt.Sprintf("%d/%d XP", cur, needed)
}
