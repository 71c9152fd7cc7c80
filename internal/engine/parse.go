package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsePriority parses user input to a Priority.
// Supported: low, medium (med), high, urgent (u, asap)
// If input is empty or unrecognized, returns DefaultPriority.
func ParsePriority(input string) Priority {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "low", "l":
		return PriorityLow
	case "medium", "med", "m":
		return PriorityMedium
	case "high", "h":
		return PriorityHigh
	case "urgent", "u", "asap":
		return PriorityUrgent
	default:
		return DefaultPriority
	}
}

// ParseDueDate parses a due date given as YYYY-MM-DD (midnight in loc),
// RFC 3339, "today", "tomorrow" or "+Nd" relative to now.
func ParseDueDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if loc == nil {
		loc = time.Local
	}
	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)

	switch {
	case s == "":
		return time.Time{}, fmt.Errorf("due date is empty")
	case s == "today":
		return today, nil
	case s == "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case strings.HasPrefix(s, "+") && strings.HasSuffix(s, "d"):
		n, err := strconv.Atoi(s[1 : len(s)-1])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid relative due date: %q", input)
		}
		return today.AddDate(0, 0, n), nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(input)); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date: %q (want YYYY-MM-DD)", input)
}
