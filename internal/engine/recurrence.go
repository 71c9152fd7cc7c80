package engine

import (
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	f := Frequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// NextDue advances a due date by one period of the frequency. Monthly
// steps keep the day of month, clamped to the length of the target month.
func NextDue(due time.Time, f Frequency) (time.Time, error) {
	switch f {
	case FrequencyDaily:
		return due.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return due.AddDate(0, 0, 7), nil
	case FrequencyMonthly:
		return addMonth(due), nil
	default:
		return time.Time{}, fmt.Errorf("invalid frequency: %q", f)
	}
}

func addMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(d, last), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
