package engine

import (
	"testing"
	"time"
)

func TestNextDue(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 8, 30, 0, 0, time.UTC)
	}
	cases := []struct {
		name string
		due  time.Time
		f    Frequency
		want time.Time
	}{
		{"daily", day(2026, 3, 2), FrequencyDaily, day(2026, 3, 3)},
		{"daily month end", day(2026, 2, 28), FrequencyDaily, day(2026, 3, 1)},
		{"weekly", day(2026, 3, 2), FrequencyWeekly, day(2026, 3, 9)},
		{"weekly year end", day(2026, 12, 29), FrequencyWeekly, day(2027, 1, 5)},
		{"monthly", day(2026, 3, 15), FrequencyMonthly, day(2026, 4, 15)},
		{"monthly jan 31", day(2026, 1, 31), FrequencyMonthly, day(2026, 2, 28)},
		{"monthly jan 31 leap", day(2028, 1, 31), FrequencyMonthly, day(2028, 2, 29)},
		{"monthly feb 29", day(2028, 2, 29), FrequencyMonthly, day(2028, 3, 29)},
		{"monthly mar 31", day(2026, 3, 31), FrequencyMonthly, day(2026, 4, 30)},
		{"monthly dec", day(2026, 12, 31), FrequencyMonthly, day(2027, 1, 31)},
	}
	for _, tc := range cases {
		got, err := NextDue(tc.due, tc.f)
		if err != nil {
			t.Fatalf("%s: NextDue err=%v", tc.name, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: NextDue(%s)=%s, want %s", tc.name, tc.due.Format(time.DateOnly), got, tc.want)
		}
	}

	if _, err := NextDue(day(2026, 1, 1), "fortnightly"); err == nil {
		t.Fatalf("expected error for unknown frequency")
	}
}

func TestNextDueMonthlyDoesNotDrift(t *testing.T) {
	due := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	var got []int
	for i := 0; i < 3; i++ {
		next, err := NextDue(due, FrequencyMonthly)
		if err != nil {
			t.Fatalf("NextDue err=%v", err)
		}
		got = append(got, int(next.Month()))
		due = next
	}
	want := []int{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("months=%v, want %v", got, want)
		}
	}
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want Frequency
	}{
		{"daily", FrequencyDaily},
		{"Weekly", FrequencyWeekly},
		{"  MONTHLY\n", FrequencyMonthly},
	}
	for _, tc := range cases {
		got, err := ParseFrequency(tc.in)
		if err != nil {
			t.Fatalf("ParseFrequency(%q) err=%v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFrequency(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"", "yearly", "every day", "none"} {
		if _, err := ParseFrequency(in); err == nil {
			t.Fatalf("ParseFrequency(%q) expected error", in)
		}
	}
}
