package storage

import "time"

// DefaultAccount is used when no account is configured.
const DefaultAccount = "local"

type Task struct {
	ID          string
	Account     string
	Title       string
	Description string
	Category    string
	Priority    string
	DueDate     time.Time
	Completed   bool
	CreatedAt   time.Time
	Hidden      bool
	Recurrence  *string // frequency, NULL when the task does not repeat
}

type Progress struct {
	Account    string
	Level      int
	XP         int
	HasStarted bool
	Override   string
	Theme      string
	UpdatedAt  time.Time
}

type ProgressEvent struct {
	ID          int64
	Account     string
	OccurredAt  time.Time
	Kind        string
	ChallengeID *int
	XPAwarded   int
	Level       *int
}
