package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EventRepo keeps an audit trail of progression events.
type EventRepo struct {
	db      DBTX
	account string
}

func NewEventRepo(db DBTX, account string) *EventRepo {
	return &EventRepo{db: db, account: account}
}

func (r *EventRepo) Insert(ctx context.Context, e ProgressEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO progress_events (account, occurred_at, kind, challenge_id, xp_awarded, level)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.account, formatTime(e.OccurredAt), e.Kind, e.ChallengeID, e.XPAwarded, e.Level)
	if err != nil {
		return 0, fmt.Errorf("event insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("event last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit events, newest first.
func (r *EventRepo) ListRecent(ctx context.Context, limit int) ([]ProgressEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account, occurred_at, kind, challenge_id, xp_awarded, level
		FROM progress_events
		WHERE account = ?
		ORDER BY id DESC
		LIMIT ?
	`, r.account, limit)
	if err != nil {
		return nil, fmt.Errorf("event list: %w", err)
	}
	defer rows.Close()

	var out []ProgressEvent
	for rows.Next() {
		var (
			e           ProgressEvent
			occurredAt  string
			challengeID sql.NullInt64
			level       sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Account, &occurredAt, &e.Kind, &challengeID, &e.XPAwarded, &level); err != nil {
			return nil, fmt.Errorf("event scan: %w", err)
		}
		ts, err := parseTime(occurredAt)
		if err != nil {
			return nil, err
		}
		e.OccurredAt = ts
		if challengeID.Valid {
			v := int(challengeID.Int64)
			e.ChallengeID = &v
		}
		if level.Valid {
			v := int(level.Int64)
			e.Level = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event rows: %w", err)
	}
	return out, nil
}

// CountSince counts events of a kind since the given time.
func (r *EventRepo) CountSince(ctx context.Context, kind string, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM progress_events
		WHERE account = ? AND kind = ? AND occurred_at >= ?
	`, r.account, kind, formatTime(since))
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("event count: %w", err)
	}
	return n, nil
}

func (r *EventRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_events WHERE account = ?`, r.account); err != nil {
		return fmt.Errorf("event delete all: %w", err)
	}
	return nil
}
