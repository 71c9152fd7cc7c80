package storage

import (
	"context"
	"fmt"
	"time"
)

// ChallengeRepo stores which challenges an account has completed.
type ChallengeRepo struct {
	db      DBTX
	account string
}

func NewChallengeRepo(db DBTX, account string) *ChallengeRepo {
	return &ChallengeRepo{db: db, account: account}
}

// Completed returns the completed challenge ids mapped to true.
func (r *ChallengeRepo) Completed(ctx context.Context) (map[int]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT challenge_id FROM challenge_progress WHERE account = ? ORDER BY challenge_id ASC
	`, r.account)
	if err != nil {
		return nil, fmt.Errorf("challenge list: %w", err)
	}
	defer rows.Close()

	out := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("challenge scan: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("challenge rows: %w", err)
	}
	return out, nil
}

func (r *ChallengeRepo) MarkCompleted(ctx context.Context, id int, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO challenge_progress (account, challenge_id, completed_at) VALUES (?, ?, ?)
		ON CONFLICT(account, challenge_id) DO NOTHING
	`, r.account, id, formatTime(at))
	if err != nil {
		return fmt.Errorf("challenge mark completed: %w", err)
	}
	return nil
}

// Replace makes the stored set equal to the ids flagged true in completed.
func (r *ChallengeRepo) Replace(ctx context.Context, completed map[int]bool, at time.Time) error {
	if err := r.DeleteAll(ctx); err != nil {
		return err
	}
	for id, done := range completed {
		if !done {
			continue
		}
		if err := r.MarkCompleted(ctx, id, at); err != nil {
			return err
		}
	}
	return nil
}

func (r *ChallengeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM challenge_progress WHERE account = ?`, r.account); err != nil {
		return fmt.Errorf("challenge delete all: %w", err)
	}
	return nil
}
