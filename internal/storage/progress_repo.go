package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type ProgressRepo struct {
	db      DBTX
	account string
}

func NewProgressRepo(db DBTX, account string) *ProgressRepo {
	return &ProgressRepo{db: db, account: account}
}

func (r *ProgressRepo) Get(ctx context.Context) (*Progress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT account, level, xp, has_started, override, theme, updated_at
		FROM progression
		WHERE account = ?
	`, r.account)

	var (
		p         Progress
		started   int
		updatedAt string
	)
	if err := row.Scan(&p.Account, &p.Level, &p.XP, &started, &p.Override, &p.Theme, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}
	ts, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("progress updated_at: %w", err)
	}
	p.HasStarted = started != 0
	p.UpdatedAt = ts
	return &p, nil
}

func (r *ProgressRepo) GetOrCreate(ctx context.Context) (*Progress, error) {
	p, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO progression (account, updated_at) VALUES (?, ?)`,
		r.account, formatTime(time.Now())); err != nil {
		return nil, fmt.Errorf("progress insert: %w", err)
	}
	return r.Get(ctx)
}

func (r *ProgressRepo) Update(ctx context.Context, p *Progress) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE progression
		SET level = ?, xp = ?, has_started = ?, override = ?, theme = ?, updated_at = ?
		WHERE account = ?
	`, p.Level, p.XP, boolToInt(p.HasStarted), p.Override, p.Theme, formatTime(p.UpdatedAt), r.account)
	if err != nil {
		return fmt.Errorf("progress update: %w", err)
	}
	return requireOneRow(res, "progress update")
}

func (r *ProgressRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progression WHERE account = ?`, r.account); err != nil {
		return fmt.Errorf("progress delete: %w", err)
	}
	return nil
}
