package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type TaskRepo struct {
	db      DBTX
	account string
}

func NewTaskRepo(db DBTX, account string) *TaskRepo {
	return &TaskRepo{db: db, account: account}
}

const taskColumns = `id, account, title, description, category, priority, due_date, completed, created_at, hidden, recurrence`

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, r.account, t.Title, t.Description, t.Category, t.Priority, formatTime(t.DueDate),
		boolToInt(t.Completed), formatTime(t.CreatedAt), boolToInt(t.Hidden), t.Recurrence)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

// Update rewrites every mutable column. created_at and account never change.
func (r *TaskRepo) Update(ctx context.Context, t Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, category = ?, priority = ?, due_date = ?,
			completed = ?, hidden = ?, recurrence = ?
		WHERE id = ? AND account = ?
	`, t.Title, t.Description, t.Category, t.Priority, formatTime(t.DueDate),
		boolToInt(t.Completed), boolToInt(t.Hidden), t.Recurrence, t.ID, r.account)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return requireOneRow(res, "task update")
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ? AND account = ?
	`, id, r.account)
	return scanTaskRow(row)
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE account = ?
		ORDER BY created_at ASC, id ASC
	`, r.account)
}

// ListDueBetween returns tasks due in [from, to), hidden ones included.
func (r *TaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE account = ? AND due_date >= ? AND due_date < ?
		ORDER BY due_date ASC, id ASC
	`, r.account, formatTime(from), formatTime(to))
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND account = ?`, id, r.account)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return requireOneRow(res, "task delete")
}

func (r *TaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE account = ?`, r.account); err != nil {
		return fmt.Errorf("task delete all: %w", err)
	}
	return nil
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// ErrNoRows is returned by updates and deletes that matched nothing.
var ErrNoRows = errors.New("no matching row")

func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRows)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t          Task
		dueDate    string
		createdAt  string
		completed  int
		hidden     int
		recurrence sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.Account, &t.Title, &t.Description, &t.Category, &t.Priority,
		&dueDate, &completed, &createdAt, &hidden, &recurrence,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	var err error
	if t.DueDate, err = parseTime(dueDate); err != nil {
		return nil, fmt.Errorf("task %s due_date: %w", t.ID, err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("task %s created_at: %w", t.ID, err)
	}
	t.Completed = completed != 0
	t.Hidden = hidden != 0
	if recurrence.Valid {
		v := recurrence.String
		t.Recurrence = &v
	}
	return &t, nil
}
