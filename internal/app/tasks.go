package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/storage"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    engine.Priority
	DueDate     time.Time
	Recurrence  *engine.Recurrence
}

// UpdateTaskInput carries a partial edit. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *engine.Priority
	DueDate     *time.Time
	// Recurrence replaces the current one when SetRecurrence is true; nil clears it.
	Recurrence    *engine.Recurrence
	SetRecurrence bool
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*Outcome, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	priority := in.Priority
	if !priority.IsValid() {
		priority = engine.DefaultPriority
	}
	if err := validateRecurrence(in.Recurrence); err != nil {
		return nil, err
	}

	t := engine.Task{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Priority:    priority,
		DueDate:     in.DueDate.UTC(),
		CreatedAt:   s.now(),
		Recurrence:  in.Recurrence,
	}
	out, err := s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		if err := r.tasks.Insert(ctx, toRow(t)); err != nil {
			return err
		}
		out.Task = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("account", s.account).Str("task", t.ID).Msg("task created")
	return out, nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*Outcome, error) {
	if in.SetRecurrence {
		if err := validateRecurrence(in.Recurrence); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		t, err := getTask(ctx, r.tasks, id)
		if err != nil {
			return err
		}
		if in.Title != nil {
			title, err := normalizeTitle(*in.Title)
			if err != nil {
				return err
			}
			t.Title = title
		}
		if in.Description != nil {
			t.Description = strings.TrimSpace(*in.Description)
		}
		if in.Category != nil {
			t.Category = strings.TrimSpace(*in.Category)
		}
		if in.Priority != nil {
			p := *in.Priority
			if !p.IsValid() {
				p = engine.DefaultPriority
			}
			t.Priority = p
		}
		if in.DueDate != nil {
			if in.DueDate.IsZero() {
				return ErrDueDateRequired
			}
			t.DueDate = in.DueDate.UTC()
		}
		if in.SetRecurrence {
			t.Recurrence = in.Recurrence
		}
		if err := r.tasks.Update(ctx, toRow(t)); err != nil {
			return notFound(err)
		}
		out.Task = &t
		return nil
	})
}

// ToggleTask flips the completion flag of a task.
func (s *Service) ToggleTask(ctx context.Context, id string) (*Outcome, error) {
	return s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		t, err := getTask(ctx, r.tasks, id)
		if err != nil {
			return err
		}
		return s.setCompleted(ctx, r, t, !t.Completed, out)
	})
}

// SetCompleted marks a task complete or incomplete. Completing a recurring
// task creates its next occurrence and moves the recurrence onto it.
// Un-completing a task also un-hides it.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (*Outcome, error) {
	return s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		t, err := getTask(ctx, r.tasks, id)
		if err != nil {
			return err
		}
		return s.setCompleted(ctx, r, t, completed, out)
	})
}

func (s *Service) setCompleted(ctx context.Context, r repos, t engine.Task, completed bool, out *Outcome) error {
	if t.Completed == completed {
		out.Task = &t
		return nil
	}
	t.Completed = completed
	if !completed {
		t.Hidden = false
	}

	if completed && t.Recurrence != nil {
		due, err := engine.NextDue(t.DueDate, t.Recurrence.Frequency)
		if err != nil {
			return err
		}
		next := t
		next.ID = s.newID()
		next.Completed = false
		next.Hidden = false
		next.DueDate = due
		next.CreatedAt = s.now()
		t.Recurrence = nil
		if err := r.tasks.Insert(ctx, toRow(next)); err != nil {
			return err
		}
		out.Spawned = &next
	}

	if err := r.tasks.Update(ctx, toRow(t)); err != nil {
		return notFound(err)
	}
	out.Task = &t
	return nil
}

func (s *Service) HideTask(ctx context.Context, id string) (*Outcome, error) {
	return s.setHidden(ctx, id, true)
}

func (s *Service) UnhideTask(ctx context.Context, id string) (*Outcome, error) {
	return s.setHidden(ctx, id, false)
}

func (s *Service) setHidden(ctx context.Context, id string, hidden bool) (*Outcome, error) {
	return s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		t, err := getTask(ctx, r.tasks, id)
		if err != nil {
			return err
		}
		if hidden {
			if err := engine.CanHide(t); err != nil {
				return err
			}
		}
		t.Hidden = hidden
		if err := r.tasks.Update(ctx, toRow(t)); err != nil {
			return notFound(err)
		}
		out.Task = &t
		return nil
	})
}

// DeleteTask removes a task. Challenges already earned stay earned.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		return notFound(r.tasks.Delete(ctx, id))
	})
	return err
}

// Task returns one task by id.
func (s *Service) Task(ctx context.Context, id string) (engine.Task, error) {
	return getTask(ctx, storage.NewTaskRepo(s.db, s.account), id)
}

// ResolveID expands a unique id prefix to the full task id.
func (s *Service) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrTaskNotFound
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return "", err
	}
	var match string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: id prefix %q is ambiguous", ErrInvalidInput, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", ErrTaskNotFound
	}
	return match, nil
}

// Tasks returns every task, hidden ones included, in creation order.
func (s *Service) Tasks(ctx context.Context) ([]engine.Task, error) {
	return listTasks(ctx, storage.NewTaskRepo(s.db, s.account))
}

// VisibleTasks returns the display-ordered list with hidden tasks removed.
func (s *Service) VisibleTasks(ctx context.Context) ([]engine.Task, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return engine.SortForDisplay(tasks), nil
}

// Calendar returns tasks due in [from, to), hidden ones included.
func (s *Service) Calendar(ctx context.Context, from, to time.Time) ([]engine.Task, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: calendar range end %s is not after %s", ErrInvalidInput, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	rows, err := storage.NewTaskRepo(s.db, s.account).ListDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func validateRecurrence(r *engine.Recurrence) error {
	if r == nil {
		return nil
	}
	if !r.Frequency.IsValid() {
		return fmt.Errorf("%w: frequency %q", ErrInvalidInput, r.Frequency)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNoRows) {
		return ErrTaskNotFound
	}
	return err
}

func getTask(ctx context.Context, repo *storage.TaskRepo, id string) (engine.Task, error) {
	row, err := repo.Get(ctx, id)
	if err != nil {
		return engine.Task{}, err
	}
	if row == nil {
		return engine.Task{}, ErrTaskNotFound
	}
	return fromRow(*row)
}

func listTasks(ctx context.Context, repo *storage.TaskRepo) ([]engine.Task, error) {
	rows, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func toRow(t engine.Task) storage.Task {
	row := storage.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		Hidden:      t.Hidden,
	}
	if t.Recurrence != nil {
		f := string(t.Recurrence.Frequency)
		row.Recurrence = &f
	}
	return row
}

func fromRow(row storage.Task) (engine.Task, error) {
	t := engine.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		Priority:    engine.Priority(row.Priority),
		DueDate:     row.DueDate,
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt,
		Hidden:      row.Hidden,
	}
	if !t.Priority.IsValid() {
		t.Priority = engine.DefaultPriority
	}
	if row.Recurrence != nil {
		f, err := engine.ParseFrequency(*row.Recurrence)
		if err != nil {
			return engine.Task{}, fmt.Errorf("task %s: %w", row.ID, err)
		}
		t.Recurrence = &engine.Recurrence{Frequency: f}
	}
	return t, nil
}

func fromRows(rows []storage.Task) ([]engine.Task, error) {
	out := make([]engine.Task, 0, len(rows))
	for _, row := range rows {
		t, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
