package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/storage"
)

// Status is the read model behind `la status` and GET /api/progress.
type Status struct {
	State          engine.ProgressionState `json:"state"`
	Rank           engine.Rank             `json:"rank"`
	NextRank       *engine.Rank            `json:"nextRank,omitempty"`
	XPCurrent      int                     `json:"xpCurrent"`
	XPNeeded       int                     `json:"xpNeeded"`
	Completed      int                     `json:"completedChallenges"`
	Total          int                     `json:"totalChallenges"`
	Themes         []engine.Theme          `json:"unlockedThemes"`
	Theme          string                  `json:"theme"`
	LevelUpsToday  int                     `json:"levelUpsToday"`
	TasksCompleted int                     `json:"tasksCompleted"`
}

// StartChallenges opens the challenge gate and evaluates right away, so tasks
// completed before the gate opened count immediately.
func (s *Service) StartChallenges(ctx context.Context) (*Outcome, error) {
	out, err := s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		p, err := r.progress.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		if p.HasStarted {
			return nil
		}
		p.HasStarted = true
		return r.progress.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("account", s.account).Msg("challenges started")
	return out, nil
}

// Reevaluate settles progression against the current tasks without any
// other change. It is the load-time path after reconciliation.
func (s *Service) Reevaluate(ctx context.Context) (*Outcome, error) {
	return s.mutate(ctx, func(context.Context, repos, *Outcome) error { return nil })
}

// StartOver destroys every task, challenge record and progress row of the
// account. The next read starts from a fresh state.
func (s *Service) StartOver(ctx context.Context) error {
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := s.reposFor(tx)
		if err := r.tasks.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.challenges.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.events.DeleteAll(ctx); err != nil {
			return err
		}
		return r.progress.Delete(ctx)
	})
	if err != nil {
		return err
	}
	log.Info().Str("account", s.account).Msg("progress reset")
	return nil
}

// Override applies an administrative override tier. It bypasses evaluation.
func (s *Service) Override(ctx context.Context, tier engine.OverrideTier) (engine.ProgressionState, error) {
	if !tier.IsValid() {
		return engine.ProgressionState{}, fmt.Errorf("%w: override tier %q", ErrInvalidInput, tier)
	}
	var state engine.ProgressionState
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := s.reposFor(tx)
		p, cur, err := loadState(ctx, r)
		if err != nil {
			return err
		}
		state = engine.ForceState(cur, tier)
		return s.saveState(ctx, r, p, state, nil)
	})
	if err != nil {
		return engine.ProgressionState{}, err
	}
	log.Warn().Str("account", s.account).Str("tier", string(tier)).Msg("override applied")
	return state, nil
}

// SetTheme selects the active theme if it is unlocked.
func (s *Service) SetTheme(ctx context.Context, value string) error {
	if _, ok := engine.ThemeByValue(value); !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, value)
	}
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := s.reposFor(tx)
		p, state, err := loadState(ctx, r)
		if err != nil {
			return err
		}
		if err := engine.CanUseTheme(state, value); err != nil {
			return err
		}
		t, _ := engine.ThemeByValue(value)
		p.Theme = t.Value
		return r.progress.Update(ctx, p)
	})
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	var st Status
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := s.reposFor(tx)
		p, state, err := loadState(ctx, r)
		if err != nil {
			return err
		}
		tasks, err := listTasks(ctx, r.tasks)
		if err != nil {
			return err
		}
		completed, _ := engine.CompletedSet(tasks)

		now := s.now().In(s.loc)
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		ups, err := r.events.CountSince(ctx, string(engine.EventLevelUp), midnight)
		if err != nil {
			return err
		}

		st = Status{
			State:          state,
			Rank:           engine.RankForLevel(state.Level),
			Completed:      state.CompletedChallenges(),
			Total:          len(engine.Catalog()),
			Themes:         engine.UnlockedThemes(state.Level, state.Override),
			Theme:          p.Theme,
			LevelUpsToday:  ups,
			TasksCompleted: len(completed),
		}
		st.XPCurrent, st.XPNeeded = engine.Progress(state)
		if engine.CanUseTheme(state, st.Theme) != nil {
			st.Theme = engine.DefaultTheme
		}
		if next, ok := engine.NextRank(state.Level); ok {
			st.NextRank = &next
		}
		return nil
	})
	return st, err
}

// History returns the most recent persisted progression events, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.ProgressEvent, error) {
	return storage.NewEventRepo(s.db, s.account).ListRecent(ctx, limit)
}

// ReplaceAll swaps the account's tasks and progression for the given ones,
// as an import does. The state is reconciled first and settled afterwards.
func (s *Service) ReplaceAll(ctx context.Context, tasks []engine.Task, state engine.ProgressionState) (*Outcome, error) {
	state = engine.Reconcile(state)
	return s.mutate(ctx, func(ctx context.Context, r repos, out *Outcome) error {
		if err := r.tasks.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.events.DeleteAll(ctx); err != nil {
			return err
		}
		for _, t := range tasks {
			if t.ID == "" {
				t.ID = s.newID()
			}
			if t.CreatedAt.IsZero() {
				t.CreatedAt = s.now()
			}
			if t.Hidden && !t.Completed {
				t.Hidden = false
			}
			if err := r.tasks.Insert(ctx, toRow(t)); err != nil {
				return err
			}
		}
		if err := r.challenges.Replace(ctx, state.Challenges, s.now()); err != nil {
			return err
		}
		p, err := r.progress.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		p.Level = state.Level
		p.XP = state.XP
		p.HasStarted = state.HasStartedChallenges
		p.Override = string(state.Override)
		return r.progress.Update(ctx, p)
	})
}
