package app

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/storage"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrDueDateRequired = errors.New("due date is required")
	ErrInvalidInput    = errors.New("invalid input")
)

// Service is the task store and progression orchestrator for one account.
// Every mutation runs in a single transaction: apply the change, settle the
// progression engine over the full task set, write the result back.
type Service struct {
	db      *sql.DB
	account string

	now   func() time.Time
	newID func() string
	// loc decides where "today" starts for daily counters.
	loc *time.Location
}

func NewService(db *sql.DB, account string) *Service {
	return &Service{
		db:      db,
		account: account,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		loc:     time.Local,
	}
}

func (s *Service) Account() string { return s.account }

// Outcome describes the result of a mutation.
type Outcome struct {
	Task    *engine.Task
	Spawned *engine.Task
	State   engine.ProgressionState
	Events  []engine.Event
}

type repos struct {
	tasks      *storage.TaskRepo
	progress   *storage.ProgressRepo
	challenges *storage.ChallengeRepo
	events     *storage.EventRepo
}

func (s *Service) reposFor(db storage.DBTX) repos {
	return repos{
		tasks:      storage.NewTaskRepo(db, s.account),
		progress:   storage.NewProgressRepo(db, s.account),
		challenges: storage.NewChallengeRepo(db, s.account),
		events:     storage.NewEventRepo(db, s.account),
	}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrTitleRequired
	}
	return t, nil
}

// mutate runs fn and then settles progression inside one transaction.
func (s *Service) mutate(ctx context.Context, fn func(ctx context.Context, r repos, out *Outcome) error) (*Outcome, error) {
	out := &Outcome{}
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r := s.reposFor(tx)
		if err := fn(ctx, r, out); err != nil {
			return err
		}
		return s.settle(ctx, r, out)
	})
	if err != nil {
		return nil, err
	}
	s.logEvents(out.Events)
	return out, nil
}

func (s *Service) settle(ctx context.Context, r repos, out *Outcome) error {
	tasks, err := listTasks(ctx, r.tasks)
	if err != nil {
		return err
	}
	progress, state, err := loadState(ctx, r)
	if err != nil {
		return err
	}
	next, events := engine.Settle(tasks, state)
	if err := s.saveState(ctx, r, progress, next, events); err != nil {
		return err
	}
	out.State = next
	out.Events = events
	return nil
}

func (s *Service) logEvents(events []engine.Event) {
	for _, e := range events {
		switch e.Kind {
		case engine.EventChallengeCompleted:
			log.Info().Str("account", s.account).Int("challenge", e.ChallengeID).Int("xp", e.XPAwarded).Msg("challenge completed")
		case engine.EventLevelUp:
			log.Info().Str("account", s.account).Int("level", e.Level).Msg("level up")
		case engine.EventThemesUnlocked:
			log.Info().Str("account", s.account).Strs("themes", e.Themes).Msg("themes unlocked")
		}
	}
}

func loadState(ctx context.Context, r repos) (*storage.Progress, engine.ProgressionState, error) {
	p, err := r.progress.GetOrCreate(ctx)
	if err != nil {
		return nil, engine.ProgressionState{}, err
	}
	done, err := r.challenges.Completed(ctx)
	if err != nil {
		return nil, engine.ProgressionState{}, err
	}
	state := engine.Reconcile(engine.ProgressionState{
		Level:                p.Level,
		XP:                   p.XP,
		Challenges:           done,
		HasStartedChallenges: p.HasStarted,
		Override:             engine.OverrideTier(p.Override),
	})
	return p, state, nil
}

func (s *Service) saveState(ctx context.Context, r repos, p *storage.Progress, state engine.ProgressionState, events []engine.Event) error {
	now := s.now()
	p.Level = state.Level
	p.XP = state.XP
	p.HasStarted = state.HasStartedChallenges
	p.Override = string(state.Override)
	if engine.CanUseTheme(state, p.Theme) != nil {
		p.Theme = engine.DefaultTheme
	}
	if err := r.progress.Update(ctx, p); err != nil {
		return err
	}
	for _, e := range events {
		row := storage.ProgressEvent{OccurredAt: now, Kind: string(e.Kind), XPAwarded: e.XPAwarded}
		switch e.Kind {
		case engine.EventChallengeCompleted:
			if err := r.challenges.MarkCompleted(ctx, e.ChallengeID, now); err != nil {
				return err
			}
			id := e.ChallengeID
			row.ChallengeID = &id
		case engine.EventLevelUp:
			level := e.Level
			row.Level = &level
		default:
			// Theme notices are derived from the level and not stored.
			continue
		}
		if _, err := r.events.Insert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// State loads the reconciled progression state.
func (s *Service) State(ctx context.Context) (engine.ProgressionState, error) {
	var state engine.ProgressionState
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		_, state, err = loadState(ctx, s.reposFor(tx))
		return err
	})
	return state, err
}
