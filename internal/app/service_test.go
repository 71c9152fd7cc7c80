package app

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/storage"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "lifeadmin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestService(t *testing.T, db *sql.DB, account string) *Service {
	t.Helper()
	s := NewService(db, account)
	s.now = func() time.Time { return testNow }
	s.loc = time.UTC
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("%s-%d", account, n)
	}
	return s
}

func mustCreate(t *testing.T, s *Service, title string, p engine.Priority, category string) engine.Task {
	t.Helper()
	out, err := s.CreateTask(context.Background(), CreateTaskInput{
		Title:    title,
		Category: category,
		Priority: p,
		DueDate:  testNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	return *out.Task
}

func eventKinds(events []engine.Event) []engine.EventKind {
	var out []engine.EventKind
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)

	_, err := s.CreateTask(ctx, CreateTaskInput{Title: "   ", DueDate: testNow})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = s.CreateTask(ctx, CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrDueDateRequired)

	_, err = s.CreateTask(ctx, CreateTaskInput{Title: "x", DueDate: testNow, Recurrence: &engine.Recurrence{Frequency: "yearly"}})
	assert.Error(t, err)

	out, err := s.CreateTask(ctx, CreateTaskInput{Title: "  Renew passport ", Category: " Errands ", Priority: "whenever", DueDate: testNow})
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", out.Task.Title)
	assert.Equal(t, "Errands", out.Task.Category)
	assert.Equal(t, engine.DefaultPriority, out.Task.Priority)
	assert.Equal(t, testNow, out.Task.CreatedAt)

	got, err := s.Task(ctx, out.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, *out.Task, got)
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	task := mustCreate(t, s, "Call dentist", engine.PriorityLow, "Health")

	title := "Call dentist again"
	prio := engine.PriorityUrgent
	out, err := s.UpdateTask(ctx, task.ID, UpdateTaskInput{
		Title:         &title,
		Priority:      &prio,
		Recurrence:    &engine.Recurrence{Frequency: engine.FrequencyMonthly},
		SetRecurrence: true,
	})
	require.NoError(t, err)
	assert.Equal(t, title, out.Task.Title)
	assert.Equal(t, engine.PriorityUrgent, out.Task.Priority)
	assert.Equal(t, "Health", out.Task.Category)
	require.NotNil(t, out.Task.Recurrence)
	assert.Equal(t, engine.FrequencyMonthly, out.Task.Recurrence.Frequency)

	empty := " "
	_, err = s.UpdateTask(ctx, task.ID, UpdateTaskInput{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = s.UpdateTask(ctx, "missing", UpdateTaskInput{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCompletionsBeforeStartCountOnStart(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	task := mustCreate(t, s, "Water plants", engine.PriorityLow, "")

	out, err := s.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.Empty(t, out.Events)
	assert.Equal(t, 0, out.State.XP)

	out, err = s.StartChallenges(ctx)
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, engine.Event{Kind: engine.EventChallengeCompleted, ChallengeID: 1, XPAwarded: 10}, out.Events[0])
	assert.True(t, out.State.HasStartedChallenges)
	assert.Equal(t, 10, out.State.XP)

	// A second start is a no-op.
	out, err = s.StartChallenges(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Events)
	assert.Equal(t, 10, out.State.XP)
}

func TestProgressionIsPersisted(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := newTestService(t, db, storage.DefaultAccount)
	_, err := s.StartChallenges(ctx)
	require.NoError(t, err)

	tasks := []engine.Task{
		mustCreate(t, s, "a", engine.PriorityHigh, "Work"),
		mustCreate(t, s, "b", engine.PriorityLow, "Home"),
		mustCreate(t, s, "c", engine.PriorityLow, ""),
		mustCreate(t, s, "d", engine.PriorityLow, "  "),
		mustCreate(t, s, "e", engine.PriorityMedium, ""),
	}
	var last *Outcome
	for _, task := range tasks {
		last, err = s.ToggleTask(ctx, task.ID)
		require.NoError(t, err)
	}

	// The fifth completion crosses level 2, which unlocks challenge 13 (three low priority tasks).
	assert.Equal(t, []engine.EventKind{
		engine.EventChallengeCompleted,
		engine.EventLevelUp,
		engine.EventThemesUnlocked,
		engine.EventChallengeCompleted,
	}, eventKinds(last.Events))
	assert.Equal(t, 5, last.Events[0].ChallengeID)
	assert.Equal(t, 13, last.Events[3].ChallengeID)
	assert.Equal(t, 2, last.State.Level)
	assert.Equal(t, 30, last.State.XP)

	// A fresh service on the same database sees the same state.
	state, err := NewService(db, storage.DefaultAccount).State(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.State, state)
	assert.Equal(t, 7, state.CompletedChallenges())

	history, err := s.History(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, history, 8)

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Apprentice", st.Rank.Name)
	require.NotNil(t, st.NextRank)
	assert.Equal(t, 3, st.NextRank.Level)
	assert.Equal(t, 30, st.XPCurrent)
	assert.Equal(t, 200, st.XPNeeded)
	assert.Len(t, st.Themes, 6)
	assert.Equal(t, 1, st.LevelUpsToday)
	assert.Equal(t, 5, st.TasksCompleted)
	assert.Equal(t, 77, st.Total)
}

func TestUncompletingKeepsEarnedChallenges(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	_, err := s.StartChallenges(ctx)
	require.NoError(t, err)
	task := mustCreate(t, s, "a", engine.PriorityLow, "")

	_, err = s.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	out, err := s.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, out.Task.Completed)
	assert.Empty(t, out.Events)
	assert.True(t, out.State.Challenges[1])
	assert.Equal(t, 10, out.State.XP)

	// Completing again awards nothing new.
	out, err = s.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Empty(t, out.Events)
	assert.Equal(t, 10, out.State.XP)
}

func TestHideRequiresCompletion(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	task := mustCreate(t, s, "File taxes", engine.PriorityHigh, "Finance")

	_, err := s.HideTask(ctx, task.ID)
	assert.ErrorIs(t, err, engine.ErrHideIncomplete)

	_, err = s.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	out, err := s.HideTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, out.Task.Hidden)

	visible, err := s.VisibleTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	out, err = s.SetCompleted(ctx, task.ID, false)
	require.NoError(t, err)
	assert.False(t, out.Task.Hidden)

	_, err = s.HideTask(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestHiddenCompletedTaskStillCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	task := mustCreate(t, s, "a", engine.PriorityLow, "")
	_, err := s.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	_, err = s.HideTask(ctx, task.ID)
	require.NoError(t, err)

	out, err := s.StartChallenges(ctx)
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, 1, out.Events[0].ChallengeID)
}

func TestRecurringTaskSpawnsNextOccurrence(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	due := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)
	created, err := s.CreateTask(ctx, CreateTaskInput{
		Title:      "Pay rent",
		Category:   "Finance",
		Priority:   engine.PriorityUrgent,
		DueDate:    due,
		Recurrence: &engine.Recurrence{Frequency: engine.FrequencyMonthly},
	})
	require.NoError(t, err)

	out, err := s.ToggleTask(ctx, created.Task.ID)
	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.Nil(t, out.Task.Recurrence)
	require.NotNil(t, out.Spawned)
	assert.False(t, out.Spawned.Completed)
	assert.Equal(t, "Pay rent", out.Spawned.Title)
	assert.Equal(t, engine.PriorityUrgent, out.Spawned.Priority)
	// Jan 31 clamps to the end of February.
	assert.Equal(t, time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC), out.Spawned.DueDate)
	require.NotNil(t, out.Spawned.Recurrence)
	assert.Equal(t, engine.FrequencyMonthly, out.Spawned.Recurrence.Frequency)
	assert.NotEqual(t, created.Task.ID, out.Spawned.ID)

	all, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Un-completing the original does not spawn again.
	out, err = s.ToggleTask(ctx, created.Task.ID)
	require.NoError(t, err)
	assert.Nil(t, out.Spawned)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	task := mustCreate(t, s, "a", engine.PriorityLow, "")

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, task.ID), ErrTaskNotFound)
	_, err := s.Task(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []int{-1, 0, 6, 7} {
		_, err := s.CreateTask(ctx, CreateTaskInput{Title: fmt.Sprintf("t%d", i), DueDate: day.AddDate(0, 0, offset).Add(10 * time.Hour)})
		require.NoError(t, err)
	}

	got, err := s.Calendar(ctx, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].Title)
	assert.Equal(t, "t2", got[1].Title)

	_, err = s.Calendar(ctx, day, day)
	assert.Error(t, err)
}

func TestStartOver(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	_, err := s.StartChallenges(ctx)
	require.NoError(t, err)
	task := mustCreate(t, s, "a", engine.PriorityLow, "")
	_, err = s.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, s.StartOver(ctx))

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.NewProgressionState(), state)
	all, err := s.Tasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	history, err := s.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOverride(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)

	state, err := s.Override(ctx, engine.OverridePartial)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, engine.OverridePartial, state.Override)
	require.NoError(t, s.SetTheme(ctx, "aurora"))
	var gate engine.GateError
	assert.ErrorAs(t, s.SetTheme(ctx, engine.TerminalTheme), &gate)

	state, err = s.Override(ctx, engine.OverrideFull)
	require.NoError(t, err)
	assert.Equal(t, engine.MaxLevel, state.Level)
	assert.Equal(t, 0, state.XP)
	assert.True(t, state.HasStartedChallenges)
	require.NoError(t, s.SetTheme(ctx, engine.TerminalTheme))

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Avi", st.Rank.Name)
	assert.Nil(t, st.NextRank)
	assert.Len(t, st.Themes, len(engine.Themes()))
	assert.Equal(t, engine.TerminalTheme, st.Theme)

	_, err = s.Override(ctx, "cheat")
	assert.Error(t, err)
}

func TestSetThemeGatedByLevel(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)

	require.NoError(t, s.SetTheme(ctx, "ocean"))
	var gate engine.GateError
	require.ErrorAs(t, s.SetTheme(ctx, "sunset"), &gate)
	assert.Equal(t, 2, gate.RequiredLevel)
	assert.Error(t, s.SetTheme(ctx, "plaid"))

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ocean", st.Theme)
}

func TestAccountsAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	alice := newTestService(t, db, "alice")
	bob := newTestService(t, db, "bob")

	_, err := alice.StartChallenges(ctx)
	require.NoError(t, err)
	task := mustCreate(t, alice, "a", engine.PriorityLow, "")
	_, err = alice.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	state, err := bob.State(ctx)
	require.NoError(t, err)
	assert.False(t, state.HasStartedChallenges)
	assert.Equal(t, 0, state.CompletedChallenges())
	tasks, err := bob.Tasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = bob.ToggleTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestLoadReconcilesStoredState(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	progress := storage.NewProgressRepo(db, storage.DefaultAccount)
	p, err := progress.GetOrCreate(ctx)
	require.NoError(t, err)
	p.Level = 2
	p.XP = 250
	p.Override = "sideways"
	require.NoError(t, progress.Update(ctx, p))
	// Challenge rows for ids outside the catalog are ignored.
	require.NoError(t, storage.NewChallengeRepo(db, storage.DefaultAccount).MarkCompleted(ctx, 999, testNow))

	s := newTestService(t, db, storage.DefaultAccount)
	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Level)
	assert.Equal(t, 50, state.XP)
	assert.Equal(t, engine.OverrideNone, state.Override)
	assert.Len(t, state.Challenges, 77)
	assert.Equal(t, 0, state.CompletedChallenges())
}

func TestReplaceAll(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	mustCreate(t, s, "old", engine.PriorityLow, "")

	state := engine.NewProgressionState()
	state.HasStartedChallenges = true
	state.Challenges[1] = true
	state.XP = 10
	imported := []engine.Task{
		{ID: "i1", Title: "imported", Priority: engine.PriorityHigh, DueDate: testNow, Completed: true, CreatedAt: testNow, Hidden: true},
		{Title: "no id", Priority: engine.PriorityLow, DueDate: testNow, Hidden: true},
	}

	out, err := s.ReplaceAll(ctx, imported, state)
	require.NoError(t, err)
	// Challenge 3 (first high priority task) is earned on import.
	require.Len(t, out.Events, 1)
	assert.Equal(t, 3, out.Events[0].ChallengeID)
	assert.Equal(t, 25, out.State.XP)

	all, err := s.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	byTitle := map[string]engine.Task{}
	for _, task := range all {
		byTitle[task.Title] = task
	}
	assert.True(t, byTitle["imported"].Hidden)
	assert.False(t, byTitle["no id"].Hidden)
	assert.NotEmpty(t, byTitle["no id"].ID)
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	ids := []string{"abc123", "abd456", "xyz789"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	for i := 0; i < 3; i++ {
		mustCreate(t, s, "t", engine.PriorityLow, "")
	}

	got, err := s.ResolveID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	got, err = s.ResolveID(ctx, "xyz789")
	require.NoError(t, err)
	assert.Equal(t, "xyz789", got)

	_, err = s.ResolveID(ctx, "ab")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.ResolveID(ctx, "q")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestLevelUpSettlesNewTierInSameMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)
	_, err := s.StartChallenges(ctx)
	require.NoError(t, err)

	tasks := []engine.Task{
		mustCreate(t, s, "a", engine.PriorityHigh, "Work"),
		mustCreate(t, s, "b", engine.PriorityLow, "Home"),
		mustCreate(t, s, "c", engine.PriorityLow, ""),
		mustCreate(t, s, "d", engine.PriorityLow, ""),
		mustCreate(t, s, "e", engine.PriorityMedium, ""),
	}
	for _, task := range tasks[:4] {
		_, err = s.ToggleTask(ctx, task.ID)
		require.NoError(t, err)
	}
	before, err := s.State(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, before.Level)

	out, err := s.ToggleTask(ctx, tasks[4].ID)
	require.NoError(t, err)

	// A single engine pass stops at the level up; the tier 2 challenge
	// waits for a later pass.
	all, err := s.Tasks(ctx)
	require.NoError(t, err)
	_, single := engine.Evaluate(all, before)
	for _, e := range single {
		assert.NotEqual(t, 13, e.ChallengeID)
	}

	// The service settles to a fixed point, so the same action awards it.
	assert.Equal(t, 2, out.State.Level)
	assert.True(t, out.State.Challenges[13])
	var ids []int
	for _, e := range out.Events {
		if e.Kind == engine.EventChallengeCompleted {
			ids = append(ids, e.ChallengeID)
		}
	}
	assert.Contains(t, ids, 13)
}

func TestLevelUpsTodayUsesLocalDay(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := newTestService(t, db, storage.DefaultAccount)
	// testNow is 19:00 on Mar 2 at UTC+10, so the local day began at 14:00 UTC on Mar 1.
	s.loc = time.FixedZone("UTC+10", 10*60*60)

	events := storage.NewEventRepo(db, storage.DefaultAccount)
	for _, at := range []time.Time{
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), // Mar 1 20:00 local
		time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC), // Mar 2 06:00 local
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),  // Mar 2 18:00 local
	} {
		level := 2
		_, err := events.Insert(ctx, storage.ProgressEvent{OccurredAt: at, Kind: string(engine.EventLevelUp), Level: &level})
		require.NoError(t, err)
	}

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.LevelUpsToday)
}

func TestClearingOverrideResetsLockedTheme(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, openTestDB(t), storage.DefaultAccount)

	_, err := s.Override(ctx, engine.OverridePartial)
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ctx, "aurora"))

	_, err = s.Override(ctx, engine.OverrideNone)
	require.NoError(t, err)
	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultTheme, st.Theme)

	// The stored selection was reset, not just hidden.
	_, err = s.Override(ctx, engine.OverridePartial)
	require.NoError(t, err)
	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultTheme, st.Theme)

	// A theme still unlocked survives.
	require.NoError(t, s.SetTheme(ctx, "ocean"))
	_, err = s.Override(ctx, engine.OverrideNone)
	require.NoError(t, err)
	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ocean", st.Theme)
}
