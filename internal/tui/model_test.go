package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
)

func loadedBoard(tasks []engine.Task) boardModel {
	st := app.Status{
		State:    engine.NewProgressionState(),
		Rank:     engine.RankForLevel(1),
		XPNeeded: 100,
		Total:    len(engine.Catalog()),
		Theme:    "default",
	}
	m := newBoardModel(context.Background(), nil)
	next, _ := m.Update(loadedMsg{status: &st, tasks: tasks})
	return next.(boardModel)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardNavigation(t *testing.T) {
	due := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	m := loadedBoard([]engine.Task{
		{ID: "a", Title: "first", Priority: engine.PriorityUrgent, DueDate: due},
		{ID: "b", Title: "second", Priority: engine.PriorityLow, DueDate: due},
	})

	next, _ := m.Update(key("j"))
	m = next.(boardModel)
	next, _ = m.Update(key("j"))
	m = next.(boardModel)
	if m.selected != 1 {
		t.Fatalf("selected=%d, want 1", m.selected)
	}
	next, _ = m.Update(key("k"))
	m = next.(boardModel)
	if m.selected != 0 {
		t.Fatalf("selected=%d, want 0", m.selected)
	}

	view := m.View()
	if !strings.Contains(view, "> [ ] first") {
		t.Fatalf("view missing cursor row:\n%s", view)
	}
	if !strings.Contains(view, "Novice") {
		t.Fatalf("view missing rank:\n%s", view)
	}
}

func TestBoardHideNeedsCompletedTask(t *testing.T) {
	m := loadedBoard([]engine.Task{{ID: "a", Title: "open", Priority: engine.PriorityLow}})

	next, cmd := m.Update(key("h"))
	m = next.(boardModel)
	if cmd != nil {
		t.Fatalf("hide of incomplete task issued a command")
	}
	if m.lastLog != engine.ErrHideIncomplete.Error() {
		t.Fatalf("lastLog=%q", m.lastLog)
	}

	if _, cmd := m.Update(key(" ")); cmd == nil {
		t.Fatalf("space did not issue a toggle command")
	}
}

func TestSummarize(t *testing.T) {
	got := summarize("Toggled", &app.Outcome{Events: []engine.Event{
		{Kind: engine.EventChallengeCompleted, ChallengeID: 5, XPAwarded: 20},
		{Kind: engine.EventLevelUp, Level: 2},
	}})
	if !strings.Contains(got, "level 2") {
		t.Fatalf("summarize=%q", got)
	}

	got = summarize("Toggled", &app.Outcome{Events: []engine.Event{
		{Kind: engine.EventChallengeCompleted, ChallengeID: 1, XPAwarded: 10},
	}})
	if !strings.Contains(got, "+10 XP") {
		t.Fatalf("summarize=%q", got)
	}

	got = summarize("Hid", &app.Outcome{Task: &engine.Task{Title: "x"}})
	if got != `Hid "x".` {
		t.Fatalf("summarize=%q", got)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 100, 10); got != "[#####-----]" {
		t.Fatalf("progressBar=%q", got)
	}
	if got := progressBar(500, 100, 4); got != "[####]" {
		t.Fatalf("progressBar=%q", got)
	}
}
