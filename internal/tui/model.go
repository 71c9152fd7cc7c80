package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *app.Service

	width  int
	height int

	status *app.Status
	tasks  []engine.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status *app.Status
	tasks  []engine.Task
	err    error
}

type mutatedMsg struct {
	verb string
	out  *app.Outcome
	err  error
}

func newBoardModel(ctx context.Context, svc *app.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.VisibleTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{status: &st, tasks: tasks}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.ToggleTask(m.ctx, id)
		return mutatedMsg{verb: "Toggled", out: out, err: err}
	}
}

func (m boardModel) hideCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.HideTask(m.ctx, id)
		return mutatedMsg{verb: "Hid", out: out, err: err}
	}
}

func (m boardModel) startCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.StartChallenges(m.ctx)
		return mutatedMsg{verb: "Started challenges", out: out, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		refreshing := m.loading
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.tasks = msg.tasks
		m.clampSelection()
		if refreshing {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = msg.verb + " failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = summarize(msg.verb, msg.out)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "s":
			if m.status != nil && m.status.State.HasStartedChallenges {
				m.lastLog = "Challenges already started."
				return m, nil
			}
			return m, m.startCmd()
		case "c", " ", "enter":
			t := m.current()
			if t == nil {
				return m, nil
			}
			return m, m.toggleCmd(t.ID)
		case "h":
			t := m.current()
			if t == nil {
				return m, nil
			}
			if err := engine.CanHide(*t); err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			return m, m.hideCmd(t.ID)
		}
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) current() *engine.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}

// summarize keeps the most notable event of a mutation for the footer.
func summarize(verb string, out *app.Outcome) string {
	if out == nil {
		return verb + "."
	}
	for _, e := range out.Events {
		if e.Kind == engine.EventLevelUp {
			return ui.FormatEvent(e)
		}
	}
	completed := 0
	for _, e := range out.Events {
		if e.Kind == engine.EventChallengeCompleted {
			completed++
		}
	}
	if completed > 0 {
		return fmt.Sprintf("%s %d challenge(s) completed, +%d XP", ui.IconTrophy, completed, engine.XPGained(out.Events))
	}
	if out.Spawned != nil {
		return fmt.Sprintf("%s. Next occurrence due %s.", verb, out.Spawned.DueDate.Local().Format(time.DateOnly))
	}
	if out.Task != nil {
		return fmt.Sprintf("%s %q.", verb, out.Task.Title)
	}
	return verb + "."
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return "Life Admin — loading…"
	}
	st := m.status
	return fmt.Sprintf("Life Admin | %s | Level %d | %s %s",
		st.Rank.Icon+" "+st.Rank.Name, st.State.Level, ui.XPLine(st.State), progressBar(st.XPCurrent, st.XPNeeded, 30))
}

func (m boardModel) renderSidebar() string {
	if m.status == nil {
		return "Progress\n\nLoading…"
	}
	st := m.status
	lines := []string{"Progress"}
	if st.State.HasStartedChallenges {
		lines = append(lines, fmt.Sprintf("- challenges %d/%d", st.Completed, st.Total))
	} else {
		lines = append(lines, "- challenges not started (s)")
	}
	lines = append(lines, fmt.Sprintf("- themes %d/%d", len(st.Themes), len(engine.Themes())))
	lines = append(lines, fmt.Sprintf("- theme %s", st.Theme))
	if st.NextRank != nil {
		lines = append(lines, fmt.Sprintf("- next rank %s at L%d", st.NextRank.Name, st.NextRank.Level))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space/c: toggle done")
	lines = append(lines, "- h: hide completed")
	lines = append(lines, "- s: start challenges")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{ui.PanelTitle.Render("Tasks")}
	if len(m.tasks) == 0 {
		out = append(out, "(nothing to do)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		repeat := ""
		if t.Recurrence != nil {
			repeat = " " + ui.IconLoop
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s, due %s)%s",
			cursor, check, t.Title, t.Priority, t.DueDate.Local().Format("Jan 02"), repeat))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
