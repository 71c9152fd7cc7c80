package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lifeadmin/internal/engine"
)

// Life Admin look (CLI + TUI).
// Small on purpose: reusable styles and a few emojis.

const (
	IconTask     = "📝"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconEye      = "🙈"
	IconLoop     = "🔁"
	IconScroll   = "📜"
	IconCalendar = "📅"
	IconPalette  = "🎨"
	IconLock     = "🔒"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
	Done  = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)

	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary).Underline(true)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func PriorityText(p engine.Priority) string {
	switch p {
	case engine.PriorityUrgent:
		return Bad.Render("urgent")
	case engine.PriorityHigh:
		return Warn.Render("high")
	case engine.PriorityMedium:
		return H2.Render("medium")
	case engine.PriorityLow:
		return Muted.Render("low")
	default:
		return Muted.Render(string(p))
	}
}

// RankBadge renders "🌱 Novice".
func RankBadge(r engine.Rank) string {
	style := H2
	if r.Level >= engine.MaxLevel {
		style = Gold
	}
	return style.Render(strings.TrimSpace(r.Icon + " " + r.Name))
}

// ThemeSwatch renders a short two-colour gradient block for the theme.
func ThemeSwatch(t engine.Theme) string {
	left := lipgloss.NewStyle().Background(lipgloss.Color(t.From)).Render("   ")
	right := lipgloss.NewStyle().Background(lipgloss.Color(t.To)).Render("   ")
	return left + right
}

func EnabledText(ok bool) string {
	if ok {
		return Good.Render("unlocked")
	}
	return Bad.Render("locked")
}
