package engine

import "strings"

// DefaultTheme is the value key of the theme every account starts with.
const DefaultTheme = "default"

// TerminalTheme is the value key of the theme reserved for MaxLevel.
const TerminalTheme = "gold"

// Theme is a colour palette unlocked by level progression.
type Theme struct {
	Name          string `json:"name"          yaml:"name"`
	Value         string `json:"value"         yaml:"value"`
	From          string `json:"from"          yaml:"from"`
	To            string `json:"to"            yaml:"to"`
	LevelToUnlock int    `json:"levelToUnlock" yaml:"levelToUnlock"`
}

// themes is ordered ascending by LevelToUnlock and ends with the terminal theme.
// It is the only source of truth for theme unlocks.
var themes = []Theme{
	{Name: "Default", Value: DefaultTheme, From: "#6366f1", To: "#8b5cf6", LevelToUnlock: 1},
	{Name: "Ocean", Value: "ocean", From: "#0ea5e9", To: "#2563eb", LevelToUnlock: 1},
	{Name: "Forest", Value: "forest", From: "#22c55e", To: "#15803d", LevelToUnlock: 1},
	{Name: "Sunset", Value: "sunset", From: "#f97316", To: "#db2777", LevelToUnlock: 2},
	{Name: "Lavender", Value: "lavender", From: "#c084fc", To: "#a78bfa", LevelToUnlock: 2},
	{Name: "Mint", Value: "mint", From: "#6ee7b7", To: "#14b8a6", LevelToUnlock: 2},
	{Name: "Rose", Value: "rose", From: "#fb7185", To: "#e11d48", LevelToUnlock: 3},
	{Name: "Slate", Value: "slate", From: "#64748b", To: "#1e293b", LevelToUnlock: 3},
	{Name: "Amber", Value: "amber", From: "#fbbf24", To: "#d97706", LevelToUnlock: 3},
	{Name: "Midnight", Value: "midnight", From: "#1e3a8a", To: "#0f172a", LevelToUnlock: 4},
	{Name: "Coral", Value: "coral", From: "#fda4af", To: "#f97316", LevelToUnlock: 4},
	{Name: "Aurora", Value: "aurora", From: "#34d399", To: "#818cf8", LevelToUnlock: 4},
	{Name: "Gold", Value: TerminalTheme, From: "#facc15", To: "#b45309", LevelToUnlock: MaxLevel},
}

// Themes returns a copy of the theme catalog.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ThemeByValue looks up a theme by its value key (case-insensitive).
func ThemeByValue(value string) (Theme, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	for _, t := range themes {
		if t.Value == v {
			return t, true
		}
	}
	return Theme{}, false
}

func themeUnlocked(t Theme, level int, override OverrideTier) bool {
	if level >= MaxLevel || override == OverrideFull {
		return true
	}
	if t.Value == TerminalTheme {
		return false
	}
	if override == OverridePartial {
		return true
	}
	return t.LevelToUnlock <= level
}

// UnlockedThemeCount returns how many catalog themes are usable at the level.
func UnlockedThemeCount(level int, override OverrideTier) int {
	n := 0
	for _, t := range themes {
		if themeUnlocked(t, level, override) {
			n++
		}
	}
	return n
}

// UnlockedThemes returns the usable themes in catalog order.
func UnlockedThemes(level int, override OverrideTier) []Theme {
	var out []Theme
	for _, t := range themes {
		if themeUnlocked(t, level, override) {
			out = append(out, t)
		}
	}
	return out
}

// newlyUnlockedThemes returns the names of themes usable at level but not at level-1.
func newlyUnlockedThemes(level int, override OverrideTier) []string {
	var names []string
	for _, t := range themes {
		if themeUnlocked(t, level, override) && !themeUnlocked(t, level-1, override) {
			names = append(names, t.Name)
		}
	}
	return names
}
