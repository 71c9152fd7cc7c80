package engine

// Rank is a cosmetic badge associated with a level threshold.
type Rank struct {
	Level int    `json:"level" yaml:"level"`
	Name  string `json:"name"  yaml:"name"`
	Icon  string `json:"icon"  yaml:"icon"`
}

// ranks is ordered ascending by Level; the first entry has the lowest threshold.
var ranks = []Rank{
	{Level: 1, Name: "Novice", Icon: "🌱"},
	{Level: 2, Name: "Apprentice", Icon: "🌿"},
	{Level: 3, Name: "Organizer", Icon: "🗂️"},
	{Level: 4, Name: "Planner", Icon: "📅"},
	{Level: 5, Name: "Achiever", Icon: "🏅"},
	{Level: 6, Name: "Strategist", Icon: "♟️"},
	{Level: 7, Name: "Taskmaster", Icon: "⚔️"},
	{Level: 8, Name: "Virtuoso", Icon: "🎻"},
	{Level: 9, Name: "Sage", Icon: "🧙"},
	{Level: 10, Name: "Legend", Icon: "🌟"},
	{Level: 11, Name: "Grandmaster", Icon: "👑"},
	{Level: MaxLevel, Name: "Avi", Icon: "🏆"},
}

// Ranks returns a copy of the rank table.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// RankForLevel returns the highest rank whose threshold is <= level,
// falling back to the first rank.
func RankForLevel(level int) Rank {
	best := ranks[0]
	for _, r := range ranks {
		if r.Level <= level {
			best = r
		}
	}
	return best
}

// NextRank returns the first rank above the given level, if any.
func NextRank(level int) (Rank, bool) {
	for _, r := range ranks {
		if r.Level > level {
			return r, true
		}
	}
	return Rank{}, false
}
