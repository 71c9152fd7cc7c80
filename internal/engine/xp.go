package engine

// XPPerLevel scales the XP threshold of each level: level L consumes L*XPPerLevel.
const XPPerLevel = 100

// MaxLevel is the terminal level reached by the full override.
const MaxLevel = 100

// XPThreshold returns the XP needed to leave the given level.
func XPThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// rollover spends XP on level-ups. Each iteration consumes the threshold of the
// level before it is incremented. It returns the remaining XP, the final level,
// and every level reached in ascending order.
func rollover(level int, total int) (int, int, []int) {
	if level < 1 {
		level = 1
	}
	var reached []int
	for total >= XPThreshold(level) {
		total -= XPThreshold(level)
		level++
		reached = append(reached, level)
	}
	return total, level, reached
}

// Progress returns XP collected in the current level and the threshold to level up.
func Progress(s ProgressionState) (current int, needed int) {
	return s.XP, XPThreshold(s.Level)
}
