package engine

import (
	"cmp"
	"slices"
)

// SortForDisplay returns the visible tasks in display order: incomplete tasks
// first by priority rank then due date, completed tasks after by due date.
// Hidden tasks are dropped. Ties keep their input order.
func SortForDisplay(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Hidden {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, compareForDisplay)
	return out
}

func compareForDisplay(a, b Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if !a.Completed {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
	}
	return a.DueDate.Compare(b.DueDate)
}
