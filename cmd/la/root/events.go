package root

import (
	"fmt"
	"io"
	"time"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

// printOutcome reports a mutation: the task line, any spawned occurrence and
// every progression event.
func printOutcome(w io.Writer, verb string, out *app.Outcome) {
	if out.Task != nil {
		fmt.Fprintf(w, "%s %s\n", ui.Good.Render(verb), ui.TaskLine(*out.Task))
	}
	if out.Spawned != nil {
		fmt.Fprintf(w, "%s next occurrence due %s %s %s\n",
			ui.IconLoop, out.Spawned.DueDate.Local().Format(time.DateOnly),
			ui.Muted.Render("("+ui.FormatRecurrence(out.Spawned.Recurrence)+")"), ui.Dim.Render(ui.ShortID(out.Spawned.ID)))
	}
	printEvents(w, out.Events)
	if len(out.Events) > 0 {
		fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("Level %d, %s", out.State.Level, ui.XPLine(out.State))))
	}
}

func printEvents(w io.Writer, events []engine.Event) {
	for _, e := range events {
		fmt.Fprintln(w, ui.FormatEvent(e))
	}
}
