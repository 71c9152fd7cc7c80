package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newCalendarCmd() *cobra.Command {
	var from string
	var days int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks by due day (hidden ones included)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if days < 1 {
				return errors.New("--days must be at least 1")
			}
			start, err := engine.ParseDueDate(from, time.Now(), time.Local)
			if err != nil {
				return err
			}
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
			end := start.AddDate(0, 0, days)

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.Calendar(ctx, start, end)
			if err != nil {
				return err
			}

			byDay := map[string][]engine.Task{}
			for _, t := range tasks {
				key := t.DueDate.Local().Format(time.DateOnly)
				byDay[key] = append(byDay[key], t)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconCalendar, fmt.Sprintf("%s to %s", start.Format(time.DateOnly), end.AddDate(0, 0, -1).Format(time.DateOnly))))
			for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
				key := d.Format(time.DateOnly)
				list := byDay[key]
				if len(list) == 0 {
					continue
				}
				fmt.Fprintln(w, ui.H2.Render(d.Format("Mon Jan 02")))
				for _, t := range list {
					fmt.Fprintln(w, "  "+ui.TaskLine(t))
				}
			}
			if len(tasks) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("Nothing due."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "today", "First day (YYYY-MM-DD, today, tomorrow, +Nd)")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")

	return cmd
}
