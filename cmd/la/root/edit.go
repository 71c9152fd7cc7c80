package root

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title string
	var desc string
	var category string
	var priority string
	var due string
	var repeat string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task; only the given flags change",
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			var in app.UpdateTaskInput
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("desc") {
				d, rec := ui.SplitRecurrence(desc)
				in.Description = &d
				if rec != nil {
					in.Recurrence = rec
					in.SetRecurrence = true
				}
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if flags.Changed("priority") {
				p := engine.ParsePriority(priority)
				in.Priority = &p
			}
			if flags.Changed("due") {
				d, err := engine.ParseDueDate(due, time.Now(), time.Local)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			if flags.Changed("repeat") {
				rec, err := parseRepeat(repeat)
				if err != nil {
					return err
				}
				in.Recurrence = rec
				in.SetRecurrence = true
			}
			if in == (app.UpdateTaskInput{}) {
				return errors.New("nothing to change")
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			out, err := svc.UpdateTask(ctx, id, in)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), "Updated", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow, +Nd)")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Repeat (daily|weekly|monthly|none)")

	return cmd
}

func requireID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	return nil
}
