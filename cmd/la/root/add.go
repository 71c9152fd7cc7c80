package root

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newAddCmd() *cobra.Command {
	var desc string
	var category string
	var priority string
	var due string
	var repeat string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dueDate, err := engine.ParseDueDate(due, time.Now(), time.Local)
			if err != nil {
				return err
			}
			desc, rec := ui.SplitRecurrence(desc)
			if repeat != "" {
				if rec, err = parseRepeat(repeat); err != nil {
					return err
				}
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := svc.CreateTask(ctx, app.CreateTaskInput{
				Title:       strings.Join(args, " "),
				Description: desc,
				Category:    category,
				Priority:    engine.ParsePriority(priority),
				DueDate:     dueDate,
				Recurrence:  rec,
			})
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), ui.IconPlus+" Added", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (e.g. "+strings.Join(engine.SuggestedCategories, ", ")+")")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVarP(&due, "due", "d", "today", "Due date (YYYY-MM-DD, today, tomorrow, +Nd)")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Repeat after completion (daily|weekly|monthly)")

	return cmd
}

// parseRepeat accepts a frequency or "none".
func parseRepeat(s string) (*engine.Recurrence, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return nil, nil
	}
	f, err := engine.ParseFrequency(s)
	if err != nil {
		return nil, err
	}
	return &engine.Recurrence{Frequency: f}, nil
}
