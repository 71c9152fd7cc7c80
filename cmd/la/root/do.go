package root

import (
	"github.com/spf13/cobra"

	"lifeadmin/internal/ui"
)

func newDoCmd() *cobra.Command {
	return newCompleteCmd("do <id>", "Mark a task completed", true)
}

func newUndoCmd() *cobra.Command {
	return newCompleteCmd("undo <id>", "Mark a task not completed (also un-hides it)", false)
}

func newCompleteCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			out, err := svc.SetCompleted(ctx, id, completed)
			if err != nil {
				return err
			}
			verb := ui.IconDone + " Done"
			if !completed {
				verb = "Reopened"
			}
			printOutcome(cmd.OutOrStdout(), verb, out)
			return nil
		},
	}
}
