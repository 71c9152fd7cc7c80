package root

import (
	"github.com/spf13/cobra"

	"lifeadmin/internal/ui"
)

func newHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <id>",
		Short: "Hide a completed task from the list",
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
			out, err := svc.HideTask(ctx, id)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), ui.IconEye+" Hidden", out)
			return nil
		},
	}
}

func newUnhideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unhide <id>",
		Short: "Show a hidden task again",
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
			out, err := svc.UnhideTask(ctx, id)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), "Visible", out)
			return nil
		},
	}
}
