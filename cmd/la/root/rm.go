package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeadmin/internal/ui"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task (earned challenges are kept)",
		Args:    requireID,
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
			if err := svc.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted "+ui.ShortID(id)))
			return nil
		},
	}
}
