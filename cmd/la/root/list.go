package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in display order (incomplete first, by priority then due date)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []engine.Task
			if all {
				tasks, err = svc.Tasks(ctx)
			} else {
				tasks, err = svc.VisibleTasks(ctx)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconTask, "Tasks"))
			if len(tasks) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("Nothing here yet. Add one with `la add`."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintln(w, ui.TaskLine(t))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden tasks (creation order)")

	return cmd
}
