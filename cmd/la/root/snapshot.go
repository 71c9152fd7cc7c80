package root

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lifeadmin/internal/snapshot"
	"lifeadmin/internal/ui"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the account's tasks and progression as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.Tasks(ctx)
			if err != nil {
				return err
			}
			state, err := svc.State(ctx)
			if err != nil {
				return err
			}
			snap := snapshot.New(svc.Account(), tasks, state, time.Now())

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := snapshot.Encode(w, snap); err != nil {
				return err
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Good.Render(fmt.Sprintf("Exported %d tasks to %s", len(tasks), outPath)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the account's tasks and progression from an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			snap, err := snapshot.Decode(r)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := svc.ReplaceAll(ctx, snap.Tasks, snap.State)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Good.Render(fmt.Sprintf("Imported %d tasks into %s", len(snap.Tasks), svc.Account())))
			printOutcome(w, "", out)
			return nil
		},
	}
}
