package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start earning challenges (past completions count)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := svc.StartChallenges(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" Challenges started"))
			printOutcome(w, "", out)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over: delete every task and all progression",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this deletes everything for the account; pass --yes to confirm")
			}
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.StartOver(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Account "+svc.Account()+" reset to level 1"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")

	return cmd
}

func newOverrideCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "override <none|partial|full>",
		Short:     "Force the progression state (testing and demos)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(engine.OverrideNone), string(engine.OverridePartial), string(engine.OverrideFull)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.Override(ctx, engine.OverrideTier(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Override %s: level %d, %d/%d challenges",
				ui.IconBolt, state.Override, state.Level, state.CompletedChallenges(), len(engine.Catalog()))))
			return nil
		},
	}
}
