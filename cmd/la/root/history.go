package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/storage"
	"lifeadmin/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent challenge completions and level ups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.History(ctx, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "History"))
			if len(list) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("No progression yet."))
				return nil
			}
			for _, e := range list {
				fmt.Fprintf(w, "%s %s\n", ui.Muted.Render(e.OccurredAt.Local().Format(time.DateTime)), ui.FormatEvent(historyEvent(e)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")

	return cmd
}

func historyEvent(e storage.ProgressEvent) engine.Event {
	ev := engine.Event{Kind: engine.EventKind(e.Kind), XPAwarded: e.XPAwarded}
	if e.ChallengeID != nil {
		ev.ChallengeID = *e.ChallengeID
	}
	if e.Level != nil {
		ev.Level = *e.Level
	}
	return ev
}
