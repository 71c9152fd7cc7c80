package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, rank, challenges and themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, "Progress"))
			fmt.Fprintln(w, ui.LabelValue("Account", svc.Account()))
			fmt.Fprintln(w, ui.LabelValue("Rank", ui.RankBadge(st.Rank)))
			fmt.Fprintln(w, ui.LabelValue("Level", st.State.Level))
			if st.State.Level >= engine.MaxLevel {
				fmt.Fprintln(w, ui.LabelValue("XP", ui.Gold.Render("max level")))
			} else {
				fmt.Fprintln(w, ui.LabelValue("XP", fmt.Sprintf("%d/%d", st.XPCurrent, st.XPNeeded)))
			}
			if st.NextRank != nil {
				fmt.Fprintln(w, ui.LabelValue("Next rank", fmt.Sprintf("%s at level %d", ui.RankBadge(*st.NextRank), st.NextRank.Level)))
			}
			if st.LevelUpsToday > 0 {
				fmt.Fprintln(w, ui.LabelValue("Level ups today", st.LevelUpsToday))
			}
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render(ui.IconTrophy+" Challenges"))
			if st.State.HasStartedChallenges {
				fmt.Fprintf(w, "- %s %d/%d\n", ui.Key.Render("Completed:"), st.Completed, st.Total)
			} else {
				fmt.Fprintf(w, "- %s %s\n", ui.Key.Render("Not started:"), ui.Muted.Render("run `la start` to begin earning XP"))
			}
			fmt.Fprintf(w, "- %s %d\n", ui.Key.Render("Tasks completed:"), st.TasksCompleted)
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render(ui.IconPalette+" Themes"))
			fmt.Fprintf(w, "- %s %d/%d\n", ui.Key.Render("Unlocked:"), len(st.Themes), len(engine.Themes()))
			fmt.Fprintf(w, "- %s %s\n", ui.Key.Render("Current:"), st.Theme)
			if st.State.Override != engine.OverrideNone {
				fmt.Fprintf(w, "- %s %s\n", ui.Key.Render("Override:"), ui.Warn.Render(string(st.State.Override)))
			}

			return nil
		},
	}

	return cmd
}
