package root

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

type challengeRow struct {
	engine.Challenge `yaml:",inline"`
	Tier             int  `json:"tier"      yaml:"tier"`
	Unlocked         bool `json:"unlocked"  yaml:"unlocked"`
	Completed        bool `json:"completed" yaml:"completed"`
}

func newChallengesCmd() *cobra.Command {
	var format string
	var tier int

	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List the challenge catalog with tier and completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.State(ctx)
			if err != nil {
				return err
			}

			var rows []challengeRow
			for _, c := range engine.Catalog() {
				if tier > 0 && c.Tier() != tier {
					continue
				}
				rows = append(rows, challengeRow{
					Challenge: c,
					Tier:      c.Tier(),
					Unlocked:  engine.ChallengeUnlocked(c, state.Level),
					Completed: state.Challenges[c.ID],
				})
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(rows); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "", "text":
			default:
				return fmt.Errorf("unknown format %q (text|yaml|json)", format)
			}

			fmt.Fprintln(w, ui.Heading(ui.IconTrophy, "Challenges"))
			current := 0
			for _, r := range rows {
				if r.Tier != current {
					current = r.Tier
					fmt.Fprintln(w, ui.H2.Render(fmt.Sprintf("Tier %d", current)))
				}
				mark := "[ ]"
				switch {
				case r.Completed:
					mark = ui.Good.Render("[x]")
				case !r.Unlocked:
					mark = ui.IconLock
				}
				fmt.Fprintf(w, "  %s %s %s\n", mark, r.Text, ui.Gold.Render(fmt.Sprintf("+%d XP", r.XP)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text|yaml|json)")
	cmd.Flags().IntVar(&tier, "tier", 0, "Only show one tier")

	return cmd
}
