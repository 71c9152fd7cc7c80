package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifeadmin/internal/engine"
	"lifeadmin/internal/ui"
)

func newThemesCmd() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List colour themes, or pick one with --set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			if set != "" {
				if err := svc.SetTheme(ctx, set); err != nil {
					return err
				}
				fmt.Fprintln(w, ui.Good.Render(ui.IconPalette+" Theme set to "+set))
				return nil
			}

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			unlocked := map[string]bool{}
			for _, t := range st.Themes {
				unlocked[t.Value] = true
			}

			fmt.Fprintln(w, ui.Heading(ui.IconPalette, "Themes"))
			for _, t := range engine.Themes() {
				current := "  "
				if t.Value == st.Theme {
					current = "> "
				}
				fmt.Fprintf(w, "%s%s %-10s %s %s\n", current, ui.ThemeSwatch(t), t.Name,
					ui.EnabledText(unlocked[t.Value]), ui.Muted.Render(fmt.Sprintf("(level %d)", t.LevelToUnlock)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Theme value to use")

	return cmd
}
