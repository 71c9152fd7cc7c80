package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lifeadmin/internal/config"
	"lifeadmin/internal/logging"
	"lifeadmin/internal/ui"
)

const Version = "0.2.0"

var (
	cfgFile string
	v       = viper.New()
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "la",
	Short:         "Life Admin: a local-first task manager with levels, challenges and themes",
	Long:          "Life Admin tracks your chores and errands and rewards finishing them with XP, ranks and unlockable colour themes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Init(cfg.Debug)
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml or json)")
	flags.String("db", "", "SQLite database path (default ~/.lifeadmin.db)")
	flags.String("account", "", "account to operate on (default \"local\")")
	flags.Bool("debug", false, "enable debug logging")
	for key, flag := range map[string]string{"db_path": "db", "account": "account", "debug": "debug"} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fail(fmt.Errorf("bind %s flag: %w", flag, err))
		}
	}

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newListCmd(),
		newDoCmd(),
		newUndoCmd(),
		newHideCmd(),
		newUnhideCmd(),
		newRmCmd(),
		newCalendarCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newChallengesCmd(),
		newThemesCmd(),
		newStartCmd(),
		newResetCmd(),
		newOverrideCmd(),
		newExportCmd(),
		newImportCmd(),
		newServeCmd(),
		newBoardCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
	os.Exit(1)
}
