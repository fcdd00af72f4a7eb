package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

const Version = "0.1.0"

var (
	flagDB     string
	flagConfig string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "asc",
		Short:         "Ascensão: local-first daily practice tracker",
		Long:          "Ascensão tracks daily missions, practices, rituals and counters, with lifetime points and levels.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config and ASC_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: user config dir)")

	rootCmd.AddCommand(
		newStatusCmd(),
		newMissionsCmd(),
		newDoCmd(),
		newUndoCmd(),
		newPracticeCmd(),
		newProgressCmd(),
		newRitualCmd(),
		newInsightCmd(),
		newAddCmd(),
		newLogCmd(),
		newStatsCmd(),
		newBottleCmd(),
		newBoardCmd(),
		newServeCmd(),
		newImportCmd(),
		newDBCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
