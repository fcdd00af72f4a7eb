package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/tui"
)

func newBoardCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := tui.Options{Log: a.log}
			if a.cfg.Board.Watch && !noWatch {
				opts.DBPath = a.dbPath
			}
			return tui.RunBoard(ctx, a.svc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the database changes on disk")

	return cmd
}
