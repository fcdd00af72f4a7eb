package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/mcptools"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker as MCP tools over stdio",
		Long: `Serve the tracker over the Model Context Protocol on stdin/stdout.

Logs go to stderr so they never interleave with the protocol stream. The
service rolls over to the next day on its own while the server runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a.svc.StartRolloverScheduler(ctx, func(day string) {
				a.log.Info("rolled over", "day", day)
			})
			a.log.Info("mcp server starting", "db", a.dbPath, "version", Version)
			return mcptools.ServeStdio(mcptools.New(a.svc, Version))
		},
	}

	return cmd
}
