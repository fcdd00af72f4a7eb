package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Import a legacy key/value export, replacing the stored documents it contains",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Import(ctx, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScroll+" Imported")+" "+ui.Muted.Render(args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Lifetime", svc.Lifetime())+"  "+ui.LabelValue("Days", len(svc.SortedLogs())))
			return nil
		},
	}

	return cmd
}
