package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newBottleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bottle",
		Short: "Clona bottle tracking",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "done",
			Short: "Record today's bottle",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				b, err := svc.CompleteBottle(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBottle+" Bottle done")+" "+ui.Muted.Render(b.DayKey))
				return nil
			},
		},
		&cobra.Command{
			Use:   "undo",
			Short: "Remove today's bottle",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				if err := svc.UndoBottle(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconUndo+" Bottle undone"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "history",
			Short: "List bottle completions, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				svc, cleanup, err := openService(ctx)
				if err != nil {
					return err
				}
				defer cleanup()

				history := svc.BottleHistory()
				if len(history) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no bottles yet)"))
					return nil
				}
				for _, b := range history {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconBottle, b.DayKey, ui.Muted.Render(b.CompletedAt.Local().Format("15:04")))
				}
				return nil
			},
		},
	)
	return cmd
}
