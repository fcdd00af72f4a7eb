package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "undo <mission_id>",
		Aliases: []string{"restore"},
		Short:   "Undo today's completion of a mission",
		Long: `Undo a mission completed today.

This will:
- Remove the most recent completion of the mission from today's log
- Deduct the points it awarded from today and from the lifetime total
- Mark the mission as open again

Only today's completions can be undone; past days are history.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := args[0]
			name := missionName(svc, id)
			res, err := svc.UncompleteMission(ctx, id)
			if err != nil {
				return err
			}
			printMutation(cmd.OutOrStdout(), ui.Warn.Render(ui.IconUndo+" Undone"), name, res)
			if res.Delta == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no completion was recorded; flag cleared)"))
			}
			return nil
		},
	}

	return cmd
}
