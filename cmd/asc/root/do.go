package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <mission_id>...",
		Short: "Complete one or more missions for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
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

			for _, id := range args {
				res, err := svc.CompleteMission(ctx, id)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				printMutation(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Completed"), missionName(svc, id), res)
			}
			return nil
		},
	}

	return cmd
}

func missionName(svc *engine.Service, id string) string {
	for _, m := range svc.Missions() {
		if m.ID == id {
			return fmt.Sprintf("%s %s", ui.Muted.Render(m.ID), m.Title)
		}
	}
	return id
}

// printMutation prints the outcome of a point-changing operation.
func printMutation(out io.Writer, verb, name string, res *engine.MutationResult) {
	fmt.Fprintf(out, "%s %s %s\n", verb, name, ui.Points(res.Delta))
	fmt.Fprintln(out, ui.LabelValue("Today", res.DayTotal)+"  "+ui.LabelValue("Lifetime", res.Lifetime))
	switch {
	case res.LevelUp():
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("%s %d → %d", ui.IconTrophy, res.LevelBefore, res.LevelAfter)))
	case res.LevelDown():
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelDown, ui.Warn.Render(fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
}
