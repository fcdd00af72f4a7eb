package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newAddCmd() *cobra.Command {
	var points int
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom mission to the catalog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := svc.AddCustomMission(ctx, args[0], points, cat)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.CategoryIcon(string(m.Category)),
				m.Title,
				ui.Points(m.Points),
				ui.Muted.Render(m.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&points, "points", "p", 10, fmt.Sprintf("Points (%d to %d)", engine.CustomPointsMin, engine.CustomPointsMax))
	cmd.Flags().StringVarP(&category, "category", "c", string(engine.CategoryPhysical), "Category (physical|energetic|astralBody|mental|spiritual|intraphysical|practices|candles|astral)")

	return cmd
}
