package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <km|punches|clona> <value>",
		Short: "Set one of today's counters",
		Long: `Set one of today's progress counters. Values outside the range are clamped:

- km: 0 to 5
- punches: 0 to 1000
- clona: 0 to 50`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("counter and value are required")
			}
			if _, err := engine.ParseCounter(args[0]); err != nil {
				return err
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := engine.ParseCounter(args[0])
			v, _ := strconv.ParseFloat(args[1], 64)

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UpdateCounter(ctx, c, v)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s %s = %g", ui.Good.Render(ui.IconBolt+" Progress"), res.Counter, res.Value)
			if res.Clamped {
				line += " " + ui.Muted.Render(fmt.Sprintf("(clamped from %g)", v))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)

			month := svc.CurrentMonthStats()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s so far: %.1f km, %d punches, %d drops", month.Month, month.TotalKm, month.TotalPunches, month.TotalClona)))
			return nil
		},
	}

	return cmd
}
