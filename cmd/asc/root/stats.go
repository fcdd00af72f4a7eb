package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show this month's totals and the monthly archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			cur := svc.CurrentMonthStats()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Month "+cur.Month))
			fmt.Fprintln(out, ui.LabelValue("Days logged", cur.DaysLogged))
			fmt.Fprintf(out, "- %s %.1f km\n", ui.IconRun, cur.TotalKm)
			fmt.Fprintf(out, "- %s %d punches\n", ui.IconFist, cur.TotalPunches)
			fmt.Fprintf(out, "- %s %d drops\n", ui.IconDrop, cur.TotalClona)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 History"))
			history := svc.MonthlyHistory()
			if len(history) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no archived months)"))
			}
			for i := len(history) - 1; i >= 0; i-- {
				h := history[i]
				fmt.Fprintf(out, "- %s %.1f km, %d punches, %d drops\n", ui.Key.Render(h.Month), h.TotalKm, h.TotalPunches, h.TotalClona)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Lifetime", fmt.Sprintf("%d pts, level %d", svc.Lifetime(), svc.Level())))
			return nil
		},
	}

	return cmd
}
