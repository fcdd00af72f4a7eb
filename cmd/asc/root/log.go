package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newLogCmd() *cobra.Command {
	var days int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent daily logs, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			logs := svc.LogsInRange(days)
			if len(logs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing logged yet)"))
				return nil
			}
			for _, l := range logs {
				fmt.Fprintf(out, "%s %s %s\n",
					ui.H2.Render(l.Date),
					ui.Points(l.TotalPoints),
					ui.Muted.Render(fmt.Sprintf("%d missions, %.1f km, %d punches, %d drops", len(l.CompletedMissions), l.RunningKm, l.Punches, l.ClonaDrops)))
				if !verbose {
					continue
				}
				for _, cm := range l.CompletedMissions {
					fmt.Fprintf(out, "  %s %s %s\n", ui.CategoryIcon(string(cm.Category)), cm.Title, ui.Points(cm.Points))
				}
				if l.Practice != "" {
					fmt.Fprintf(out, "  %s %s\n", ui.IconWarn, l.Practice)
				}
				for _, r := range l.Rituals {
					fmt.Fprintf(out, "  %s %s\n", ui.IconCandle, ui.Candle(string(r.Color), r.Color.Name()))
				}
				for _, in := range l.Insights {
					fmt.Fprintf(out, "  %s %s\n", ui.IconMoon, in.Content)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "Number of days to show")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show each day's entries")

	return cmd
}
