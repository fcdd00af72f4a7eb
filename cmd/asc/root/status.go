package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress, level and lifetime points",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Status()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status "+st.Day))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(out, ui.LabelValue("Lifetime", fmt.Sprintf("%d pts (%d to next level)", st.Lifetime, st.PointsToNext)))
			fmt.Fprintln(out, ui.ProgressBar(st.LevelInto, st.LevelSize, 30))
			fmt.Fprintln(out, ui.LabelValue("Today", ui.Points(st.Today.TotalPoints)))
			fmt.Fprintln(out, ui.LabelValue("Missions", fmt.Sprintf("%d/%d", st.Completed, st.Total)))
			fmt.Fprintln(out, ui.LabelValue("Next rollover", fmt.Sprintf("%s (in %s)", st.NextRollover.Format("2006-01-02 15:04"), st.UntilRollover.Round(time.Minute))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Categories"))
			for _, cs := range st.Categories {
				if cs.Total == 0 {
					continue
				}
				fmt.Fprintf(out, "- %s %s %d/%d %s\n", ui.CategoryIcon(string(cs.Category)), cs.Category.Title(), cs.Completed, cs.Total, ui.Muted.Render(fmt.Sprintf("(%d pts)", cs.Points)))
			}
			fmt.Fprintln(out, "")

			today := st.Today
			fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Today"))
			if today.Practice != "" {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Practice:"), today.Practice, ui.Points(engine.PracticePenalties[today.Practice]))
			}
			fmt.Fprintf(out, "- %s %.1f km\n", ui.IconRun, today.RunningKm)
			fmt.Fprintf(out, "- %s %d punches\n", ui.IconFist, today.Punches)
			fmt.Fprintf(out, "- %s %d drops\n", ui.IconDrop, today.ClonaDrops)
			fmt.Fprintf(out, "- %s bottle %s\n", ui.IconBottle, ui.Check(st.BottleToday))
			for _, r := range today.Rituals {
				line := r.Color.Name()
				if r.Note != "" {
					line += " " + ui.Muted.Render(r.Note)
				}
				fmt.Fprintf(out, "- %s %s\n", ui.IconCandle, ui.Candle(string(r.Color), line))
			}
			return nil
		},
	}

	return cmd
}
