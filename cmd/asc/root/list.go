package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	var category string
	var pending bool

	cmd := &cobra.Command{
		Use:     "missions",
		Aliases: []string{"list", "ls"},
		Short:   "List today's missions by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var only engine.Category
			if category != "" {
				c, err := engine.ParseCategory(category)
				if err != nil {
					return err
				}
				only = c
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			missions := svc.Missions()
			for _, c := range engine.Categories {
				if only != "" && c != only {
					continue
				}
				var rows []engine.Mission
				for _, m := range missions {
					if m.Category != c || (pending && m.Completed) {
						continue
					}
					rows = append(rows, m)
				}
				if len(rows) == 0 {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(ui.CategoryIcon(string(c))+" "+c.Title()))
				for _, m := range rows {
					custom := ""
					if m.Custom {
						custom = " " + ui.Muted.Render("(custom)")
					}
					fmt.Fprintf(out, "%s %s %s %s%s\n", ui.Check(m.Completed), ui.Muted.Render(m.ID), m.Title, ui.Points(m.Points), custom)
				}
				fmt.Fprintln(out, "")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category")
	cmd.Flags().BoolVar(&pending, "pending", false, "Hide completed missions")

	return cmd
}
