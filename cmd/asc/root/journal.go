package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newRitualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ritual",
		Short: "Candle rituals",
	}
	cmd.AddCommand(newRitualAddCmd(), newRitualEditCmd(), newRitualListCmd())
	return cmd
}

func newRitualAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <color> [note...]",
		Short: fmt.Sprintf("Light a candle (+%d); one per color per day", engine.RitualBonus),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("color is required")
			}
			_, err := engine.ParseCandleColor(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := engine.ParseCandleColor(args[0])
			note := strings.Join(args[1:], " ")

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			r, res, err := svc.AddRitual(ctx, color, note)
			if err != nil {
				return err
			}
			name := ui.Candle(string(r.Color), r.Color.Name()) + " " + ui.Muted.Render(r.ID)
			printMutation(cmd.OutOrStdout(), ui.Good.Render(ui.IconCandle+" Ritual"), name, res)
			return nil
		},
	}
	return cmd
}

func newRitualEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <ritual_id> [note...]",
		Short: "Rewrite a ritual's note (any day); no note clears it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("ritual_id is required")
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

			if err := svc.EditRitualNote(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScroll+" Updated")+" "+ui.Muted.Render(args[0]))
			return nil
		},
	}
	return cmd
}

func newRitualListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every ritual, most recent day first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rituals := svc.AllRituals()
			if len(rituals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no rituals yet)"))
				return nil
			}
			for _, r := range rituals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Muted.Render(r.Day), ui.Candle(string(r.Color), r.Color.Name()), r.Note, ui.Muted.Render(r.ID))
			}
			return nil
		},
	}
	return cmd
}

func newInsightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Astral insights journal",
	}
	cmd.AddCommand(newInsightAddCmd(), newInsightEditCmd(), newInsightListCmd())
	return cmd
}

func newInsightAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Write an insight for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
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

			in, err := svc.AddInsight(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconMoon+" Insight saved")+" "+ui.Muted.Render(in.ID))
			return nil
		},
	}
	return cmd
}

func newInsightEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <insight_id> <text...>",
		Short: "Rewrite an insight (any day)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("insight_id and text are required")
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

			if err := svc.EditInsight(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconScroll+" Updated")+" "+ui.Muted.Render(args[0]))
			return nil
		},
	}
	return cmd
}

func newInsightListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every insight, most recent day first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			insights := svc.AllInsights()
			if len(insights) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no insights yet)"))
				return nil
			}
			for _, in := range insights {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Muted.Render(in.Day), in.Content, ui.Muted.Render(in.ID))
			}
			return nil
		},
	}
	return cmd
}
