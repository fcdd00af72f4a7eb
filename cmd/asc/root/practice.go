package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice <1|2|3>",
		Short: "Record today's practice and apply its penalty",
		Long: `Record today's practice. Each practice carries a fixed penalty:

- practice1: -40
- practice2: -90
- practice3: -150

Only one practice can be selected per day; the choice cannot be changed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("practice is required")
			}
			_, err := engine.ParsePractice(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _ := engine.ParsePractice(args[0])

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.SelectPractice(ctx, p)
			if err != nil {
				return err
			}
			printMutation(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Practice"), fmt.Sprint(p), res)
			return nil
		},
	}

	return cmd
}
