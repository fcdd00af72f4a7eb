package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
)

type Options struct {
	// DBPath enables reloading when the file changes. Empty disables it.
	DBPath string
	Log    *logger.Logger
}

// RunBoard runs the dashboard until the user quits. The service's rollover
// scheduler runs for the lifetime of the board.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if opts.DBPath != "" {
		w, err := newDBWatcher(opts.DBPath, opts.Log)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Stop()
			return err
		}
		defer func() { _ = w.Stop() }()
		changes = w.Changes()
	}

	m := newBoardModel(ctx, svc, changes)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())

	svc.StartRolloverScheduler(ctx, func(day string) {
		p.Send(rolloverMsg{day: day})
	})
	defer svc.Teardown()

	_, err := p.Run()
	return err
}
