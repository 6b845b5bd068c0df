package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"studyplan/internal/engine"
)

type BoardOptions struct {
	// Watch reloads the board when the data files change on disk.
	Watch bool
	Log   *zap.Logger
}

func RunBoard(ctx context.Context, svc *engine.Service, reviews *engine.ReviewService, out io.Writer, opts BoardOptions) error {
	var changes <-chan struct{}
	if opts.Watch {
		w, err := NewWatcher(svc.Store().Dir, opts.Log)
		if err != nil {
			return err
		}
		defer w.Stop()
		w.Start(ctx)
		changes = w.Changes()
	}

	m := newBoardModel(svc, reviews, changes)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
