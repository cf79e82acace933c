package ui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bundlekit/internal/config"
	"bundlekit/internal/store"
	"bundlekit/pkg/exec"
	"bundlekit/pkg/logger"
)

// Options configures Run.
type Options struct {
	Store     *store.FileStore
	Commander exec.Commander
}

// Run shows the terminal UI until the user quits. Console logging is
// silenced while the UI owns the screen.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.Store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(cfg, opts.Store, opts.Commander)
	model.ctx = ctx

	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	go func() {
		err := opts.Store.Watch(ctx, func() { program.Send(storeChangedMsg{}) })
		if err != nil {
			logger.Debugf("settings watcher stopped: %v", err)
		}
	}()

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
