package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/guit-go/internal/app"
	"github.com/thiagokokada/guit-go/internal/config"
)

type Options struct {
	RepoPath     string
	TickInterval time.Duration
	AutoReload   bool
	Theme        ThemePreference
	Styles       config.Styles
}

// Run starts the terminal program and blocks until the user quits.
func Run(state *app.State, opts Options) error {
	styles := NewStyles(paletteForPreference(opts.Theme), opts.Styles)
	model := NewModel(state, styles, opts.TickInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if opts.AutoReload {
		w, err := NewWatcher(opts.RepoPath, func() { p.Send(ReloadMsg{}) })
		if err != nil {
			slog.Error("auto reload disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := w.Close(); err != nil {
					slog.Error("watcher close", slog.Any("error", err))
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
