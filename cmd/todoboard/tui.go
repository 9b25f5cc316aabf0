package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/todoboard/internal/tui"
)

func runTUI(app *App, s *session) error {
	m := tui.New(s.store, tui.Options{
		PerPage:  s.cfg.ItemsPerPage,
		Theme:    s.cfg.Theme,
		Debounce: s.cfg.Search.Debounce.Duration,
		SoonDays: s.cfg.DueSoonDays,
		Now:      app.Now,
		Logger:   s.logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(app.Stdin), tea.WithOutput(app.Stdout))
	_, err := p.Run()
	return err
}
