package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Tabs struct {
	tabs []string
	i    int

	Width int
	Info  string
	Theme Theme
}

// NewTabs creates a tab bar with the first tab selected
func NewTabs(tabs []string) Tabs {
	t, _ := LookupTheme(DefaultTheme)
	return Tabs{tabs: tabs, Theme: t}
}

func (m Tabs) View() string {
	var (
		container = lipgloss.NewStyle().Padding(1, 1)
		active    = lipgloss.NewStyle().Foreground(m.Theme.Primary).Bold(true)
		inactive  = lipgloss.NewStyle().Foreground(m.Theme.Secondary)
		divider   = lipgloss.NewStyle().Foreground(m.Theme.Faded)
	)
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		r := inactive
		if i == m.i {
			r = active
		}
		tabs[i] = r.Render(t)
	}
	w := lipgloss.Width
	left := strings.Join(tabs, divider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 1)).Render("")
	return container.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() int {
	return m.i
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), len(m.tabs)-1)
}

// Next selects the tab after the current one, wrapping around
func (m *Tabs) Next() {
	m.i = (m.i + 1) % len(m.tabs)
}
