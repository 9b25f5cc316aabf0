// Package dateinput is a bubbletea text input for due dates that shows
// whether the typed text parses as it is being typed.
package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/todoboard/pkg/todo/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.
		Foreground(lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

type Model struct {
	i     textinput.Model
	value *time.Time
	err   error
	now   func() time.Time
}

// New returns a focused input. now is used to resolve relative dates.
func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	i := textinput.New()
	i.Focus()
	i.CharLimit = 20
	i.Prompt = ""
	i.Placeholder = "tomorrow, fri, 2w, 21st"
	return Model{i: i, now: now}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update parses the input after every key press.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.i, cmd = m.i.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.value, m.err = date.ParseDue(m.i.Value(), m.now())
	}
	return m, cmd
}

func (m Model) View() string {
	ind := ""
	switch {
	case m.i.Value() == "":
	case m.err != nil:
		ind = cross
	case m.value != nil:
		ind = checkmark + " " + date.Format(m.value) + " (" + date.Relative(*m.value, m.now()) + ")"
	}
	return lipgloss.NewStyle().Foreground(faded).Render("due: ") + m.i.View() + ind
}

// Value is the parsed due date, nil when the input is empty or invalid.
func (m Model) Value() *time.Time {
	return m.value
}

// Valid reports whether the input can be submitted. An empty input clears the due date.
func (m Model) Valid() bool {
	return m.err == nil
}

func (m *Model) SetValue(t *time.Time) {
	m.value, m.err = t, nil
	if t == nil {
		m.i.SetValue("")
		return
	}
	m.i.SetValue(t.Format(date.ISO))
	m.i.CursorEnd()
}
