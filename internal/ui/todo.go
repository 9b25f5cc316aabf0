package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

// Row renders one todo in a list.
type Row struct {
	Todo     todo.Todo
	Selected bool
	Width    int
	Now      time.Time
	SoonDays int
}

func (t Theme) CategoryColor(c todo.Category) lipgloss.Color {
	switch c {
	case todo.Work:
		return t.Accent
	case todo.Urgent:
		return t.Red
	default:
		return t.Green
	}
}

// DueColor is red for overdue, yellow for due soon and faded otherwise.
func (t Theme) DueColor(td todo.Todo, now time.Time, soonDays int) lipgloss.Color {
	switch {
	case td.Completed:
		return t.Faded
	case td.IsOverdue(now):
		return t.Red
	case td.IsDueSoon(now, soonDays):
		return t.Yellow
	default:
		return t.Secondary
	}
}

func (t Theme) RenderRow(r Row) string {
	var (
		icon     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
		title    = lipgloss.NewStyle().Foreground(t.Primary)
		divider  = lipgloss.NewStyle().Foreground(t.Faded).Padding(0, 1).Render("∙")
		category = lipgloss.NewStyle().Foreground(t.CategoryColor(r.Todo.Category))
		due      = lipgloss.NewStyle().Foreground(t.DueColor(r.Todo, r.Now, r.SoonDays))
		cursor   = "  "
	)
	if r.Selected {
		cursor = lipgloss.NewStyle().Foreground(t.Accent).Render("> ")
		title = title.Bold(true)
	}
	mark := icon.Foreground(t.Secondary).Render("○")
	if r.Todo.Completed {
		mark = icon.Foreground(t.Green).Render("✓")
		title = title.Strikethrough(true).Foreground(t.Faded)
	}

	right := category.Render(strings.ToLower(string(r.Todo.Category)))
	if r.Todo.DueDate != nil {
		right += divider + due.Render(date.Format(r.Todo.DueDate)+" ("+date.Relative(*r.Todo.DueDate, r.Now)+")")
	}
	left := cursor + mark
	room := r.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	text := truncate.StringWithTail(r.Todo.Title, uint(max(room, 1)), "…")
	left += title.Render(text)
	space := strings.Repeat(" ", max(r.Width-lipgloss.Width(left)-lipgloss.Width(right), 1))
	return left + space + right
}
