package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/todoboard/internal/ui"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

// calendar tracks the selected day of the calendar tab
type calendar struct {
	selected time.Time
}

func newCalendar(now time.Time) calendar {
	return calendar{selected: date.StartOfDay(now)}
}

func (c *calendar) moveDays(n int) {
	c.selected = c.selected.AddDate(0, 0, n)
}

// moveMonths keeps the day of month where possible, clamping to the month's last day
func (c *calendar) moveMonths(n int) {
	first := time.Date(c.selected.Year(), c.selected.Month()+time.Month(n), 1, 0, 0, 0, 0, c.selected.Location())
	day := min(c.selected.Day(), daysIn(first))
	c.selected = first.AddDate(0, 0, day-1)
}

func daysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, month.Location()).Day()
}

func (m *App) calendarKeys(key string) {
	switch key {
	case "h", "left":
		m.calendar.moveDays(-1)
	case "l", "right":
		m.calendar.moveDays(1)
	case "k", "up":
		m.calendar.moveDays(-7)
	case "j", "down":
		m.calendar.moveDays(7)
	case "[":
		m.calendar.moveMonths(-1)
	case "]":
		m.calendar.moveMonths(1)
	case ".":
		m.calendar = newCalendar(m.now())
	}
}

// dueByDay groups the filtered todos by their due day
func dueByDay(c todo.Collection) map[string]todo.Collection {
	out := map[string]todo.Collection{}
	for _, t := range c {
		if t.DueDate == nil {
			continue
		}
		day := date.FormatISO(t.DueDate)
		out[day] = append(out[day], t)
	}
	return out
}

func (m *App) viewCalendar() string {
	var (
		th       = m.theme
		sel      = m.calendar.selected
		today    = m.today()
		byDay    = dueByDay(todo.Project(m.store.All(), m.filter))
		title    = lipgloss.NewStyle().Foreground(th.Primary).Bold(true).Padding(0, 2)
		label    = lipgloss.NewStyle().Foreground(th.Faded).Width(5)
		cell     = lipgloss.NewStyle().Foreground(th.Secondary).Width(5)
		b        strings.Builder
		first    = time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, sel.Location())
		weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	)

	b.WriteString(title.Render(sel.Format("January 2006")) + "\n  ")
	for _, w := range weekdays {
		b.WriteString(label.Render(w))
	}
	b.WriteString("\n  ")

	// weeks start on monday
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat(" ", offset*5))
	for d := 1; d <= daysIn(first); d++ {
		day := first.AddDate(0, 0, d-1)
		text := fmt.Sprintf("%2d", d)
		style := cell
		if due := byDay[day.Format(date.ISO)]; len(due) > 0 {
			text += fmt.Sprintf("·%d", len(due))
			style = style.Foreground(dayColor(th, due, m.soonDays, m.now()))
		}
		if date.SameDay(day, today) {
			style = style.Underline(true)
		}
		if date.SameDay(day, sel) {
			style = style.Bold(true).Reverse(true)
		}
		b.WriteString(style.Render(text))
		if (offset+d)%7 == 0 {
			b.WriteString("\n  ")
		}
	}
	b.WriteString("\n\n")

	due := byDay[sel.Format(date.ISO)]
	b.WriteString(title.Render(date.Format(&sel)) + "\n")
	if len(due) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Faded).Padding(0, 2).Render("nothing due") + "\n")
	}
	for _, t := range due {
		b.WriteString(th.RenderRow(ui.Row{Todo: t, Width: m.width, Now: m.now(), SoonDays: m.soonDays}) + "\n")
	}
	return b.String()
}

// dayColor is red when an open todo on the day is overdue, yellow when one is due soon
func dayColor(th ui.Theme, due todo.Collection, soonDays int, now time.Time) lipgloss.Color {
	color := th.Accent
	for _, t := range due {
		if t.Completed {
			continue
		}
		if t.IsOverdue(now) {
			return th.Red
		}
		if t.IsDueSoon(now, soonDays) {
			color = th.Yellow
		}
	}
	return color
}
