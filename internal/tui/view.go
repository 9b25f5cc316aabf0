package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/td0m/todoboard/internal/ui"
)

func (m *App) viewList() string {
	if len(m.visible.Items) == 0 {
		muted := lipgloss.NewStyle().Foreground(m.theme.Faded).Padding(0, 2)
		if m.stats.Total == 0 {
			return muted.Render("nothing to do, press a to add a todo")
		}
		return muted.Render("no todos match, press 0 to clear filters")
	}
	var b strings.Builder
	for i, t := range m.visible.Items {
		if m.mode == modeRename && i == m.cursor {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(m.theme.Accent).Render("✎ ") + m.input.View() + "\n")
			continue
		}
		b.WriteString(m.theme.RenderRow(ui.Row{
			Todo:     t,
			Selected: i == m.cursor,
			Width:    m.width,
			Now:      m.now(),
			SoonDays: m.soonDays,
		}))
		b.WriteString("\n")
	}
	return b.String()
}

// banner describes the active filters, empty when none is active
func (m *App) banner() string {
	f := m.filter
	if !f.Active() {
		return ""
	}
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	switch {
	case !f.ShowCompleted && !f.ShowIncomplete:
		parts = append(parts, "hiding everything")
	case !f.ShowCompleted:
		parts = append(parts, "hiding completed")
	case !f.ShowIncomplete:
		parts = append(parts, "hiding incomplete")
	}
	return "filtered: " + strings.Join(parts, ", ") + " · reordering disabled"
}

func (m *App) statusline() string {
	faded := lipgloss.NewStyle().Foreground(m.theme.Faded)
	warn := lipgloss.NewStyle().Foreground(m.theme.Yellow)

	var lines []string
	switch m.mode {
	case modeAdd:
		lines = append(lines, faded.Render("new: ")+m.input.View())
	case modeDescribe:
		lines = append(lines, faded.Render("description: ")+m.input.View())
	case modeSearch:
		lines = append(lines, faded.Render("/")+m.input.View())
	case modeDue:
		lines = append(lines, m.due.View())
	default:
		if t, ok := m.atCursor(); ok && t.Description != "" && m.tabs.Value() == tabList {
			lines = append(lines, faded.Render(truncate.StringWithTail(t.Description, uint(max(m.width-2, 1)), "…")))
		}
	}
	if b := m.banner(); b != "" {
		lines = append(lines, warn.Render(b))
	}
	if m.message != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.message))
	}

	m.dots.PerPage = m.pager.PerPage
	m.dots.SetTotalPages(m.visible.TotalPages * m.pager.PerPage)
	m.dots.Page = m.pager.Page - 1
	page := fmt.Sprintf("page %d/%d ", m.pager.Page, max(m.pager.TotalPages(), 1))
	lines = append(lines, faded.Render(page)+m.dots.View()+faded.Render(fmt.Sprintf("  %d per page", m.pager.PerPage)))
	return strings.Join(lines, "\n")
}
