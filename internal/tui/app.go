// Package tui is the interactive terminal interface.
package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/td0m/todoboard/internal/debounce"
	"github.com/td0m/todoboard/internal/ui"
	"github.com/td0m/todoboard/pkg/dateinput"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

const (
	headerHeight = 3
	footerHeight = 3
)

const (
	tabList = iota
	tabCalendar
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeRename
	modeDescribe
	modeDue
	modeSearch
)

type Options struct {
	PerPage  int
	Theme    string
	Debounce time.Duration
	SoonDays int
	Now      func() time.Time
	Logger   *log.Logger
}

// settleMsg is delivered when the search debounce delay of generation gen has passed.
type settleMsg struct{ gen int }

type App struct {
	mode mode

	store  *todo.Store
	filter todo.Filter
	search *debounce.Value
	pager  *todo.Pager

	// visible is the current page of the projection, cursor indexes into it
	visible todo.Page
	stats   todo.Stats
	cursor  int

	input    textinput.Model
	due      dateinput.Model
	tabs     ui.Tabs
	viewport viewport.Model
	dots     paginator.Model
	calendar calendar

	theme    ui.Theme
	soonDays int
	now      func() time.Time
	logger   *log.Logger

	message string
	width   int
	height  int
}

// New returns the application model over store.
func New(store *todo.Store, opts Options) *App {
	if opts.Now == nil {
		opts.Now = store.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	theme, ok := ui.LookupTheme(opts.Theme)
	if !ok {
		theme, _ = ui.LookupTheme(ui.DefaultTheme)
	}

	i := textinput.New()
	i.Prompt = ""
	i.CharLimit = 200

	dots := paginator.New()
	dots.Type = paginator.Dots

	tabs := ui.NewTabs([]string{"List", "Calendar"})
	tabs.Theme = theme

	a := &App{
		store:    store,
		filter:   todo.DefaultFilter(),
		search:   debounce.New(opts.Debounce, debounce.ClockFunc(opts.Now)),
		pager:    todo.NewPager(opts.PerPage),
		input:    i,
		due:      dateinput.New(opts.Now),
		tabs:     tabs,
		viewport: viewport.New(80, 20),
		dots:     dots,
		calendar: newCalendar(opts.Now()),
		theme:    theme,
		soonDays: opts.SoonDays,
		now:      opts.Now,
		logger:   opts.Logger,
		width:    80,
	}
	a.refresh()
	return a
}

func (m *App) Init() tea.Cmd {
	return nil
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.tabs.Width = msg.Width
	case settleMsg:
		if m.search.SettleGen(msg.gen) {
			m.applySearch()
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.message = ""
		if msg.Type == tea.KeyEsc {
			m.cancel()
			break
		}
		cmd = m.keyUpdate(msg)
	}
	m.render()
	return m, cmd
}

// handle keys differently based on the current mode
func (m *App) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeAdd, modeRename, modeDescribe:
		if msg.Type == tea.KeyEnter {
			m.submitText()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	case modeSearch:
		if msg.Type == tea.KeyEnter {
			m.search.Flush()
			m.applySearch()
			m.mode = modeNormal
			m.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		gen := m.search.Set(m.input.Value())
		if m.search.Delay() <= 0 {
			m.applySearch()
			return cmd
		}
		return tea.Batch(cmd, tea.Tick(m.search.Delay(), func(time.Time) tea.Msg {
			return settleMsg{gen: gen}
		}))
	case modeDue:
		if msg.Type == tea.KeyEnter {
			m.submitDue()
			return nil
		}
		var cmd tea.Cmd
		m.due, cmd = m.due.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		m.tabs.Next()
		return nil
	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.search.Pending())
		m.input.CursorEnd()
		return m.input.Focus()
	case "1":
		m.filter.ShowCompleted = !m.filter.ShowCompleted
		m.refresh()
	case "2":
		m.filter.ShowIncomplete = !m.filter.ShowIncomplete
		m.refresh()
	case "0":
		m.clearFilters()
	case "s", "S":
		dir := todo.Asc
		if msg.String() == "S" {
			dir = todo.Desc
		}
		m.store.SortByDueDate(dir)
		m.refresh()
		m.message = "sorted by due date (" + dir.String() + ")"
	case "+", "=":
		m.setPerPage(m.pager.PerPage + 5)
	case "-":
		m.setPerPage(m.pager.PerPage - 5)
	case "t":
		m.theme = ui.NextTheme(m.theme)
		m.tabs.Theme = m.theme
		m.message = "theme: " + m.theme.Name
	case "a":
		m.startInput(modeAdd, "")
		return textinput.Blink
	}

	if m.tabs.Value() == tabCalendar {
		m.calendarKeys(msg.String())
		return nil
	}
	return m.listKeys(msg)
}

func (m *App) listKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "l", "right":
		if m.pager.Next() {
			m.refresh()
			m.setCursor(0)
		}
	case "h", "left":
		if m.pager.Prev() {
			m.refresh()
			m.setCursor(0)
		}
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible.Items) - 1)
	}

	t, ok := m.atCursor()
	if !ok {
		return nil
	}
	switch msg.String() {
	case "e":
		m.startInput(modeRename, t.Title)
		return textinput.Blink
	case "i":
		m.startInput(modeDescribe, t.Description)
		return textinput.Blink
	case "d":
		m.mode = modeDue
		m.due = dateinput.New(m.now)
		m.due.SetValue(t.DueDate)
		return m.due.Init()
	case "c":
		next := t.Category.Next()
		m.update(t.ID, todo.Patch{Category: &next})
	case "x", " ":
		if _, err := m.store.Toggle(t.ID); err != nil {
			m.fail(err)
		}
		m.refresh()
	case "delete", "D":
		if err := m.store.Delete(t.ID); err != nil {
			m.fail(err)
		}
		m.refresh()
		m.message = "deleted " + t.Title
	case "K":
		m.move(-1)
	case "J":
		m.move(1)
	}
	return nil
}

// move swaps the todo at the cursor with its neighbour on the current page
func (m *App) move(delta int) {
	to := m.cursor + delta
	if to < 0 || to >= len(m.visible.Items) {
		return
	}
	reordered := todo.Move(m.visible.Items, m.cursor, to)
	err := m.store.MovePage(m.filter, m.pager.Page, m.pager.PerPage, reordered)
	if errors.Is(err, todo.ErrReorderLocked) {
		m.message = "clear the search and show all todos to reorder"
		return
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.setCursor(to)
}

func (m *App) startInput(md mode, value string) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *App) submitText() {
	value := m.input.Value()
	switch m.mode {
	case modeAdd:
		if _, err := m.store.Add(todo.Draft{Title: value}); err != nil {
			m.fail(err)
			return
		}
		m.refresh()
		m.setCursor(0)
	case modeRename:
		if t, ok := m.atCursor(); ok {
			m.update(t.ID, todo.Patch{Title: &value})
		}
	case modeDescribe:
		if t, ok := m.atCursor(); ok {
			m.update(t.ID, todo.Patch{Description: &value})
		}
	}
	m.mode = modeNormal
	m.input.Blur()
}

func (m *App) submitDue() {
	if !m.due.Valid() {
		m.message = "could not understand that date"
		return
	}
	if t, ok := m.atCursor(); ok {
		m.update(t.ID, todo.Patch{DueSet: true, DueDate: m.due.Value()})
	}
	m.mode = modeNormal
}

func (m *App) update(id todo.ID, p todo.Patch) {
	if _, err := m.store.Update(id, p); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
}

func (m *App) cancel() {
	if m.mode == modeSearch {
		m.search.Reset()
		m.applySearch()
	}
	m.mode = modeNormal
	m.input.Blur()
}

func (m *App) clearFilters() {
	m.filter = todo.DefaultFilter()
	m.search.Reset()
	m.refresh()
	m.message = "filters cleared"
}

func (m *App) applySearch() {
	m.filter.Search = m.search.Settled()
	m.refresh()
	m.setCursor(0)
}

func (m *App) setPerPage(n int) {
	m.pager.SetPerPage(n, m.store.Len())
	m.refresh()
	m.setCursor(0)
	m.message = fmt.Sprintf("%d per page", m.pager.PerPage)
}

func (m *App) fail(err error) {
	m.logger.Warn("action failed", "err", err)
	m.message = err.Error()
}

// refresh recomputes the projection and the current page
func (m *App) refresh() {
	all := m.store.All()
	projected := todo.Project(all, m.filter)
	m.pager.Sync(len(projected), len(all))
	m.visible = m.pager.Of(projected)
	m.stats = todo.Summarize(all, projected)
	m.setCursor(m.cursor)
}

func (m *App) setCursor(value int) {
	m.cursor = clamp(value, 0, max(len(m.visible.Items)-1, 0))
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
}

func (m *App) atCursor() (todo.Todo, bool) {
	if m.cursor >= len(m.visible.Items) {
		return todo.Todo{}, false
	}
	return m.visible.Items[m.cursor], true
}

func (m *App) render() {
	m.tabs.Info = m.info()
	if m.tabs.Value() == tabCalendar {
		m.viewport.SetContent(m.viewCalendar())
		return
	}
	m.viewport.SetContent(m.viewList())
}

func (m *App) info() string {
	s := m.stats
	return fmt.Sprintf("%d/%d shown · %d done · %d open", s.Filtered, s.Total, s.Completed, s.Incomplete)
}

func (m *App) View() string {
	return m.tabs.View() + m.viewport.View() + "\n" + m.statusline()
}

func (m *App) today() time.Time {
	return date.StartOfDay(m.now())
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
