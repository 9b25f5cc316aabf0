package todo

import "strings"

// Filter narrows the collection down to the todos that should be displayed.
type Filter struct {
	Search         string
	ShowCompleted  bool
	ShowIncomplete bool
}

// DefaultFilter shows everything
func DefaultFilter() Filter {
	return Filter{ShowCompleted: true, ShowIncomplete: true}
}

// DragEnabled reports whether the projection is the whole collection,
// which is the only case where a manual reorder may be written back.
func (f Filter) DragEnabled() bool {
	return f.Search == "" && f.ShowCompleted && f.ShowIncomplete
}

func (f Filter) Active() bool {
	return !f.DragEnabled()
}

func (f Filter) Match(t Todo) bool {
	return f.matchSearch(t) && f.matchStatus(t)
}

func (f Filter) matchSearch(t Todo) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func (f Filter) matchStatus(t Todo) bool {
	return (t.Completed && f.ShowCompleted) || (!t.Completed && f.ShowIncomplete)
}

// Project returns the todos matching f sorted by ascending order. c is not modified.
func Project(c Collection, f Filter) Collection {
	out := Collection{}
	for _, t := range c {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out.SortedByOrder()
}

type Stats struct {
	Total      int
	Filtered   int
	Completed  int
	Incomplete int
}

// Summarize counts the projection against the full collection
func Summarize(c, projected Collection) Stats {
	s := Stats{Total: len(c), Filtered: len(projected)}
	for _, t := range projected {
		if t.Completed {
			s.Completed++
		} else {
			s.Incomplete++
		}
	}
	return s
}
