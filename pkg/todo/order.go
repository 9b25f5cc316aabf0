package todo

import (
	"sort"
	"time"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection accepts "asc" and "desc"
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return Asc, false
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Insert gives t an order below every existing todo and puts it first.
func Insert(c Collection, t Todo) Collection {
	t.Order = 0
	if m, ok := c.MinOrder(); ok {
		t.Order = m - 1
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, t)
	return append(out, c...)
}

// InsertBatch inserts ts ahead of every todo in c.
// Each inserted todo sorts below the previous minimum while the batch keeps its own order.
func InsertBatch(c Collection, ts []Todo) Collection {
	n := len(ts)
	base := 0
	if m, ok := c.MinOrder(); ok {
		base = m - n
	}
	out := make(Collection, 0, len(c)+n)
	for i, t := range ts {
		t.Order = base + i
		out = append(out, t)
	}
	return append(out, c...)
}

// Reorder returns seq with dense orders 0..n-1 following its sequence.
func Reorder(seq Collection, now time.Time) Collection {
	out := make(Collection, len(seq))
	for i, t := range seq {
		t.Order = i
		out[i] = t.Touch(now)
	}
	return out
}

// SortByDueDate orders todos with a due date first (by date in direction dir)
// and todos without one last. Equal dates and undated todos keep their manual order.
// The result is normalized through Reorder.
func SortByDueDate(c Collection, dir Direction, now time.Time) Collection {
	sorted := c.SortedByOrder()
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DueDate, sorted[j].DueDate
		switch {
		case a != nil && b != nil:
			if dir == Desc {
				return a.After(*b)
			}
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return Reorder(sorted, now)
}

// Delete removes the todo with the given id. Remaining orders are left as is.
func Delete(c Collection, id ID) Collection {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
