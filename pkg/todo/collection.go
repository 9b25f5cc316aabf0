package todo

import (
	"slices"
	"sort"
)

// Collection is the full ordered sequence of todos owned by a Store.
type Collection []Todo

func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	return slices.Clone(c)
}

// Index returns the position of id in c, or -1
func (c Collection) Index(id ID) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) IDs() []ID {
	ids := make([]ID, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}

// MinOrder returns the smallest order in c. The second value is false when c is empty.
func (c Collection) MinOrder() (int, bool) {
	if len(c) == 0 {
		return 0, false
	}
	m := c[0].Order
	for _, t := range c[1:] {
		m = min(m, t.Order)
	}
	return m, true
}

// SortedByOrder returns a copy of c sorted by ascending order.
// Ties keep their position in c.
func (c Collection) SortedByOrder() Collection {
	out := c.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// isPermutationOf reports whether c holds exactly the ids of other, each once.
func (c Collection) isPermutationOf(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	want := make(map[ID]bool, len(other))
	for _, t := range other {
		want[t.ID] = true
	}
	for _, t := range c {
		if !want[t.ID] {
			return false
		}
		// each id may only be consumed once
		delete(want, t.ID)
	}
	return len(want) == 0
}
