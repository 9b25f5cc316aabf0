package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

// snapshot is the stored shape of a collection.
// Older files may lack order or category, so those are optional here.
type snapshot struct {
	Todos []record `json:"todos"`
}

type record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Completed   bool      `json:"completed"`
	DueDate     *string   `json:"dueDate"`
	Order       *int      `json:"order,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newRecord(t todo.Todo) record {
	order := t.Order
	r := record{
		ID:          string(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Completed:   t.Completed,
		Order:       &order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := date.FormatISO(t.DueDate)
		r.DueDate = &due
	}
	return r
}

// newSavable turns a collection into its stored shape, keeping the slice order.
func newSavable(c todo.Collection) snapshot {
	s := snapshot{Todos: make([]record, len(c))}
	for i, t := range c {
		s.Todos[i] = newRecord(t)
	}
	return s
}

// decode checks bs against the snapshot schema and loads it.
func decode(bs []byte) (todo.Collection, []string, error) {
	if err := checkSchema(bs); err != nil {
		return nil, nil, err
	}
	var s snapshot
	if err := json.Unmarshal(bs, &s); err != nil {
		return nil, nil, err
	}
	c, warnings := s.Load()
	return c, warnings, nil
}

// Load converts the snapshot into a collection.
// Records without an order get their index, unknown categories become the
// default one and repeated ids are dropped after the first. Each repair is
// reported in the returned warnings.
func (s snapshot) Load() (todo.Collection, []string) {
	var warnings []string
	seen := make(map[todo.ID]bool, len(s.Todos))
	c := make(todo.Collection, 0, len(s.Todos))
	for i, r := range s.Todos {
		id := todo.ID(r.ID)
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("dropped duplicate id %q at index %d", r.ID, i))
			continue
		}
		seen[id] = true

		t := todo.Todo{
			ID:          id,
			Title:       r.Title,
			Description: r.Description,
			Completed:   r.Completed,
			Order:       i,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
		if r.Order != nil {
			t.Order = *r.Order
		}
		category, ok := todo.ParseCategory(r.Category)
		if !ok {
			category = todo.DefaultCategory
			if r.Category != "" {
				warnings = append(warnings, fmt.Sprintf("todo %s: unknown category %q", r.ID, r.Category))
			}
		}
		t.Category = category
		if r.DueDate != nil && *r.DueDate != "" {
			due, err := date.ParseAbsolute(*r.DueDate)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("todo %s: unreadable due date %q", r.ID, *r.DueDate))
			} else {
				t.DueDate = due
			}
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		c = append(c, t)
	}
	return c, warnings
}
