package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/td0m/todoboard/pkg/todo/date"
)

type ID string

// NewID returns a random v4 uuid
func NewID() ID {
	return ID(uuid.NewString())
}

type Category string

const (
	Work     Category = "Work"
	Personal Category = "Personal"
	Urgent   Category = "Urgent"

	DefaultCategory = Personal
)

var Categories = []Category{Work, Personal, Urgent}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Next returns the category after c, wrapping around
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return DefaultCategory
}

type Todo struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Draft holds the user supplied fields of a todo that does not exist yet.
type Draft struct {
	Title       string
	Description string
	Category    Category
	DueDate     *time.Time
	Completed   bool
}

// New creates a todo from a draft. The order is left at zero, Insert decides it.
func New(d Draft, now time.Time) Todo {
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}
	return Todo{
		ID:          NewID(),
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    category,
		Completed:   d.Completed,
		DueDate:     dueDay(d.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch describes an update. Nil fields are left alone.
type Patch struct {
	Title       *string
	Description *string
	Category    *Category
	Completed   *bool

	// DueSet must be true for DueDate to be applied, so that a due date can be cleared.
	DueSet  bool
	DueDate *time.Time
}

func (t Todo) apply(p Patch) Todo {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueSet {
		t.DueDate = dueDay(p.DueDate)
	}
	return t
}

// Touch refreshes UpdatedAt, never letting it fall behind CreatedAt
func (t Todo) Touch(now time.Time) Todo {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
	return t
}

func (t Todo) HasDue() bool {
	return t.DueDate != nil
}

func (t Todo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && date.IsOverdue(*t.DueDate, now)
}

func (t Todo) IsDueSoon(now time.Time, days int) bool {
	return t.DueDate != nil && date.IsDueSoon(*t.DueDate, now, days)
}

func dueDay(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := date.StartOfDay(*d)
	return &day
}
