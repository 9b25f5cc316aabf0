package todo

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"work", Work, true},
		{" URGENT ", Urgent, true},
		{"Personal", Personal, true},
		{"chores", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			is := is.New(t)
			got, ok := ParseCategory(tt.in)
			is.Equal(ok, tt.ok)
			is.Equal(got, tt.want)
		})
	}
}

func TestCategory_Next(t *testing.T) {
	is := is.New(t)
	is.Equal(Work.Next(), Personal)
	is.Equal(Personal.Next(), Urgent)
	is.Equal(Urgent.Next(), Work)
	is.Equal(Category("other").Next(), DefaultCategory)
}

func TestTodo_Due(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name          string
		due           *time.Time
		overdue, soon bool
	}{
		{"no due date", nil, false, false},
		{"yesterday", due(2025, 1, 9), true, false},
		{"today", due(2025, 1, 10), false, true},
		{"in three days", due(2025, 1, 13), false, true},
		{"in four days", due(2025, 1, 14), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			todo := Todo{DueDate: tt.due}
			is.Equal(todo.HasDue(), tt.due != nil)
			is.Equal(todo.IsOverdue(now), tt.overdue)
			is.Equal(todo.IsDueSoon(now, 3), tt.soon)
		})
	}
}

func TestNew_IDsAreUnique(t *testing.T) {
	is := is.New(t)
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		todo := New(Draft{Title: "x"}, epoch)
		is.True(!seen[todo.ID])
		seen[todo.ID] = true
		is.Equal(todo.Order, 0)
	}
}
