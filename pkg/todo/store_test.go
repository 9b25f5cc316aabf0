package todo

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) tick() { c.t = c.t.Add(time.Minute) }

type recorder struct{ saved []Collection }

func (r *recorder) Save(c Collection) bool {
	r.saved = append(r.saved, c)
	return true
}

func newStore() (*Store, *clock, *recorder) {
	c := &clock{t: epoch}
	r := &recorder{}
	return NewStore(WithClock(c.now), WithSaver(r)), c, r
}

func ptr[T any](v T) *T { return &v }

func TestStore_Add(t *testing.T) {
	is := is.New(t)
	s, clk, r := newStore()

	first, err := s.Add(Draft{Title: "  first  ", DueDate: ptr(epoch)})
	is.NoErr(err)
	is.Equal(first.Title, "first")
	is.Equal(first.Category, DefaultCategory)
	is.Equal(first.CreatedAt, epoch)
	is.Equal(first.UpdatedAt, epoch)
	is.Equal(*first.DueDate, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))
	is.True(first.ID != "")

	clk.tick()
	second, err := s.Add(Draft{Title: "second", Category: Work})
	is.NoErr(err)
	is.True(second.Order < first.Order)
	is.Equal(s.All().SortedByOrder()[0].ID, second.ID)
	is.Equal(len(r.saved), 2)

	_, err = s.Add(Draft{Title: "   "})
	is.Equal(err, ErrEmptyTitle)
	is.Equal(s.Len(), 2)
	is.Equal(len(r.saved), 2) // failed mutations are not saved
}

func TestStore_Update(t *testing.T) {
	s, clk, _ := newStore()
	todo, _ := s.Add(Draft{Title: "write", DueDate: ptr(epoch)})
	clk.tick()

	t.Run("applies the given fields", func(t *testing.T) {
		is := is.New(t)
		got, err := s.Update(todo.ID, Patch{Title: ptr("rewrite"), Category: ptr(Urgent)})
		is.NoErr(err)
		is.Equal(got.Title, "rewrite")
		is.Equal(got.Category, Urgent)
		is.True(got.DueDate != nil)
		is.Equal(got.CreatedAt, epoch)
		is.Equal(got.UpdatedAt, clk.t)
	})

	t.Run("clears the due date", func(t *testing.T) {
		is := is.New(t)
		got, err := s.Update(todo.ID, Patch{DueSet: true})
		is.NoErr(err)
		is.True(got.DueDate == nil)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		is := is.New(t)
		_, err := s.Update(todo.ID, Patch{Title: ptr("")})
		is.Equal(err, ErrEmptyTitle)
	})

	t.Run("unknown id", func(t *testing.T) {
		is := is.New(t)
		_, err := s.Update("nope", Patch{Title: ptr("x")})
		is.Equal(err, ErrNotFound)
	})
}

func TestStore_UpdatedNeverBeforeCreated(t *testing.T) {
	is := is.New(t)
	s, clk, _ := newStore()
	todo, _ := s.Add(Draft{Title: "x"})
	clk.t = epoch.Add(-time.Hour)
	got, err := s.Toggle(todo.ID)
	is.NoErr(err)
	is.True(got.Completed)
	is.Equal(got.UpdatedAt, got.CreatedAt)
}

func TestStore_Toggle(t *testing.T) {
	is := is.New(t)
	s, _, _ := newStore()
	todo, _ := s.Add(Draft{Title: "x"})
	got, _ := s.Toggle(todo.ID)
	is.True(got.Completed)
	got, _ = s.Toggle(todo.ID)
	is.True(!got.Completed)
}

func TestStore_Delete(t *testing.T) {
	is := is.New(t)
	s, _, r := newStore()
	a, _ := s.Add(Draft{Title: "a"})
	s.Add(Draft{Title: "b"})
	is.NoErr(s.Delete(a.ID))
	is.Equal(s.Len(), 1)
	is.Equal(s.Delete(a.ID), ErrNotFound)
	is.Equal(len(r.saved[len(r.saved)-1]), 1)
}

func TestStore_Reorder(t *testing.T) {
	s, clk, _ := newStore()
	c, _ := s.Add(Draft{Title: "c"})
	b, _ := s.Add(Draft{Title: "b"})
	a, _ := s.Add(Draft{Title: "a"})
	clk.tick()

	t.Run("assigns consecutive orders", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.Reorder(Collection{c, a, b}))
		sorted := s.All().SortedByOrder()
		is.Equal(titles(sorted), []string{"c", "a", "b"})
		for i, todo := range sorted {
			is.Equal(todo.Order, i)
			is.Equal(todo.UpdatedAt, clk.t)
		}
	})

	t.Run("keeps newer field values than the given copies", func(t *testing.T) {
		is := is.New(t)
		s.Toggle(a.ID)
		is.NoErr(s.Reorder(Collection{a, b, c}))
		got, _ := s.Get(a.ID)
		is.True(got.Completed)
	})

	t.Run("rejects partial sequences", func(t *testing.T) {
		is := is.New(t)
		is.Equal(s.Reorder(Collection{a, b}), ErrNotPermutation)
		is.Equal(s.Reorder(Collection{a, a, b}), ErrNotPermutation)
	})
}

func TestStore_SortByDueDate(t *testing.T) {
	is := is.New(t)
	s, _, _ := newStore()
	s.Add(Draft{Title: "B"})
	s.Add(Draft{Title: "C", DueDate: due(2025, 2, 1)})
	s.Add(Draft{Title: "A", DueDate: due(2025, 3, 1)})

	s.SortByDueDate(Asc)
	is.Equal(titles(s.All().SortedByOrder()), []string{"C", "A", "B"})
	s.SortByDueDate(Desc)
	is.Equal(titles(s.All().SortedByOrder()), []string{"A", "C", "B"})
}

func TestStore_MovePage(t *testing.T) {
	is := is.New(t)
	s, _, _ := newStore()
	for _, title := range []string{"e", "d", "c", "b", "a"} {
		s.Add(Draft{Title: title})
	}
	f := DefaultFilter()
	page := Paginate(Project(s.All(), f), 1, 5).Items
	is.NoErr(s.MovePage(f, 1, 5, Move(page, 4, 0)))
	is.Equal(titles(Project(s.All(), f)), []string{"e", "a", "b", "c", "d"})

	locked := Filter{Search: "a", ShowCompleted: true, ShowIncomplete: true}
	is.Equal(s.MovePage(locked, 1, 5, page), ErrReorderLocked)
}

func TestStore_Import(t *testing.T) {
	drafts := []Draft{{Title: "one"}, {Title: ""}, {Title: "two"}, {Title: "three"}}

	t.Run("replace", func(t *testing.T) {
		is := is.New(t)
		s, _, _ := newStore()
		s.Add(Draft{Title: "existing"})
		imported, skipped := s.Import(drafts, Replace)
		is.Equal(imported, 3)
		is.Equal(skipped, 1)
		is.Equal(titles(s.All().SortedByOrder()), []string{"one", "two", "three"})
	})

	t.Run("merge puts imported todos first in file order", func(t *testing.T) {
		is := is.New(t)
		s, _, _ := newStore()
		s.Add(Draft{Title: "existing"})
		s.Import(drafts, Merge)
		is.Equal(titles(s.All().SortedByOrder()), []string{"one", "two", "three", "existing"})
	})
}

func TestStore_Resolve(t *testing.T) {
	is := is.New(t)
	s := NewStore()
	s.Replace(Collection{{ID: "abc123"}, {ID: "abd456"}, {ID: "x"}})

	got, err := s.Resolve("abc")
	is.NoErr(err)
	is.Equal(got.ID, ID("abc123"))
	_, err = s.Resolve("ab")
	is.Equal(err, ErrAmbiguousID)
	_, err = s.Resolve("zzz")
	is.Equal(err, ErrNotFound)
	got, err = s.Resolve("x")
	is.NoErr(err)
	is.Equal(got.ID, ID("x"))
}

func TestStore_Clear(t *testing.T) {
	is := is.New(t)
	s, _, r := newStore()
	s.Add(Draft{Title: "x"})
	s.Clear()
	is.Equal(s.Len(), 0)
	is.Equal(len(r.saved[len(r.saved)-1]), 0)
}
