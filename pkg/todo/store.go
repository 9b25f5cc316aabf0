package todo

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("todo not found")
	ErrAmbiguousID    = errors.New("id prefix matches more than one todo")
	ErrEmptyTitle     = errors.New("title is required")
	ErrNotPermutation = errors.New("sequence is not a permutation of the current todos")
	ErrReorderLocked  = errors.New("reordering is disabled while a search or status filter is active")
)

// Saver receives every new collection after a mutation.
type Saver interface {
	Save(Collection) bool
}

type ImportMode int

const (
	// Replace drops the current collection in favour of the imported todos
	Replace ImportMode = iota
	// Merge puts the imported todos ahead of the current ones
	Merge
)

// Store owns the session's collection. All mutations replace the whole
// collection, so a Collection handed out by All is never changed afterwards.
type Store struct {
	todos Collection
	now   func() time.Time
	saver Saver
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithSaver(saver Saver) Option {
	return func(s *Store) { s.saver = saver }
}

func NewStore(opts ...Option) *Store {
	s := &Store{todos: Collection{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) All() Collection {
	return s.todos.Clone()
}

func (s *Store) Len() int {
	return len(s.todos)
}

func (s *Store) Get(id ID) (Todo, error) {
	i := s.todos.Index(id)
	if i < 0 {
		return Todo{}, ErrNotFound
	}
	return s.todos[i], nil
}

// Resolve finds the todo whose id is id or starts with it.
func (s *Store) Resolve(prefix string) (Todo, error) {
	if t, err := s.Get(ID(prefix)); err == nil {
		return t, nil
	}
	var found []Todo
	for _, t := range s.todos {
		if prefix != "" && strings.HasPrefix(string(t.ID), prefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Todo{}, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return Todo{}, ErrAmbiguousID
	}
}

func (s *Store) commit(c Collection) {
	s.todos = c
	if s.saver != nil {
		s.saver.Save(s.todos.Clone())
	}
}

// Add creates a todo that sorts before every existing one
func (s *Store) Add(d Draft) (Todo, error) {
	if strings.TrimSpace(d.Title) == "" {
		return Todo{}, ErrEmptyTitle
	}
	next := Insert(s.todos, New(d, s.now()))
	s.commit(next)
	return next[0], nil
}

func (s *Store) Update(id ID, p Patch) (Todo, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Todo{}, ErrEmptyTitle
	}
	return s.mutate(id, func(t Todo) Todo { return t.apply(p) })
}

func (s *Store) Toggle(id ID) (Todo, error) {
	return s.mutate(id, func(t Todo) Todo {
		t.Completed = !t.Completed
		return t
	})
}

func (s *Store) mutate(id ID, fn func(Todo) Todo) (Todo, error) {
	i := s.todos.Index(id)
	if i < 0 {
		return Todo{}, ErrNotFound
	}
	next := s.todos.Clone()
	t := fn(next[i])
	// identity is not up for change
	t.ID, t.CreatedAt = next[i].ID, next[i].CreatedAt
	next[i] = t.Touch(s.now())
	s.commit(next)
	return next[i], nil
}

func (s *Store) Delete(id ID) error {
	if s.todos.Index(id) < 0 {
		return ErrNotFound
	}
	s.commit(Delete(s.todos, id))
	return nil
}

// Reorder makes seq the new manual order. seq must hold every todo exactly once.
func (s *Store) Reorder(seq Collection) error {
	if !seq.isPermutationOf(s.todos) {
		return ErrNotPermutation
	}
	// take the stored version of each todo, callers may hold stale copies
	current := make(map[ID]Todo, len(s.todos))
	for _, t := range s.todos {
		current[t.ID] = t
	}
	fresh := make(Collection, len(seq))
	for i, t := range seq {
		fresh[i] = current[t.ID]
	}
	s.commit(Reorder(fresh, s.now()))
	return nil
}

func (s *Store) SortByDueDate(dir Direction) {
	s.commit(SortByDueDate(s.todos, dir, s.now()))
}

// MovePage applies a reordering of one page of the projection through f.
func (s *Store) MovePage(f Filter, page, size int, reordered Collection) error {
	seq, err := MapPageReorder(Project(s.todos, f), f, page, size, reordered)
	if err != nil {
		return err
	}
	return s.Reorder(seq)
}

// Import creates one todo per draft. Drafts with an empty title are skipped
// and counted in the returned value.
func (s *Store) Import(drafts []Draft, mode ImportMode) (imported int, skipped int) {
	now := s.now()
	batch := make([]Todo, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.Title) == "" {
			skipped++
			continue
		}
		batch = append(batch, New(d, now))
	}
	base := s.todos
	if mode == Replace {
		base = Collection{}
	}
	s.commit(InsertBatch(base, batch))
	return len(batch), skipped
}

// Replace swaps the whole collection, e.g. after loading it from storage.
// It does not notify the saver.
func (s *Store) Replace(c Collection) {
	s.todos = c.Clone()
}

func (s *Store) Clear() {
	s.commit(Collection{})
}
