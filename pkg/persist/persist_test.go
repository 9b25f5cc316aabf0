package persist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
	"github.com/td0m/todoboard/pkg/todo"
)

var created = time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC)

func sample() todo.Collection {
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	return todo.Collection{
		{ID: "b", Title: "second", Category: todo.Work, Order: -1, DueDate: &due, CreatedAt: created, UpdatedAt: created},
		{ID: "a", Title: "first", Description: "desc", Category: todo.Urgent, Completed: true, Order: 4, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}
}

func backends(t *testing.T) map[string]Persistor {
	dir := t.TempDir()
	sqlite, err := Open(BackendSQLite, filepath.Join(dir, "todos.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Persistor{
		BackendJSON:   InJSON(filepath.Join(dir, "nested", "todos.json")),
		BackendSQLite: sqlite,
	}
}

func TestSaveLoad(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			is.NoErr(p.Save(sample()))

			got, warnings, err := p.Load()
			is.NoErr(err)
			is.Equal(len(warnings), 0)
			is.Equal(len(got), 2)
			want := sample()
			for i := range want {
				is.Equal(got[i].ID, want[i].ID)
				is.Equal(got[i].Title, want[i].Title)
				is.Equal(got[i].Description, want[i].Description)
				is.Equal(got[i].Category, want[i].Category)
				is.Equal(got[i].Completed, want[i].Completed)
				is.Equal(got[i].Order, want[i].Order)
				is.True(got[i].CreatedAt.Equal(want[i].CreatedAt))
				is.True(got[i].UpdatedAt.Equal(want[i].UpdatedAt))
			}
			is.True(got[0].DueDate.Equal(*want[0].DueDate))
			is.True(got[1].DueDate == nil)

			// saving again replaces everything
			is.NoErr(p.Save(sample()[:1]))
			got, _, err = p.Load()
			is.NoErr(err)
			is.Equal(len(got), 1)
		})
	}
}

func TestJSON_MissingFile(t *testing.T) {
	is := is.New(t)
	got, _, err := InJSON(filepath.Join(t.TempDir(), "none.json")).Load()
	is.NoErr(err)
	is.Equal(len(got), 0)
}

func TestJSON_Envelope(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "todos.json")
	is.NoErr(InJSON(file).Save(sample()))
	bs, err := os.ReadFile(file)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(bs), "{\n  \"todos\": ["))
	is.True(strings.Contains(string(bs), `"dueDate": "2025-02-01"`))
}

func TestLoad_Repairs(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "todos.json")
	data := `{"todos":[
		{"id":"x","title":"no order"},
		{"id":"y","title":"has order","order":-3,"category":"chores"},
		{"id":"x","title":"duplicate"},
		{"id":"z","title":"iso due","dueDate":"2025-03-04T00:00:00.000Z"}
	]}`
	is.NoErr(os.WriteFile(file, []byte(data), 0o600))

	got, warnings, err := InJSON(file).Load()
	is.NoErr(err)
	is.Equal(got.IDs(), []todo.ID{"x", "y", "z"})
	is.Equal(got[0].Order, 0) // index fills a missing order
	is.Equal(got[1].Order, -3)
	is.Equal(got[2].Order, 3)
	is.Equal(got[1].Category, todo.Personal)
	is.True(got[2].DueDate != nil)
	is.Equal(len(warnings), 2) // duplicate and unknown category
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"todos": [`},
		{"no envelope", `[]`},
		{"missing title", `{"todos":[{"id":"a"}]}`},
		{"id of wrong type", `{"todos":[{"id":1,"title":"a"}]}`},
		{"fractional order", `{"todos":[{"id":"a","title":"a","order":1.5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			file := filepath.Join(t.TempDir(), "todos.json")
			is.NoErr(os.WriteFile(file, []byte(tt.data), 0o600))
			_, _, err := InJSON(file).Load()
			is.True(errors.Is(err, ErrInvalidSnapshot))
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	is := is.New(t)
	_, err := Open("postgres", "x")
	is.True(errors.Is(err, ErrUnknownBackend))
}

type failing struct{}

func (failing) Save(todo.Collection) error                { return errors.New("disk full") }
func (failing) Load() (todo.Collection, []string, error) { return nil, nil, errors.New("corrupt") }
func (failing) Close() error                              { return nil }

func TestGateway(t *testing.T) {
	t.Run("never fails the caller", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer
		g := NewGateway(failing{}, log.New(&buf))
		is.Equal(len(g.Load()), 0)
		is.True(!g.Save(sample()))
		is.True(strings.Contains(buf.String(), "corrupt"))
		is.True(strings.Contains(buf.String(), "disk full"))
	})

	t.Run("saves through the store", func(t *testing.T) {
		is := is.New(t)
		p := InJSON(filepath.Join(t.TempDir(), "todos.json"))
		g := NewGateway(p, nil)
		s := todo.NewStore(todo.WithSaver(g))
		_, err := s.Add(todo.Draft{Title: "persisted"})
		is.NoErr(err)

		got := g.Load()
		is.Equal(len(got), 1)
		is.Equal(got[0].Title, "persisted")
	})
}
