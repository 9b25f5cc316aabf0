package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/td0m/todoboard/pkg/todo"
)

type Persistor interface {
	Save(todo.Collection) error
	// Load returns the stored collection together with any repairs made while reading it.
	Load() (todo.Collection, []string, error)
	Close() error
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns the backend named backend storing its data at path.
func Open(backend, path string) (Persistor, error) {
	switch backend {
	case BackendJSON, "":
		return InJSON(path), nil
	case BackendSQLite:
		s, err := InSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type JSON struct {
	file string
}

func InJSON(file string) *JSON {
	return &JSON{file}
}

// Save writes the collection to a temporary file and renames it over the old one.
func (j JSON) Save(c todo.Collection) error {
	bs, err := json.MarshalIndent(newSavable(c), "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(j.file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(j.file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o660); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), j.file)
}

// Load loads and validates the todos in the json file. A missing file is an empty collection.
func (j JSON) Load() (todo.Collection, []string, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, fs.ErrNotExist) {
		return todo.Collection{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return decode(bs)
}

func (j JSON) Close() error {
	return nil
}
