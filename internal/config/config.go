// Package config loads the todoboard.toml style configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hay-kot/criterio"
	"github.com/td0m/todoboard/internal/ui"
	"github.com/td0m/todoboard/pkg/persist"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

type Config struct {
	ItemsPerPage int     `toml:"items_per_page"`
	Theme        string  `toml:"theme"`
	DueSoonDays  int     `toml:"due_soon_days"`
	Storage      Storage `toml:"storage"`
	Search       Search  `toml:"search"`
	Log          Log     `toml:"log"`
}

type Storage struct {
	// Backend is json or sqlite
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type Search struct {
	Debounce Duration `toml:"debounce"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration reads values such as "300ms" or "1s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DefaultConfig(dataDir string) Config {
	return Config{
		ItemsPerPage: todo.DefaultPerPage,
		Theme:        ui.DefaultTheme,
		DueSoonDays:  date.DefaultSoonDays,
		Storage: Storage{
			Backend: persist.BackendJSON,
			Path:    StoragePath(dataDir, persist.BackendJSON),
		},
		Search: Search{Debounce: Duration{300 * time.Millisecond}},
		Log: Log{
			Level: "info",
			File:  filepath.Join(dataDir, "todoboard.log"),
		},
	}
}

// Path returns the default config file location.
func Path(getenv func(string) string) string {
	dir := getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "todoboard", "config.toml")
}

// DataDir is where todos and logs live unless configured otherwise.
func DataDir(getenv func(string) string) string {
	if dir := getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "todoboard")
	}
	return filepath.Join(getenv("HOME"), ".local", "share", "todoboard")
}

// StoragePath is the default todo file for backend inside dataDir.
func StoragePath(dataDir, backend string) string {
	if backend == persist.BackendSQLite {
		return filepath.Join(dataDir, "todos.db")
	}
	return filepath.Join(dataDir, "todos.json")
}

var logLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Load reads the file at path on top of the defaults for dataDir.
// A missing file is not an error.
func Load(path, dataDir string) (*Config, error) {
	cfg := DefaultConfig(dataDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	// a storage backend without a path keeps the default file name for that backend
	if !meta.IsDefined("storage", "path") {
		cfg.Storage.Path = StoragePath(dataDir, cfg.Storage.Backend)
	}
	// relative paths are relative to the config file
	dir := filepath.Dir(path)
	cfg.Storage.Path = relativeTo(dir, cfg.Storage.Path)
	cfg.Log.File = relativeTo(dir, cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("items_per_page", c.ItemsPerPage, criterio.Min(todo.MinPerPage)),
		criterio.Run("due_soon_days", c.DueSoonDays, criterio.Min(0)),
		criterio.Run("theme", c.Theme, criterio.StrOneOf(ui.ThemeNames()...)),
		criterio.Run("storage.backend", c.Storage.Backend, criterio.StrOneOf(persist.BackendJSON, persist.BackendSQLite)),
		criterio.Run("storage.path", c.Storage.Path, criterio.StrNotEmpty),
		criterio.Run("search.debounce", c.Search.Debounce.Duration, criterio.DurMin(0)),
		criterio.Run("log.level", c.Log.Level, criterio.StrOneOf(logLevels...)),
	)
}
