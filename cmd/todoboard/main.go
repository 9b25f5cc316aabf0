// Command todoboard manages a list of todos from the terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// App carries the process environment so commands can run in tests without touching the real one.
type App struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app := &App{
		Dir:    wd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		Now:    time.Now,
	}
	if err := run(app, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// abs resolves path against the app's working directory
func (a *App) abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.Dir, path)
}
