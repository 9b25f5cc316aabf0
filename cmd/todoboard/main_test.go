package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

var testNow = time.Date(2025, time.February, 5, 10, 0, 0, 0, time.Local)

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, "config"))
			env.Setenv("XDG_DATA_HOME", filepath.Join(env.WorkDir, "data"))
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"todoboard": cmdTodoboard,
			"todoid":    cmdTodoID,
		},
	})
}

// cmdTodoboard runs the cli in process against the script's environment.
func cmdTodoboard(ts *testscript.TestScript, neg bool, args []string) {
	app := &App{
		Dir:    ts.MkAbs("."),
		Stdin:  os.Stdin,
		Stdout: ts.Stdout(),
		Stderr: ts.Stderr(),
		Getenv: ts.Getenv,
		Now:    func() time.Time { return testNow },
	}
	err := run(app, args)
	if err != nil && !neg {
		ts.Fatalf("todoboard %v: %v", args, err)
	}
	if err == nil && neg {
		ts.Fatalf("todoboard %v: unexpected success", args)
	}
}

// cmdTodoID stores the id of the todo titled TITLE in the env var VAR.
// usage: todoid TITLE VAR
func cmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: todoid TITLE VAR")
	}
	path := filepath.Join(ts.Getenv("XDG_DATA_HOME"), "todoboard", "todos.json")
	var snap struct {
		Todos []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"todos"`
	}
	if err := json.Unmarshal([]byte(ts.ReadFile(path)), &snap); err != nil {
		ts.Fatalf("parse %s: %v", path, err)
	}
	for _, t := range snap.Todos {
		if t.Title == args[0] {
			ts.Setenv(args[1], t.ID)
			return
		}
	}
	ts.Fatalf("no todo titled %q", args[0])
}
