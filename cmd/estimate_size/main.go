// Command estimate_size measures how long the storage backends take to save
// and load a large todo list, and how big the result is on disk.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/todoboard/pkg/persist"
	"github.com/td0m/todoboard/pkg/todo"
)

var categories = todo.Categories

func main() {
	years := flag.Int("years", 10, "years of todos to generate")
	perDay := flag.Int("per-day", 30, "todos created per day")
	flag.Parse()

	total := 365 * *perDay * *years
	c := generate(total, time.Now())
	fmt.Printf("Todos: %d years, %d per day (%d total)\n", *years, *perDay, total)

	dir, err := os.MkdirTemp("", "todoboard-size")
	check(err)
	defer os.RemoveAll(dir)

	for _, backend := range []string{persist.BackendJSON, persist.BackendSQLite} {
		file := filepath.Join(dir, "todos."+backend)
		p, err := persist.Open(backend, file)
		check(err)

		writeTime := measureTime(func() {
			check(p.Save(c))
		})
		readTime := measureTime(func() {
			_, _, err := p.Load()
			check(err)
		})
		check(p.Close())

		info, err := os.Stat(file)
		check(err)
		fmt.Printf("\n[%s]\n", backend)
		fmt.Printf("File size: %dMB\n", info.Size()/1024/1024)
		fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
		fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
	}
}

// generate builds n todos, roughly half of them due and a third completed
func generate(n int, now time.Time) todo.Collection {
	drafts := make([]todo.Draft, n)
	for i := range drafts {
		d := todo.Draft{
			Title:       randomString(24),
			Description: randomString(rand.Intn(80)),
			Category:    categories[rand.Intn(len(categories))],
			Completed:   rand.Intn(3) == 0,
		}
		if rand.Intn(2) == 0 {
			due := now.AddDate(0, 0, rand.Intn(365)-180)
			d.DueDate = &due
		}
		drafts[i] = d
	}
	s := todo.NewStore(todo.WithClock(func() time.Time { return now }))
	s.Import(drafts, todo.Replace)
	return s.All()
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
