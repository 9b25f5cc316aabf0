package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/td0m/todoboard/pkg/todo"

	_ "modernc.org/sqlite"
)

// SQLite keeps one row per todo. Rows hold the same json record as the file backend.
type SQLite struct {
	db *sql.DB
}

func InSQLite(path string) (*SQLite, error) {
	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	const schema = `CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		json TEXT NOT NULL
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Save replaces every stored row in a single transaction.
func (s *SQLite) Save(c todo.Collection) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos;`); err != nil {
		return err
	}
	// a repeated id would violate the primary key, the first one wins
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO todos(id, position, json) VALUES(?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range c {
		bs, err := json.Marshal(newRecord(t))
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, string(t.ID), i, string(bs)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Load() (todo.Collection, []string, error) {
	rows, err := s.db.QueryContext(context.Background(), `SELECT json FROM todos ORDER BY position;`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var env struct {
		Todos []json.RawMessage `json:"todos"`
	}
	env.Todos = []json.RawMessage{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, nil, err
		}
		env.Todos = append(env.Todos, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	bs, err := json.Marshal(env)
	if err != nil {
		return nil, nil, err
	}
	return decode(bs)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
