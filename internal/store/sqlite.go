package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/todo/internal/models"
)

// memoryDSN opens a private in-memory database. Together with a single open
// connection the data lives exactly as long as the *sql.DB.
const memoryDSN = "file::memory:?_foreign_keys=on"

// SQLite is a Store backed by an in-memory SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens a fresh in-memory database and initialises the schema.
func OpenSQLite() (*SQLite, error) {
	sqldb, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("store.OpenSQLite: %w", err)
	}
	// Every new connection would see an empty database.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	s := &SQLite{db: sqldb}
	if err := s.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("store.OpenSQLite createSchema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection, discarding all data.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (s *SQLite) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			name    TEXT PRIMARY KEY,
			next_id INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_name  TEXT NOT NULL REFERENCES users(name),
			id         INTEGER NOT NULL,
			text       TEXT NOT NULL,
			completed  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			UNIQUE (user_name, id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// EnsureUser implements Store.
func (s *SQLite) EnsureUser(name string) (*models.User, bool, error) {
	res, err := s.db.Exec(`INSERT OR IGNORE INTO users (name, next_id) VALUES (?, 1)`, name)
	if err != nil {
		return nil, false, fmt.Errorf("EnsureUser: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("EnsureUser: %w", err)
	}
	u, found, err := s.User(name)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, fmt.Errorf("EnsureUser: user %q vanished", name)
	}
	return u, n == 1, nil
}

// User implements Store.
func (s *SQLite) User(name string) (*models.User, bool, error) {
	u := &models.User{Name: name, Todos: make([]models.Todo, 0)}
	err := s.db.QueryRow(`SELECT next_id FROM users WHERE name = ?`, name).Scan(&u.NextID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("User: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, text, completed, created_at FROM todos WHERE user_name = ? ORDER BY seq`, name,
	)
	if err != nil {
		return nil, false, fmt.Errorf("User todos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, false, fmt.Errorf("User scan: %w", err)
		}
		u.Todos = append(u.Todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("User rows: %w", err)
	}
	return u, true, nil
}

// ---------------------------------------------------------------------------
// Todos
// ---------------------------------------------------------------------------

// InsertTodo implements Store. The id is taken from users.next_id and the
// counter advanced inside one transaction.
func (s *SQLite) InsertTodo(name, text string, createdAt time.Time) (*models.Todo, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("InsertTodo begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	if err := tx.QueryRow(`SELECT next_id FROM users WHERE name = ?`, name).Scan(&id); err != nil {
		return nil, fmt.Errorf("InsertTodo next_id: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO todos (user_name, id, text, completed, created_at) VALUES (?, ?, ?, 0, ?)`,
		name, id, text, createdAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("InsertTodo insert: %w", err)
	}
	if _, err := tx.Exec(`UPDATE users SET next_id = next_id + 1 WHERE name = ?`, name); err != nil {
		return nil, fmt.Errorf("InsertTodo advance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("InsertTodo commit: %w", err)
	}
	return &models.Todo{ID: id, Text: text, CreatedAt: createdAt.UTC()}, nil
}

// MarkCompleted implements Store.
func (s *SQLite) MarkCompleted(name string, id int) (*models.Todo, bool, error) {
	res, err := s.db.Exec(`UPDATE todos SET completed = 1 WHERE user_name = ? AND id = ?`, name, id)
	if err != nil {
		return nil, false, fmt.Errorf("MarkCompleted: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, false, err
	}
	return s.getTodo(name, id)
}

// DeleteTodo implements Store.
func (s *SQLite) DeleteTodo(name string, id int) (*models.Todo, bool, error) {
	t, found, err := s.getTodo(name, id)
	if err != nil || !found {
		return nil, found, err
	}
	if _, err := s.db.Exec(`DELETE FROM todos WHERE user_name = ? AND id = ?`, name, id); err != nil {
		return nil, false, fmt.Errorf("DeleteTodo: %w", err)
	}
	return t, true, nil
}

func (s *SQLite) getTodo(name string, id int) (*models.Todo, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, text, completed, created_at FROM todos WHERE user_name = ? AND id = ?`, name, id,
	)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getTodo: %w", err)
	}
	return &t, true, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(r scanner) (models.Todo, error) {
	var (
		t         models.Todo
		completed int
		createdAt string
	)
	if err := r.Scan(&t.ID, &t.Text, &completed, &createdAt); err != nil {
		return models.Todo{}, err
	}
	t.Completed = completed != 0
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = ts
	return t, nil
}
