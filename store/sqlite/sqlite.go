// Package sqlite implements store.Store on an embedded SQLite database
// using the pure-Go modernc.org driver.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"taskpad/store"
)

// Store implements store.Store backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time

	defaultPriorities []string
	defaultCategories []string
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMaxConnections caps the connection pool size.
func WithMaxConnections(n int) Option {
	return func(s *Store) { s.db.SetMaxOpenConns(n) }
}

// WithDefaults sets the built-in priority and category names merged into
// every user's catalog listing.
func WithDefaults(priorities, categories []string) Option {
	return func(s *Store) {
		s.defaultPriorities = priorities
		s.defaultCategories = categories
	}
}

// New opens (or creates) the database at path and initializes the schema.
// Use ":memory:" for an ephemeral database.
func New(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// initSchema creates the tables and unique indexes if they don't exist.
func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT DEFAULT '',
			username TEXT NOT NULL UNIQUE,
			email TEXT DEFAULT '',
			password_hash TEXT NOT NULL,
			salt TEXT NOT NULL,
			created_at TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			due_date TEXT DEFAULT '',
			priority TEXT DEFAULT '',
			category TEXT DEFAULT '',
			created_at TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 1,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS priorities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			color TEXT DEFAULT '',
			created_at TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 1,
			UNIQUE (user_id, name),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 1,
			UNIQUE (user_id, name),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS preferences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			key TEXT NOT NULL,
			value TEXT DEFAULT '',
			UNIQUE (user_id, key),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);

		CREATE TABLE IF NOT EXISTS user_activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			type TEXT NOT NULL,
			created_at TEXT NOT NULL,
			status TEXT DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
		CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
	`

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// timestamp renders the current time in the storage format.
func (s *Store) timestamp() string {
	return s.now().Format(store.TimeLayout)
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. The modernc driver exposes no typed error for this, so the
// message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanner abstracts *sql.Row and *sql.Rows so the scan helpers work with
// both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTaskFrom scans a task row in the canonical column order, including
// the joined priority color.
func scanTaskFrom(sc scanner) (*store.Task, error) {
	var t store.Task
	var color sql.NullString
	if err := sc.Scan(&t.ID, &t.UserID, &t.Name, &t.DueDate, &t.Priority, &t.Category, &t.CreatedAt, &t.Status, &color); err != nil {
		return nil, err
	}
	if color.Valid {
		t.PriorityColor = color.String
	}
	return &t, nil
}

// scanUserFrom scans a user row in the canonical column order.
func scanUserFrom(sc scanner) (*store.User, error) {
	var u store.User
	if err := sc.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt, &u.Status); err != nil {
		return nil, err
	}
	return &u, nil
}
