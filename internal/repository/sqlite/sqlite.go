// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite,
// so there is no CGo and no C toolchain involved; the database lives in
// a single file (or entirely in memory with ":memory:", which is what
// the tests use).
//
// One *sql.DB pool is opened at startup, shared by every request for
// the process lifetime, and closed on shutdown. Each logical operation
// is a single autocommitting statement — there is no transaction or
// locking discipline on top of what SQLite serializes internally.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the shared connection pool and provides the repository
// methods (see user.go and exercise.go).
type DB struct {
	conn *sql.DB
}

// New opens the database, verifies the connection, and lazily
// provisions the schema. Pass ":memory:" for an in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so
	// a bad path or permissions problem surfaces at startup, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// Cap the pool at a single connection. database/sql would happily
	// open more, but every ":memory:" connection is its own empty
	// database, and concurrent writers on a file database surface as
	// SQLITE_BUSY. One shared connection serializes access and matches
	// how the service uses the store anyway.
	conn.SetMaxOpenConns(1)

	// WAL lets concurrent reads proceed while a write is in flight,
	// which matters once multiple HTTP requests share this pool.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: provisioning schema: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right
// after New so the WAL is flushed and the file lock released on exit.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate provisions the two tables if absent. CREATE TABLE IF NOT
// EXISTS makes this safe to run on every startup.
//
// Note there is deliberately no FOREIGN KEY on exercises.user_id:
// referential existence is enforced by an explicit user lookup in the
// service layer before any child read or write.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS exercises (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER,
			description TEXT NOT NULL,
			duration    INTEGER,
			date        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(user_id, date);
	`)
	if err != nil {
		return fmt.Errorf("creating exercises table: %w", err)
	}

	return nil
}

// query assembles one parameterized statement from typed fragment /
// argument pairs appended in order. Filter values never touch the SQL
// text — every conditional fragment binds its value through a ?
// placeholder, so there is no string concatenation of untrusted input.
type query struct {
	sql  strings.Builder
	args []any
}

// write appends a fragment with no bound arguments.
func (q *query) write(fragment string) {
	q.sql.WriteString(fragment)
}

// bind appends a fragment together with the arguments for its
// placeholders. The fragment must contain one ? per argument.
func (q *query) bind(fragment string, args ...any) {
	q.sql.WriteString(fragment)
	q.args = append(q.args, args...)
}

func (q *query) String() string {
	return q.sql.String()
}
