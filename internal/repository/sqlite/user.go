package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/model"
	"github.com/karim/exercise-tracker/internal/repository"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// InsertUser stores a new user and returns it with the database-assigned id.
//
// The UNIQUE constraint on username is the only enforcement of
// uniqueness — we don't pre-check with a SELECT, we just insert and
// classify the failure. The driver reports constraint violations as a
// structured *sqlite.Error, so we match on the extended result code
// rather than grepping the error text.
func (db *DB) InsertUser(ctx context.Context, username string) (*model.User, error) {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username) VALUES (?)`,
		username,
	)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, apperror.Conflict(
				fmt.Sprintf("User already exists with username: %s", username))
		}
		return nil, fmt.Errorf("sqlite: inserting user %q: %w", username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading inserted user id: %w", err)
	}

	return &model.User{ID: id, Username: username}, nil
}

// SelectUserByID returns the user with the given id, or (nil, nil) if
// no such user exists. Absence is not an error here — the service
// decides whether it means 404 or a failed existence check.
func (db *DB) SelectUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: selecting user %d: %w", id, err)
	}
	return &u, nil
}

// SelectUserByUsername returns the user with the given username, or
// (nil, nil) if no such user exists.
func (db *DB) SelectUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: selecting user %q: %w", username, err)
	}
	return &u, nil
}

// SelectAllUsers returns every user. Empty slice (not nil) on no rows,
// so the handler always serializes a JSON array.
func (db *DB) SelectAllUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}
