// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage provides the implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/karim/exercise-tracker/internal/model"
)

// ExerciseFilter carries the optional filter and pagination window for
// exercise queries. Zero values mean "unset":
//
//   - Limit <= 0  → no row cap
//   - Offset <= 0 → start at the first row
//   - From/To ""  → no lower/upper date bound
//
// The service layer rejects limit < 1 and offset < 0 before anything
// reaches a repository, so the "<= 0 means unset" reading is never
// observable through the API; it only keeps the query builder honest.
type ExerciseFilter struct {
	Limit  int
	Offset int
	From   string // inclusive lower bound, YYYY-MM-DD
	To     string // inclusive upper bound, YYYY-MM-DD
}

// UserRepository persists and retrieves users.
//
// The Select methods return (nil, nil) when no row matches — absence is
// not an error at this layer. The service decides whether absence means
// 404 (lookups) or a failed existence check (child writes).
type UserRepository interface {
	// InsertUser stores a new user and returns it with the assigned id.
	// Returns a conflict error when the username is already taken.
	InsertUser(ctx context.Context, username string) (*model.User, error)
	SelectUserByID(ctx context.Context, id int64) (*model.User, error)
	SelectUserByUsername(ctx context.Context, username string) (*model.User, error)
	SelectAllUsers(ctx context.Context) ([]model.User, error)
}

// ExerciseRepository persists and retrieves exercise log entries.
type ExerciseRepository interface {
	// InsertExercise stores a new exercise for the given user and
	// returns the created record with its assigned id.
	InsertExercise(ctx context.Context, userID int64, ex model.Exercise) (*model.CreatedExercise, error)
	// SelectExercises returns the user's exercises matching the filter,
	// ordered ascending by date, with offset applied before limit.
	SelectExercises(ctx context.Context, userID int64, f ExerciseFilter) ([]model.Exercise, error)
	// CountExercises returns the number of exercises matching the date
	// bounds of the filter, ignoring Limit and Offset.
	CountExercises(ctx context.Context, userID int64, f ExerciseFilter) (int, error)
}
