package sqlite

import (
	"context"
	"fmt"

	"github.com/karim/exercise-tracker/internal/model"
	"github.com/karim/exercise-tracker/internal/repository"
)

// compile-time check that *DB implements repository.ExerciseRepository
var _ repository.ExerciseRepository = (*DB)(nil)

// InsertExercise stores a new exercise row for the given user and
// returns the created record with its assigned id. The caller (the
// service layer) has already verified the user exists and validated
// every field — this method just persists.
func (db *DB) InsertExercise(ctx context.Context, userID int64, ex model.Exercise) (*model.CreatedExercise, error) {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (user_id, description, duration, date)
		 VALUES (?, ?, ?, ?)`,
		userID, ex.Description, ex.Duration, ex.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: inserting exercise for user %d: %w", userID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading inserted exercise id: %w", err)
	}

	return &model.CreatedExercise{
		ID:          id,
		UserID:      userID,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
	}, nil
}

// SelectExercises returns the user's exercises matching the filter,
// ordered ascending by date (ties unordered — there is no secondary
// sort key), with offset applied before limit.
//
// The statement is assembled fragment by fragment: date bounds only
// appear in the WHERE clause when set, and the pagination window only
// renders when requested. Dates sort correctly as text because of the
// fixed YYYY-MM-DD form.
func (db *DB) SelectExercises(ctx context.Context, userID int64, f repository.ExerciseFilter) ([]model.Exercise, error) {
	q := &query{}
	q.write(`SELECT id, description, duration, date FROM exercises`)
	q.bind(` WHERE user_id = ?`, userID)
	if f.From != "" {
		q.bind(` AND date >= ?`, f.From)
	}
	if f.To != "" {
		q.bind(` AND date <= ?`, f.To)
	}
	q.write(` ORDER BY date`)
	switch {
	case f.Limit > 0:
		q.bind(` LIMIT ?`, f.Limit)
	case f.Offset > 0:
		// SQLite rejects OFFSET without LIMIT; -1 means unlimited.
		q.bind(` LIMIT ?`, -1)
	}
	if f.Offset > 0 {
		q.bind(` OFFSET ?`, f.Offset)
	}

	rows, err := db.conn.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises for user %d: %w", userID, err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}

// CountExercises returns how many of the user's exercises fall within
// the filter's date bounds. Limit and Offset are ignored — the count
// always describes the whole filtered set, not the page.
func (db *DB) CountExercises(ctx context.Context, userID int64, f repository.ExerciseFilter) (int, error) {
	q := &query{}
	q.write(`SELECT COUNT(*) FROM exercises`)
	q.bind(` WHERE user_id = ?`, userID)
	if f.From != "" {
		q.bind(` AND date >= ?`, f.From)
	}
	if f.To != "" {
		q.bind(` AND date <= ?`, f.To)
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, q.String(), q.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting exercises for user %d: %w", userID, err)
	}
	return count, nil
}
