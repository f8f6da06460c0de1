package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/model"
	"github.com/karim/exercise-tracker/internal/repository"
)

// datePattern is the syntactic gate for calendar dates. Values that
// pass it still go through time.Parse, which rejects impossible dates
// like 2023-02-30.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExerciseService appends and reads exercise log entries. It depends on
// the user repository as well, because every operation must verify the
// referenced user exists — the schema has no foreign key.
type ExerciseService struct {
	exercises repository.ExerciseRepository
	users     repository.UserRepository
	logger    *slog.Logger
}

func NewExerciseService(exercises repository.ExerciseRepository, users repository.UserRepository, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{exercises: exercises, users: users, logger: logger}
}

// validateDateOptional checks an optional YYYY-MM-DD value. Empty means
// "not supplied" and is fine; anything else must match the pattern AND
// be a real calendar date.
func validateDateOptional(field, date string) error {
	if date == "" {
		return nil
	}
	if !datePattern.MatchString(date) {
		return apperror.ValidationFailed(field,
			fmt.Sprintf("malformed `%s` (must be in format: YYYY-MM-DD): %s", field, date))
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperror.ValidationFailed(field,
			fmt.Sprintf("invalid `%s` value: %s", field, date))
	}
	return nil
}

// requireUser verifies the referenced user exists before any child read
// or write. Existence is checked here, in the orchestration layer, on
// every operation.
func (s *ExerciseService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.users.SelectUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("checking user %d: %w", userID, err)
	}
	if user == nil {
		return apperror.NotFound("User", userID)
	}
	return nil
}

// Add validates and appends an exercise to the user's log. An omitted
// date defaults to the current UTC calendar date. Format checks run
// before the existence check, so a malformed date never costs a query.
func (s *ExerciseService) Add(ctx context.Context, userID int64, description string, duration int, date string) (*model.CreatedExercise, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}
	if duration < 1 {
		return nil, apperror.ValidationFailed("duration", "duration must be a positive integer")
	}
	if err := validateDateOptional("date", date); err != nil {
		return nil, err
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if date == "" {
		date = time.Now().UTC().Format(model.DateLayout)
	}

	created, err := s.exercises.InsertExercise(ctx, userID, model.Exercise{
		Description: description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("adding exercise for user %d: %w", userID, err)
	}

	s.logger.Info("exercise added",
		slog.Int64("id", created.ID),
		slog.Int64("user_id", userID),
		slog.Int("duration", duration),
		slog.String("date", date),
	)
	return created, nil
}

// List returns the user's exercises matching the filter, ascending by
// date, with the pagination window applied offset-first.
func (s *ExerciseService) List(ctx context.Context, userID int64, f repository.ExerciseFilter) ([]model.Exercise, error) {
	if err := validateDateOptional("from", f.From); err != nil {
		return nil, err
	}
	if err := validateDateOptional("to", f.To); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exercises, err := s.exercises.SelectExercises(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("listing exercises for user %d: %w", userID, err)
	}
	return exercises, nil
}

// Count returns the total number of the user's exercises within the
// filter's date bounds, ignoring pagination.
func (s *ExerciseService) Count(ctx context.Context, userID int64, f repository.ExerciseFilter) (int, error) {
	if err := validateDateOptional("from", f.From); err != nil {
		return 0, err
	}
	if err := validateDateOptional("to", f.To); err != nil {
		return 0, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	count, err := s.exercises.CountExercises(ctx, userID, f)
	if err != nil {
		return 0, fmt.Errorf("counting exercises for user %d: %w", userID, err)
	}
	return count, nil
}

// Log is the combined logs-plus-count operation behind the /logs
// endpoint. The count honors the same from/to bounds as the list, so
// the two numbers always describe the same filtered set; only the
// pagination window differs.
func (s *ExerciseService) Log(ctx context.Context, userID int64, f repository.ExerciseFilter) (*model.ExerciseLog, error) {
	if err := validateDateOptional("from", f.From); err != nil {
		return nil, err
	}
	if err := validateDateOptional("to", f.To); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exercises, err := s.exercises.SelectExercises(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("listing exercises for user %d: %w", userID, err)
	}
	count, err := s.exercises.CountExercises(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("counting exercises for user %d: %w", userID, err)
	}

	return &model.ExerciseLog{Logs: exercises, Count: count}, nil
}
