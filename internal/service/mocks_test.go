package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/model"
	"github.com/karim/exercise-tracker/internal/repository"
)

// Hand-written in-memory mocks. The services only see the repository
// interfaces, so swapping SQLite for these maps is invisible to them —
// the tests exercise validation and orchestration, nothing else.

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) InsertUser(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return nil, apperror.Conflict(
				fmt.Sprintf("User already exists with username: %s", username))
		}
	}
	m.nextID++
	u := &model.User{ID: m.nextID, Username: username}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) SelectUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) SelectUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) SelectAllUsers(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type storedExercise struct {
	userID int64
	model.Exercise
}

type mockExerciseRepo struct {
	exercises []storedExercise
	nextID    int64
}

func newMockExerciseRepo() *mockExerciseRepo {
	return &mockExerciseRepo{}
}

func (m *mockExerciseRepo) InsertExercise(_ context.Context, userID int64, ex model.Exercise) (*model.CreatedExercise, error) {
	m.nextID++
	ex.ID = m.nextID
	m.exercises = append(m.exercises, storedExercise{userID: userID, Exercise: ex})
	return &model.CreatedExercise{
		ID:          ex.ID,
		UserID:      userID,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
	}, nil
}

func (m *mockExerciseRepo) filtered(userID int64, f repository.ExerciseFilter) []model.Exercise {
	result := []model.Exercise{}
	for _, se := range m.exercises {
		if se.userID != userID {
			continue
		}
		if f.From != "" && se.Date < f.From {
			continue
		}
		if f.To != "" && se.Date > f.To {
			continue
		}
		result = append(result, se.Exercise)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func (m *mockExerciseRepo) SelectExercises(_ context.Context, userID int64, f repository.ExerciseFilter) ([]model.Exercise, error) {
	result := m.filtered(userID, f)
	if f.Offset > 0 {
		if f.Offset >= len(result) {
			return []model.Exercise{}, nil
		}
		result = result[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(result) {
		result = result[:f.Limit]
	}
	return result, nil
}

func (m *mockExerciseRepo) CountExercises(_ context.Context, userID int64, f repository.ExerciseFilter) (int, error) {
	return len(m.filtered(userID, f)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	return NewUserService(repo, testLogger()), repo
}

func newTestExerciseService(t *testing.T) (*ExerciseService, *mockUserRepo, *mockExerciseRepo) {
	t.Helper()
	users := newMockUserRepo()
	exercises := newMockExerciseRepo()
	return NewExerciseService(exercises, users, testLogger()), users, exercises
}
