// Package service contains the validation and orchestration layer.
//
// Handlers hand in already-extracted primitives; services validate
// format, enforce referential existence, apply defaults, and delegate
// to the repositories. Services return domain errors from the apperror
// package and know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/model"
	"github.com/karim/exercise-tracker/internal/repository"
)

// UserService handles user creation and lookups.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns all users; an empty slice when there are none.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.SelectAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Create registers a new user. The username must be non-empty;
// uniqueness is enforced by the store and surfaces as a conflict.
func (s *UserService) Create(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}

	user, err := s.repo.InsertUser(ctx, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// GetByID returns the user with the given id, or a not-found error.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.SelectUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	if user == nil {
		return nil, apperror.NotFound("User", id)
	}
	return user, nil
}

// GetByUsername returns the user with the given username, or a
// not-found error.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.SelectUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}
	if user == nil {
		return nil, apperror.NotFound("User", username)
	}
	return user, nil
}
