package service

import (
	"context"
	"errors"
	"testing"

	"github.com/karim/exercise-tracker/internal/apperror"
)

func TestUserCreate(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Create() did not return an assigned id")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
}

func TestUserCreate_EmptyUsername(t *testing.T) {
	svc, repo := newTestUserService(t)

	tests := []struct {
		name     string
		username string
	}{
		{name: "empty string", username: ""},
		{name: "whitespace only", username: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.username)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create(%q) error = %v, want ErrValidation", tt.username, err)
			}
		})
	}

	// Validation failures must never reach storage.
	if len(repo.users) != 0 {
		t.Errorf("rejected usernames were persisted: %v", repo.users)
	}
}

func TestUserCreate_Duplicate(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Create(context.Background(), "alice"); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), "alice")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Create() error = %v, want ErrConflict", err)
	}
}

func TestUserGetByID(t *testing.T) {
	svc, _ := newTestUserService(t)
	created, _ := svc.Create(context.Background(), "alice")

	found, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("Username = %q, want %q", found.Username, "alice")
	}

	_, err = svc.GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	svc, _ := newTestUserService(t)
	created, _ := svc.Create(context.Background(), "alice")

	found, err := svc.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}

	_, err = svc.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	svc, _ := newTestUserService(t)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("len(users) = %d, want 0", len(users))
	}

	svc.Create(context.Background(), "alice")
	svc.Create(context.Background(), "bob")

	users, err = svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("len(users) = %d, want 2", len(users))
	}
}
