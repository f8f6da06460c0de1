// Package handler contains the HTTP layer: it extracts path, query and
// body fields, hands primitives to the services, and serializes the
// results (or the classified error) as JSON.
package handler

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/service"
)

// UserHandler serves the /api/users user endpoints.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// userIDParam extracts and parses the {id} path parameter. The original
// service fronted this with schema validation, so a non-numeric id is a
// bad request, not a 404.
func userIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "invalid user id: "+raw)
	}
	return id, nil
}

// formContentType reports whether the request body is form-encoded.
// The service accepts both JSON and form posts — the original clients
// submitted HTML forms.
func formContentType(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

type createUserRequest struct {
	Username string `json:"username"`
}

// HandleList returns all users.
//
// GET /api/users → 200 [User]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleCreate registers a new user.
//
// POST /api/users → 200 User | 400 missing username | 409 duplicate
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var username string
	if formContentType(r) {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			writeError(w, h.logger, apperror.ValidationFailed("body", "invalid form body"))
			return
		}
		username = r.FormValue("username")
	} else {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
			return
		}
		username = req.Username
	}

	user, err := h.svc.Create(r.Context(), username)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetByID fetches a single user.
//
// GET /api/users/{id} → 200 User | 404
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetByUsername fetches a single user by name.
//
// GET /api/users/name/{username} → 200 User | 404
func (h *UserHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.svc.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
