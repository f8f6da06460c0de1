package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/karim/exercise-tracker/internal/apperror"
	"github.com/karim/exercise-tracker/internal/repository"
	"github.com/karim/exercise-tracker/internal/service"
)

// ExerciseHandler serves the exercise endpoints nested under a user.
type ExerciseHandler struct {
	svc    *service.ExerciseService
	logger *slog.Logger
}

func NewExerciseHandler(svc *service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{svc: svc, logger: logger}
}

type addExerciseRequest struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// queryInt parses an optional integer query parameter. Returns 0 when
// the parameter is absent; rejects values below min when present.
func queryInt(q url.Values, name string, min int, constraint string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, apperror.ValidationFailed(name,
			fmt.Sprintf("`%s` must be a %s integer: %s", name, constraint, raw))
	}
	return v, nil
}

// HandleAdd appends an exercise to a user's log.
//
// POST /api/users/{id}/exercises → 200 CreatedExercise | 400 | 404
func (h *ExerciseHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req addExerciseRequest
	if formContentType(r) {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			writeError(w, h.logger, apperror.ValidationFailed("body", "invalid form body"))
			return
		}
		req.Description = r.FormValue("description")
		req.Date = r.FormValue("date")
		if raw := r.FormValue("duration"); raw != "" {
			req.Duration, err = strconv.Atoi(raw)
			if err != nil {
				writeError(w, h.logger, apperror.ValidationFailed("duration",
					"duration must be a positive integer"))
				return
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, h.logger, apperror.ValidationFailed("body", "invalid JSON body"))
			return
		}
	}

	created, err := h.svc.Add(r.Context(), userID, req.Description, req.Duration, req.Date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// HandleLog returns a user's paginated, date-filtered exercise log with
// the total count of the filtered set.
//
// GET /api/users/{id}/logs?limit&offset&from&to → 200 {logs, count} | 400 | 404
func (h *ExerciseHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 1, "positive")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	offset, err := queryInt(q, "offset", 0, "non-negative")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	log, err := h.svc.Log(r.Context(), userID, repository.ExerciseFilter{
		Limit:  limit,
		Offset: offset,
		From:   q.Get("from"),
		To:     q.Get("to"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}
