package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/karim/exercise-tracker/internal/apperror"
)

// errorResponse is the single error shape every endpoint returns:
// {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response. Headers and status must go out
// before the body — once Encode writes, they are committed.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do but log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into an HTTP response. This is
// the single place error kinds meet status codes.
//
// Anything that is not a classified AppError is an unhandled fault: it
// gets a generated trace id, the full error is logged server-side under
// that id, and the client sees only the opaque id so reports can be
// correlated without leaking internals.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		var status int
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
		if status != http.StatusInternalServerError {
			writeJSON(w, status, errorResponse{Error: appErr.Message})
			return
		}
	}

	stored := apperror.Storage(err)
	logger.Error("unhandled error",
		slog.String("trace_id", stored.TraceID),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: stored.Message})
}
