package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expense-tracker-api/internal/database"
)

// Every response uses the same envelope: {"success":true,"data":...} on the
// happy path, {"success":false,"message":...} on failure.

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// serverError logs the underlying failure and answers with a generic message
// in production; in development the error detail is passed through.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	message := "Server Error"
	if !h.config.IsProduction() {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, message)
}

// notFoundOr maps ErrNotFound to a 404 with the resource-specific message and
// treats everything else as a server error.
func (h *Handler) notFoundOr(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, message)
		return
	}
	h.serverError(w, r, err)
}
