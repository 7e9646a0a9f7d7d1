package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tickerboard/internal/domain/models"
)

// cacheLifetime is advertised on successful data responses; the underlying
// data is batch-seeded, so an hour of client caching is safe.
const cacheLifetime = "public, max-age=3600"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", cacheLifetime)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeFailure maps an application error onto an HTTP status. Validation
// messages pass through; anything else gets a stable message with no
// internal detail.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error, notFoundMsg string) {
	var ie *models.InputError
	switch {
	case errors.As(err, &ie):
		writeErr(w, http.StatusBadRequest, ie.Error())
	case errors.Is(err, models.ErrNotFound):
		writeErr(w, http.StatusNotFound, notFoundMsg)
	default:
		logger.Error("request failed", "error", err)
		writeErr(w, http.StatusInternalServerError, "Internal server error")
	}
}
