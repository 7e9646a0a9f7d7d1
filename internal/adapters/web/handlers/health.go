package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"tickerboard/internal/application/ports"
)

// HealthHandler reports storage and cache connectivity.
type HealthHandler struct {
	storage ports.StoragePort
	cache   ports.CachePort
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage ports.StoragePort, cache ports.CachePort, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

// Handle handles health check requests
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	services := map[string]string{
		"storage": "connected",
		"cache":   "connected",
	}
	status := http.StatusOK

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("storage ping failed", "error", err)
		services["storage"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		h.logger.Warn("cache ping failed", "error", err)
		services["cache"] = "unavailable"
	}

	healthy := "healthy"
	if status != http.StatusOK {
		healthy = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    healthy,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}
