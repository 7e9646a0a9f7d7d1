package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tickerboard/internal/application/usecases"
)

// HeadlinesHandler serves the news endpoints.
type HeadlinesHandler struct {
	headlines *usecases.HeadlineUseCase
	logger    *slog.Logger
}

// NewHeadlinesHandler creates a new headlines handler.
func NewHeadlinesHandler(headlines *usecases.HeadlineUseCase, logger *slog.Logger) *HeadlinesHandler {
	return &HeadlinesHandler{
		headlines: headlines,
		logger:    logger,
	}
}

// Handle dispatches headline requests:
//
//	GET /api/headlines            all sources (limit, year, q optional)
//	GET /api/headlines/{source}   one source
func (h *HeadlinesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	source := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/headlines"), "/")
	if strings.Contains(source, "/") {
		writeErr(w, http.StatusBadRequest, "Invalid path")
		return
	}

	filter := usecases.HeadlineFilter{
		Source: source,
		Year:   r.URL.Query().Get("year"),
		Text:   r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeErr(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = n
	}

	records, err := h.headlines.List(r.Context(), filter)
	if err != nil {
		writeFailure(w, h.logger, err, "No headlines")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
