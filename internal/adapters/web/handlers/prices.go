package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tickerboard/internal/application/usecases"
)

// PricesHandler serves the price endpoints of one collection. The same
// handler backs /api/stocks and /api/etfs, parameterized by base path and
// collection name.
type PricesHandler struct {
	basePath   string
	collection string
	prices     *usecases.PriceUseCase
	logger     *slog.Logger
}

// NewPricesHandler creates a prices handler for one collection.
func NewPricesHandler(basePath, collection string, prices *usecases.PriceUseCase, logger *slog.Logger) *PricesHandler {
	return &PricesHandler{
		basePath:   basePath,
		collection: collection,
		prices:     prices,
		logger:     logger,
	}
}

// Handle dispatches price requests:
//
//	GET {base}                       list (limit, latest=true|false)
//	GET {base}/search?start=&end=    date-range search
//	GET {base}/{symbol}              full history, ascending by date
//	GET {base}/{symbol}/latest       most recent record
//	GET {base}/{symbol}/prev-close   previous close
func (h *PricesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, h.basePath), "/")
	ctx := r.Context()

	if path == "" {
		h.handleList(w, r)
		return
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1 && parts[0] == "search":
		h.handleSearch(w, r)
	case len(parts) == 1:
		h.handleHistory(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "latest":
		rec, err := h.prices.GetLatest(ctx, h.collection, parts[0])
		if err != nil {
			writeFailure(w, h.logger, err, "Symbol not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case len(parts) == 2 && parts[1] == "prev-close":
		prev, err := h.prices.GetPreviousClose(ctx, h.collection, parts[0])
		if err != nil {
			writeFailure(w, h.logger, err, "Symbol not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"previousClose": prev})
	default:
		writeErr(w, http.StatusBadRequest, "Invalid path")
	}
}

func (h *PricesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	if r.URL.Query().Get("latest") == "true" {
		records, err := h.prices.GetLatestPerSymbol(r.Context(), h.collection, limit)
		if err != nil {
			writeFailure(w, h.logger, err, "No data")
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	records, err := h.prices.List(r.Context(), h.collection, limit)
	if err != nil {
		writeFailure(w, h.logger, err, "No data")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *PricesHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	records, err := h.prices.Search(r.Context(), h.collection, start, end)
	if err != nil {
		writeFailure(w, h.logger, err, "No data")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *PricesHandler) handleHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	records, err := h.prices.GetHistory(r.Context(), h.collection, symbol, "", "")
	if err != nil {
		writeFailure(w, h.logger, err, "Symbol not found")
		return
	}
	if len(records) == 0 {
		writeErr(w, http.StatusNotFound, "Symbol not found")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
