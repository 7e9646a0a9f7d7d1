package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"tickerboard/internal/adapters/cache/noop"
	"tickerboard/internal/application/ports"
	"tickerboard/internal/application/usecases"
	"tickerboard/internal/domain/models"
)

// memStorage is an in-memory StoragePort with the adapters' find/sort
// semantics, used to drive the full handler stack through httptest.
type memStorage struct {
	prices    map[string][]models.RawPriceDocument
	headlines []models.RawHeadlineDocument
}

func (m *memStorage) FindPrices(_ context.Context, collection string, q ports.PriceQuery) ([]models.RawPriceDocument, error) {
	var out []models.RawPriceDocument
	for _, doc := range m.prices[collection] {
		if q.Symbol != "" && doc.FileName != q.Symbol {
			continue
		}
		if q.StartDate != "" && doc.Date < q.StartDate {
			continue
		}
		if q.EndDate != "" && doc.Date > q.EndDate {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			if q.SortDesc {
				return out[i].Date > out[j].Date
			}
			return out[i].Date < out[j].Date
		}
		return out[i].FileName < out[j].FileName
	})
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStorage) FindHeadlines(_ context.Context, q ports.HeadlineQuery) ([]models.RawHeadlineDocument, error) {
	var out []models.RawHeadlineDocument
	for _, doc := range m.headlines {
		if q.Source != "" && doc.FileName != q.Source {
			continue
		}
		out = append(out, doc)
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStorage) ReplacePrices(_ context.Context, collection string, docs []models.RawPriceDocument) error {
	if m.prices == nil {
		m.prices = make(map[string][]models.RawPriceDocument)
	}
	m.prices[collection] = docs
	return nil
}

func (m *memStorage) ReplaceHeadlines(_ context.Context, docs []models.RawHeadlineDocument) error {
	m.headlines = docs
	return nil
}

func (m *memStorage) Ping(context.Context) error { return nil }
func (m *memStorage) Close() error               { return nil }

func priceDoc(symbol, date, close string) models.RawPriceDocument {
	return models.RawPriceDocument{
		FileName: symbol, Date: date,
		Open: close, High: close, Low: close, Close: close, AdjClose: close,
		Volume: "1000",
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := &memStorage{
		prices: map[string][]models.RawPriceDocument{
			models.CollectionStocks: {
				priceDoc("AAPL", "2025-11-09", "181.22"),
				priceDoc("AAPL", "2025-11-10", "182.50"),
				priceDoc("MSFT", "2025-11-10", "430.10"),
			},
			models.CollectionETFs: {
				priceDoc("VOO", "2025-11-10", "520.00"),
			},
		},
		headlines: []models.RawHeadlineDocument{
			{Headlines: "Tesla rallies", Description: "Big day.", Time: "7:33 PM ET Fri, 17 July 2020", FileName: "cnbc_headlines"},
			{Headlines: "Oil slides", Description: "", Time: "Mon, 3 June 2019", FileName: "reuters_headlines"},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := noop.New()
	prices := usecases.NewPriceUseCase(store, cache, logger)
	news := usecases.NewHeadlineUseCase(store, logger)

	srv := NewServer(0, prices, news, store, cache, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return res
}

func TestStocksLatestPerSymbol(t *testing.T) {
	ts := newTestServer(t)

	var records []models.PriceRecord
	res := getJSON(t, ts, "/api/stocks?latest=true", &records)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if len(records) != 2 || records[0].Symbol != "AAPL" || records[1].Symbol != "MSFT" {
		t.Errorf("records = %+v, want one per symbol sorted", records)
	}
	if records[0].Date != "2025-11-10" {
		t.Errorf("AAPL latest = %s", records[0].Date)
	}
	if cc := res.Header.Get("Cache-Control"); !strings.Contains(cc, "max-age=3600") {
		t.Errorf("Cache-Control = %q", cc)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestStockHistoryAndLatest(t *testing.T) {
	ts := newTestServer(t)

	var history []models.PriceRecord
	res := getJSON(t, ts, "/api/stocks/aapl", &history)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if len(history) != 2 || history[0].Date != "2025-11-09" {
		t.Errorf("history = %+v, want ascending", history)
	}

	var latest models.PriceRecord
	getJSON(t, ts, "/api/stocks/AAPL/latest", &latest)
	if latest.Date != "2025-11-10" || latest.Close != 182.50 {
		t.Errorf("latest = %+v", latest)
	}

	var prev map[string]float64
	getJSON(t, ts, "/api/stocks/AAPL/prev-close", &prev)
	if prev["previousClose"] != 181.22 {
		t.Errorf("previousClose = %v, want 181.22", prev["previousClose"])
	}

	res = getJSON(t, ts, "/api/stocks/TSLA", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("unknown symbol status = %d, want 404", res.StatusCode)
	}
}

func TestInvalidSymbol(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	res := getJSON(t, ts, "/api/stocks/AAPL123/latest", &body)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
	if !strings.Contains(body["error"], "Invalid symbol format") {
		t.Errorf("error = %q", body["error"])
	}
}

func TestSearchRange(t *testing.T) {
	ts := newTestServer(t)

	var records []models.PriceRecord
	res := getJSON(t, ts, "/api/stocks/search?start=2025-11-09&end=2025-11-10", &records)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}

	var body map[string]string
	res = getJSON(t, ts, "/api/stocks/search?start=2023-01-31&end=2023-01-01", &body)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted range status = %d, want 400", res.StatusCode)
	}
	if !strings.Contains(body["error"], "Start date must be before end date") {
		t.Errorf("error = %q", body["error"])
	}

	res = getJSON(t, ts, "/api/stocks/search?start=2023-01-01", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing end status = %d, want 400", res.StatusCode)
	}
}

func TestETFEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var latest models.PriceRecord
	res := getJSON(t, ts, "/api/etfs/VOO/latest", &latest)
	if res.StatusCode != http.StatusOK || latest.Symbol != "VOO" {
		t.Errorf("status = %d, latest = %+v", res.StatusCode, latest)
	}

	// Single-record ETF: prev-close falls back to its own close.
	var prev map[string]float64
	getJSON(t, ts, "/api/etfs/VOO/prev-close", &prev)
	if prev["previousClose"] != 520.00 {
		t.Errorf("previousClose = %v, want 520.00", prev["previousClose"])
	}
}

func TestHeadlines(t *testing.T) {
	ts := newTestServer(t)

	var records []models.HeadlineRecord
	res := getJSON(t, ts, "/api/headlines", &records)
	if res.StatusCode != http.StatusOK || len(records) != 2 {
		t.Fatalf("status = %d, %d records", res.StatusCode, len(records))
	}

	getJSON(t, ts, "/api/headlines/cnbc_headlines", &records)
	if len(records) != 1 || records[0].Source != "cnbc_headlines" {
		t.Errorf("source filter = %+v", records)
	}

	res = getJSON(t, ts, "/api/headlines/bloomberg", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown source status = %d, want 400", res.StatusCode)
	}

	getJSON(t, ts, "/api/headlines?year=2020", &records)
	if len(records) != 1 || records[0].Headline != "Tesla rallies" {
		t.Errorf("year filter = %+v", records)
	}

	getJSON(t, ts, "/api/headlines?q=big", &records)
	if len(records) != 1 {
		t.Errorf("text filter = %+v", records)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/api/stocks", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", res.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	res := getJSON(t, ts, "/health", &body)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}
