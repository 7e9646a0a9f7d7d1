// Package client implements the browsing front-end: a REST API client,
// the grid/detail/compare view state machine, and text rendering behind a
// per-asset capability interface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tickerboard/internal/domain/models"
)

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// APIClient provides access to the tickerboard REST API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// APIClientOption configures an APIClient.
type APIClientOption func(*APIClient)

// NewAPIClient creates a new REST API client.
func NewAPIClient(baseURL string, opts ...APIClientOption) *APIClient {
	c := &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) APIClientOption {
	return func(c *APIClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) APIClientOption {
	return func(c *APIClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) APIClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// LatestPerSymbol returns one latest record per symbol, sorted by symbol.
func (c *APIClient) LatestPerSymbol(ctx context.Context, asset Asset, limit int) ([]models.PriceRecord, error) {
	query := url.Values{"latest": {"true"}}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	var records []models.PriceRecord
	err := c.get(ctx, asset.Path(), query, &records)
	return records, err
}

// History returns a symbol's full history, ascending by date.
func (c *APIClient) History(ctx context.Context, asset Asset, symbol string) ([]models.PriceRecord, error) {
	var records []models.PriceRecord
	err := c.get(ctx, asset.Path()+"/"+url.PathEscape(symbol), nil, &records)
	return records, err
}

// Latest returns a symbol's most recent record.
func (c *APIClient) Latest(ctx context.Context, asset Asset, symbol string) (models.PriceRecord, error) {
	var record models.PriceRecord
	err := c.get(ctx, asset.Path()+"/"+url.PathEscape(symbol)+"/latest", nil, &record)
	return record, err
}

// PreviousClose returns a symbol's previous close.
func (c *APIClient) PreviousClose(ctx context.Context, asset Asset, symbol string) (float64, error) {
	var body struct {
		PreviousClose float64 `json:"previousClose"`
	}
	err := c.get(ctx, asset.Path()+"/"+url.PathEscape(symbol)+"/prev-close", nil, &body)
	return body.PreviousClose, err
}

// Headlines returns news headlines, optionally restricted to one source.
func (c *APIClient) Headlines(ctx context.Context, source string, limit int) ([]models.HeadlineRecord, error) {
	path := "/api/headlines"
	if source != "" && source != models.HeadlineSourceAll {
		path += "/" + url.PathEscape(source)
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	var records []models.HeadlineRecord
	err := c.get(ctx, path, query, &records)
	return records, err
}
