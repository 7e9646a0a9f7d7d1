package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"tickerboard/internal/application/ports"
	"tickerboard/internal/domain/headline"
	"tickerboard/internal/domain/models"
	"tickerboard/internal/domain/normalize"
)

const (
	// HeadlineLimitMax caps a single headline query.
	HeadlineLimitMax = 300
)

// HeadlineFilter describes one headline query. Zero-value fields are
// identity filters.
type HeadlineFilter struct {
	Source string // exact source, or "all"/empty for every source
	Year   string // 4-digit year matched against the timestamp
	Text   string // case-insensitive substring over headline and description
	Limit  int    // clamped to [1, HeadlineLimitMax]; 0 means the maximum
}

// HeadlineUseCase lists and filters news headlines.
type HeadlineUseCase struct {
	storage ports.StoragePort
	logger  *slog.Logger
}

// NewHeadlineUseCase creates a new HeadlineUseCase.
func NewHeadlineUseCase(storage ports.StoragePort, logger *slog.Logger) *HeadlineUseCase {
	return &HeadlineUseCase{
		storage: storage,
		logger:  logger,
	}
}

// List returns headlines matching the filter. Source filtering is pushed
// down to storage; year and text predicates apply after normalization.
func (uc *HeadlineUseCase) List(ctx context.Context, filter HeadlineFilter) ([]models.HeadlineRecord, error) {
	if filter.Source != "" && !models.ValidHeadlineSource(filter.Source) {
		return nil, models.NewInputError(fmt.Sprintf("Unknown headline source %q", filter.Source))
	}
	if filter.Year != "" && !headline.ValidYear(filter.Year) {
		return nil, models.NewInputError("Invalid year format, expected 4 digits")
	}

	limit := filter.Limit
	if limit <= 0 || limit > HeadlineLimitMax {
		limit = HeadlineLimitMax
	}

	source := filter.Source
	if source == models.HeadlineSourceAll {
		source = ""
	}

	// Year and text predicates shrink the result set after the fetch, so
	// the limit is applied after filtering, not pushed down.
	query := ports.HeadlineQuery{Source: source}
	if filter.Year == "" && filter.Text == "" {
		query.Limit = limit
	}

	raws, err := uc.storage.FindHeadlines(ctx, query)
	if err != nil {
		return nil, storageErr(err)
	}

	records := normalize.HeadlineRecords(raws)

	var preds []headline.Predicate
	if filter.Year != "" {
		preds = append(preds, headline.ByYear(filter.Year))
	}
	if filter.Text != "" {
		preds = append(preds, headline.ByText(filter.Text))
	}
	if len(preds) > 0 {
		records = headline.Apply(records, preds...)
	}

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
