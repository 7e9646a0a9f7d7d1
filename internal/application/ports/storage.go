package ports

import (
	"context"

	"tickerboard/internal/domain/models"
)

// PriceQuery restricts a price document find. Zero values mean "no
// restriction": an empty Symbol matches every symbol, empty bounds leave
// the date range open, Limit 0 is unlimited.
type PriceQuery struct {
	Symbol    string
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	SortDesc  bool   // sort by date descending instead of ascending
	Limit     int
}

// HeadlineQuery restricts a headline document find.
type HeadlineQuery struct {
	Source string // exact match; empty matches every source
	Limit  int
}

// StoragePort defines the document-store contract: find with filter, sort
// and limit, plus the bulk write path used by the seeder.
type StoragePort interface {
	// FindPrices returns raw price documents from a collection, filtered
	// and ordered by date according to the query.
	FindPrices(ctx context.Context, collection string, q PriceQuery) ([]models.RawPriceDocument, error)

	// FindHeadlines returns raw headline documents.
	FindHeadlines(ctx context.Context, q HeadlineQuery) ([]models.RawHeadlineDocument, error)

	// ReplacePrices clears a price collection and bulk-inserts docs.
	ReplacePrices(ctx context.Context, collection string, docs []models.RawPriceDocument) error

	// ReplaceHeadlines clears the headline collection and bulk-inserts docs.
	ReplaceHeadlines(ctx context.Context, docs []models.RawHeadlineDocument) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error
}
