package ports

import (
	"context"

	"tickerboard/internal/domain/models"
)

// CachePort defines the interface for caching derived snapshots. The
// underlying data only changes on reseed, so cached values stay valid for
// the configured TTL.
type CachePort interface {
	// GetLatestPerSymbol returns the cached one-latest-record-per-symbol
	// snapshot for a collection. ok is false on a miss.
	GetLatestPerSymbol(ctx context.Context, collection string) (records []models.PriceRecord, ok bool, err error)

	// SetLatestPerSymbol stores the snapshot for a collection.
	SetLatestPerSymbol(ctx context.Context, collection string, records []models.PriceRecord) error

	// Ping verifies the cache is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
