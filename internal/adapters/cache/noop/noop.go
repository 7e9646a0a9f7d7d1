// Package noop provides a cache adapter used when caching is disabled:
// every read is a miss and writes are discarded.
package noop

import (
	"context"

	"tickerboard/internal/domain/models"
)

// Adapter is a no-op CachePort implementation.
type Adapter struct{}

// New creates a no-op cache adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) GetLatestPerSymbol(context.Context, string) ([]models.PriceRecord, bool, error) {
	return nil, false, nil
}

func (a *Adapter) SetLatestPerSymbol(context.Context, string, []models.PriceRecord) error {
	return nil
}

func (a *Adapter) Ping(context.Context) error { return nil }

func (a *Adapter) Close() error { return nil }
