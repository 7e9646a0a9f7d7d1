package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"tickerboard/internal/application/ports"
	"tickerboard/internal/domain/models"
	"tickerboard/internal/domain/normalize"
)

const dateFormat = "2006-01-02"

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)

// PriceUseCase computes price history, latest records and derived metrics
// over a document collection. All validation happens before any storage
// call; storage failures surface as models.ErrStorageUnavailable.
type PriceUseCase struct {
	storage ports.StoragePort
	cache   ports.CachePort
	logger  *slog.Logger
}

// NewPriceUseCase creates a new PriceUseCase.
func NewPriceUseCase(storage ports.StoragePort, cache ports.CachePort, logger *slog.Logger) *PriceUseCase {
	return &PriceUseCase{
		storage: storage,
		cache:   cache,
		logger:  logger,
	}
}

// NormalizeSymbol upper-cases and validates a ticker symbol.
func NormalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(symbol) {
		return "", models.NewInputError("Invalid symbol format")
	}
	return symbol, nil
}

func validateDate(value string) error {
	if _, err := time.Parse(dateFormat, value); err != nil {
		return models.NewInputError(fmt.Sprintf("Invalid date format %q, expected YYYY-MM-DD", value))
	}
	return nil
}

func validateRange(start, end string) error {
	if start == "" || end == "" {
		return models.NewInputError("start and end query parameters are required")
	}
	if err := validateDate(start); err != nil {
		return err
	}
	if err := validateDate(end); err != nil {
		return err
	}
	if start > end {
		return models.NewInputError("Start date must be before end date")
	}
	return nil
}

// List returns up to limit records from a collection in storage order,
// normalized. Limit 0 means unlimited.
func (uc *PriceUseCase) List(ctx context.Context, collection string, limit int) ([]models.PriceRecord, error) {
	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{Limit: limit})
	if err != nil {
		return nil, storageErr(err)
	}
	return normalize.PriceRecords(raws)
}

// GetHistory returns a symbol's records ascending by date, optionally
// restricted to the inclusive [start, end] range. Empty range bounds leave
// the range open; an empty result is not an error.
func (uc *PriceUseCase) GetHistory(ctx context.Context, collection, symbol, start, end string) ([]models.PriceRecord, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if start != "" || end != "" {
		if err := validateRange(start, end); err != nil {
			return nil, err
		}
	}

	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{
		Symbol:    symbol,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return normalize.PriceRecords(raws)
}

// Search returns records for every symbol within the inclusive date range,
// ascending by date. Both bounds are required.
func (uc *PriceUseCase) Search(ctx context.Context, collection, start, end string) ([]models.PriceRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return normalize.PriceRecords(raws)
}

// GetLatest returns the record with the maximum date for a symbol, or
// models.ErrNotFound if the symbol has no records.
func (uc *PriceUseCase) GetLatest(ctx context.Context, collection, symbol string) (models.PriceRecord, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return models.PriceRecord{}, err
	}

	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{
		Symbol:   symbol,
		SortDesc: true,
		Limit:    1,
	})
	if err != nil {
		return models.PriceRecord{}, storageErr(err)
	}
	if len(raws) == 0 {
		return models.PriceRecord{}, fmt.Errorf("symbol %s: %w", symbol, models.ErrNotFound)
	}
	return normalize.PriceRecord(raws[0])
}

// GetPreviousClose returns the close of the second-most-recent record. If
// only one record exists its own close is returned, so a single known
// trading day shows zero change rather than an error.
func (uc *PriceUseCase) GetPreviousClose(ctx context.Context, collection, symbol string) (float64, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return 0, err
	}

	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{
		Symbol:   symbol,
		SortDesc: true,
		Limit:    2,
	})
	if err != nil {
		return 0, storageErr(err)
	}
	if len(raws) == 0 {
		return 0, fmt.Errorf("symbol %s: %w", symbol, models.ErrNotFound)
	}

	records, err := normalize.PriceRecords(raws)
	if err != nil {
		return 0, err
	}
	if len(records) == 1 {
		return records[0].Close, nil
	}
	return records[1].Close, nil
}

// GetLatestPerSymbol returns the most recent record for every distinct
// symbol in a collection, sorted lexicographically by symbol, optionally
// truncated to limit. The full snapshot is served read-through from the
// cache since the underlying data only changes on reseed.
func (uc *PriceUseCase) GetLatestPerSymbol(ctx context.Context, collection string, limit int) ([]models.PriceRecord, error) {
	if cached, ok, err := uc.cache.GetLatestPerSymbol(ctx, collection); err != nil {
		uc.logger.Warn("cache read failed", "collection", collection, "error", err)
	} else if ok {
		return truncate(cached, limit), nil
	}

	records, err := uc.computeLatestPerSymbol(ctx, collection)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetLatestPerSymbol(ctx, collection, records); err != nil {
		uc.logger.Warn("cache write failed", "collection", collection, "error", err)
	}
	return truncate(records, limit), nil
}

// RefreshLatestPerSymbol recomputes a collection's snapshot and rewrites
// the cache entry. Used by the scheduler.
func (uc *PriceUseCase) RefreshLatestPerSymbol(ctx context.Context, collection string) error {
	records, err := uc.computeLatestPerSymbol(ctx, collection)
	if err != nil {
		return err
	}
	return uc.cache.SetLatestPerSymbol(ctx, collection, records)
}

func (uc *PriceUseCase) computeLatestPerSymbol(ctx context.Context, collection string) ([]models.PriceRecord, error) {
	raws, err := uc.storage.FindPrices(ctx, collection, ports.PriceQuery{SortDesc: true})
	if err != nil {
		return nil, storageErr(err)
	}

	all, err := normalize.PriceRecords(raws)
	if err != nil {
		return nil, err
	}

	// First record seen per symbol is its most recent one, since the full
	// set is sorted by date descending.
	seen := make(map[string]bool, len(all))
	records := make([]models.PriceRecord, 0, len(all))
	for _, rec := range all {
		if seen[rec.Symbol] {
			continue
		}
		seen[rec.Symbol] = true
		records = append(records, rec)
	}

	// Sort by symbol so output order never depends on arrival order.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Symbol < records[j].Symbol
	})
	return records, nil
}

func truncate(records []models.PriceRecord, limit int) []models.PriceRecord {
	if limit > 0 && limit < len(records) {
		return records[:limit]
	}
	return records
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
}
