// Package normalize converts raw stored documents into canonical typed
// records. It is the only place that sees storage field names; everything
// downstream works with the canonical shapes.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"tickerboard/internal/domain/models"
)

// PriceRecord converts a raw price document to a canonical record. Numeric
// parsing fails closed: a non-numeric field returns an error naming the
// field rather than coercing to zero, since a silent zero corrupts every
// derived price computation.
func PriceRecord(raw models.RawPriceDocument) (models.PriceRecord, error) {
	rec := models.PriceRecord{
		Symbol: strings.ToUpper(raw.FileName),
		Date:   raw.Date,
	}

	var err error
	if rec.Open, err = parsePrice("Open", raw.Open); err != nil {
		return models.PriceRecord{}, err
	}
	if rec.High, err = parsePrice("High", raw.High); err != nil {
		return models.PriceRecord{}, err
	}
	if rec.Low, err = parsePrice("Low", raw.Low); err != nil {
		return models.PriceRecord{}, err
	}
	if rec.Close, err = parsePrice("Close", raw.Close); err != nil {
		return models.PriceRecord{}, err
	}
	if rec.AdjClose, err = parsePrice("Adj Close", raw.AdjClose); err != nil {
		return models.PriceRecord{}, err
	}
	if rec.Volume, err = parseVolume(raw.Volume); err != nil {
		return models.PriceRecord{}, err
	}

	return rec, nil
}

// PriceRecords converts a slice of raw documents, failing on the first
// malformed document.
func PriceRecords(raws []models.RawPriceDocument) ([]models.PriceRecord, error) {
	records := make([]models.PriceRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := PriceRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// HeadlineRecord converts a raw headline document. Headlines carry no
// numeric fields, so this is pure field renaming.
func HeadlineRecord(raw models.RawHeadlineDocument) models.HeadlineRecord {
	return models.HeadlineRecord{
		Headline:    raw.Headlines,
		Description: raw.Description,
		Timestamp:   raw.Time,
		Source:      raw.FileName,
	}
}

// HeadlineRecords converts a slice of raw headline documents.
func HeadlineRecords(raws []models.RawHeadlineDocument) []models.HeadlineRecord {
	records := make([]models.HeadlineRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, HeadlineRecord(raw))
	}
	return records
}

func parsePrice(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s value %q: %w", field, value, err)
	}
	return f, nil
}

func parseVolume(value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed Volume value %q: %w", value, err)
	}
	return n, nil
}
