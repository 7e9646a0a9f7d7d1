package normalize

import (
	"testing"

	"tickerboard/internal/domain/models"
)

func TestPriceRecord(t *testing.T) {
	raw := models.RawPriceDocument{
		FileName: "aapl",
		Date:     "2025-11-10",
		Open:     "181.90",
		High:     "183.05",
		Low:      "180.44",
		Close:    "182.50",
		AdjClose: "182.50",
		Volume:   "51230000",
	}

	rec, err := PriceRecord(raw)
	if err != nil {
		t.Fatalf("PriceRecord: %v", err)
	}

	if rec.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", rec.Symbol)
	}
	if rec.Date != "2025-11-10" {
		t.Errorf("Date = %q, want 2025-11-10", rec.Date)
	}
	if rec.Close != 182.50 {
		t.Errorf("Close = %v, want 182.50", rec.Close)
	}
	if rec.AdjClose != 182.50 {
		t.Errorf("AdjClose = %v, want 182.50", rec.AdjClose)
	}
	if rec.Volume != 51230000 {
		t.Errorf("Volume = %d, want 51230000", rec.Volume)
	}
}

func TestPriceRecordMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawPriceDocument
	}{
		{
			name: "non-numeric close",
			raw: models.RawPriceDocument{
				FileName: "aapl", Date: "2025-11-10",
				Open: "1", High: "1", Low: "1", Close: "null", AdjClose: "1", Volume: "1",
			},
		},
		{
			name: "empty open",
			raw: models.RawPriceDocument{
				FileName: "aapl", Date: "2025-11-10",
				Open: "", High: "1", Low: "1", Close: "1", AdjClose: "1", Volume: "1",
			},
		},
		{
			name: "fractional volume",
			raw: models.RawPriceDocument{
				FileName: "aapl", Date: "2025-11-10",
				Open: "1", High: "1", Low: "1", Close: "1", AdjClose: "1", Volume: "12.5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PriceRecord(tt.raw); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHeadlineRecord(t *testing.T) {
	raw := models.RawHeadlineDocument{
		Headlines:   "Tesla hits new high",
		Time:        "7:33 PM ET Fri, 17 July 2020",
		Description: "Shares rallied on delivery numbers.",
		FileName:    "cnbc_headlines",
	}

	rec := HeadlineRecord(raw)
	if rec.Headline != raw.Headlines {
		t.Errorf("Headline = %q", rec.Headline)
	}
	if rec.Timestamp != raw.Time {
		t.Errorf("Timestamp = %q", rec.Timestamp)
	}
	if rec.Source != "cnbc_headlines" {
		t.Errorf("Source = %q", rec.Source)
	}
}
