package concurrency

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"tickerboard/internal/domain/models"
)

func TestWorkerPoolProcessesAll(t *testing.T) {
	symbols := []string{"AAPL", "GOOG", "MSFT", "TSLA", "VOO"}

	inputCh := make(chan models.PriceRecord, len(symbols))
	for _, s := range symbols {
		inputCh <- models.PriceRecord{Symbol: s, Close: 100}
	}
	close(inputCh)

	outputCh := make(chan models.LatestPriceView, len(symbols))
	pool := NewWorkerPool(3, slog.New(slog.NewTextHandler(io.Discard, nil)))

	pool.Start(context.Background(), inputCh, outputCh, func(_ context.Context, rec models.PriceRecord) models.LatestPriceView {
		return models.NewLatestPriceView(rec, rec.Close)
	})

	var got []string
	for card := range outputCh {
		got = append(got, card.Symbol)
	}
	sort.Strings(got)

	if len(got) != len(symbols) {
		t.Fatalf("got %d cards, want %d", len(got), len(symbols))
	}
	for i, s := range symbols {
		if got[i] != s {
			t.Errorf("card %d = %s, want %s", i, got[i], s)
		}
	}
}

func TestWorkerPoolCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputCh := make(chan models.PriceRecord) // never closed, never written
	outputCh := make(chan models.LatestPriceView)
	pool := NewWorkerPool(2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	done := make(chan struct{})
	go func() {
		pool.Start(ctx, inputCh, outputCh, func(_ context.Context, rec models.PriceRecord) models.LatestPriceView {
			return models.LatestPriceView{}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		<-done // Start must return once the context is cancelled
	}
}
