// Package concurrency provides the bounded fan-out/fan-in used by the
// grid loader: N workers resolve per-symbol lookups in parallel and the
// results are joined on a single output channel.
package concurrency

import (
	"context"
	"log/slog"
	"sync"

	"tickerboard/internal/domain/models"
)

// CardFunc resolves one latest record into a grid card. Implementations
// must degrade internally (fall back to the record's own close) rather
// than fail; a single slow or broken lookup must never sink the grid.
type CardFunc func(ctx context.Context, record models.PriceRecord) models.LatestPriceView

// WorkerPool runs a fixed number of workers over a stream of latest
// records, emitting one card per record.
type WorkerPool struct {
	workers int
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// Start consumes inputCh until it is closed or ctx is cancelled, then
// closes outputCh. It blocks until all workers have finished.
func (wp *WorkerPool) Start(ctx context.Context, inputCh <-chan models.PriceRecord, outputCh chan<- models.LatestPriceView, fetch CardFunc) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i, inputCh, outputCh, fetch)
	}

	wp.wg.Wait()
	close(outputCh)
}

func (wp *WorkerPool) worker(ctx context.Context, id int, inputCh <-chan models.PriceRecord, outputCh chan<- models.LatestPriceView, fetch CardFunc) {
	defer wp.wg.Done()

	wp.logger.Debug("Worker started", "worker_id", id)
	defer wp.logger.Debug("Worker stopped", "worker_id", id)

	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-inputCh:
			if !ok {
				return
			}

			card := fetch(ctx, record)

			select {
			case outputCh <- card:
			case <-ctx.Done():
				return
			}
		}
	}
}
