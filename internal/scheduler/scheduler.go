// Package scheduler periodically recomputes the cached latest-per-symbol
// snapshots so grid loads stay warm between requests.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"tickerboard/internal/application/usecases"
	"tickerboard/internal/domain/models"
)

// Scheduler manages the snapshot refresh cron task.
type Scheduler struct {
	cron   *cron.Cron
	prices *usecases.PriceUseCase
	logger *slog.Logger
	ctx    context.Context
}

// New creates a scheduler bound to ctx; tasks stop picking up work once
// ctx is cancelled.
func New(ctx context.Context, prices *usecases.PriceUseCase, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		prices: prices,
		logger: logger,
		ctx:    ctx,
	}
}

// Register schedules the snapshot refresh for both collections on the
// given cron expression (six-field, with seconds).
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.cron.AddFunc(refreshCron, s.refreshAll); err != nil {
		return fmt.Errorf("register snapshot refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler; already-running tasks finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// RunNow refreshes both snapshots immediately, warming the cache on
// startup without waiting for the first tick.
func (s *Scheduler) RunNow() {
	s.refreshAll()
}

func (s *Scheduler) refreshAll() {
	for _, collection := range []string{models.CollectionStocks, models.CollectionETFs} {
		if err := s.prices.RefreshLatestPerSymbol(s.ctx, collection); err != nil {
			s.logger.Error("snapshot refresh failed",
				"collection", collection, "error", err)
			continue
		}
		s.logger.Info("snapshot refreshed", "collection", collection)
	}
}
