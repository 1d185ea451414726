/**
 * @description
 * Cron-driven maintenance job: pending transactions that sat untouched past
 * the configured age are marked failed so histories do not accumulate
 * forever-pending rows.
 */

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/selewanto/dashboard/internal/store"
)

// Sweeper schedules the stale-pending sweep.
type Sweeper struct {
	cron     *cron.Cron
	repo     store.Repository
	logger   *slog.Logger
	schedule string
	maxAge   time.Duration
}

// NewSweeper creates a sweeper running on the given cron schedule. Pending
// transactions older than maxAge are swept to failed.
func NewSweeper(repo store.Repository, logger *slog.Logger, schedule string, maxAge time.Duration) *Sweeper {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Sweeper{
		cron:     c,
		repo:     repo,
		logger:   logger,
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start registers the job and starts the cron scheduler.
func (s *Sweeper) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		s.logger.Error("failed to schedule stale pending sweep", "error", err, "schedule", s.schedule)
		return
	}
	s.logger.Info("scheduled stale pending sweep", "schedule", s.schedule, "max_age", s.maxAge)
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Sweeper) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Sweeper) runSweep() {
	s.logger.Info("starting stale pending sweep")
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-s.maxAge)
	swept, err := s.repo.SweepStalePendingTransactions(ctx, cutoff)
	if err != nil {
		s.logger.Error("stale pending sweep failed", "error", err)
		return
	}

	s.logger.Info("stale pending sweep finished", "users_touched", swept, "cutoff", cutoff)
}
