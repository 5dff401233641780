package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Runner performs one full generation run.
type Runner interface {
	Run(ctx context.Context) (*domain.RunStats, error)
}

// Scheduler re-runs generation on a fixed interval. The one-shot CLI path
// bypasses it entirely.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	if _, err := s.runner.Run(runCtx); err != nil {
		s.logger.Error("generation run failed", "error", err)
	}
}
