package jobs

import (
	"context"
	"log/slog"
	"time"

	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
}

// NewScheduler registers the maintenance jobs. Specs carry a seconds field.
func NewScheduler(runner *Runner, cfg config.SchedulerConfig, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron:   c,
		runner: runner,
	}
	if err := s.registerJobs(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs(cfg config.SchedulerConfig) error {
	if _, err := s.cron.AddFunc(cfg.CompleteReservations, s.runner.CompleteFinishedReservations); err != nil {
		return errs.Wrapf(err, "invalid schedule for CompleteFinishedReservations: %q", cfg.CompleteReservations)
	}
	if _, err := s.cron.AddFunc(cfg.PurgeIdempotencyKeys, s.runner.PurgeExpiredIdempotencyKeys); err != nil {
		return errs.Wrapf(err, "invalid schedule for PurgeExpiredIdempotencyKeys: %q", cfg.PurgeIdempotencyKeys)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("Cron scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
