package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"car-rental-platform/internal/jobs"
	"car-rental-platform/internal/pkg/config"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		jobs.NewRunner,
		NewScheduler,
	),
	fx.Invoke(startScheduler),
)

func NewScheduler(runner *jobs.Runner, cfg config.Config, loc *time.Location) (*jobs.Scheduler, error) {
	return jobs.NewScheduler(runner, cfg.Scheduler, loc)
}

func startScheduler(lc fx.Lifecycle, scheduler *jobs.Scheduler, cfg config.Config) {
	if !cfg.Scheduler.Enabled {
		slog.Info("Scheduler disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
