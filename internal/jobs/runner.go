package jobs

import (
	"context"
	"log/slog"
	"time"

	"car-rental-platform/internal/usecase/commands"
)

const defaultJobTimeout = 5 * time.Minute

// Runner executes maintenance jobs; each method matches the func() shape cron expects.
type Runner struct {
	maintenance commands.MaintenanceCommands
	timeout     time.Duration
}

func NewRunner(maintenance commands.MaintenanceCommands) *Runner {
	return &Runner{
		maintenance: maintenance,
		timeout:     defaultJobTimeout,
	}
}

// CompleteFinishedReservations marks confirmed reservations that ended before today as completed.
func (r *Runner) CompleteFinishedReservations() {
	r.run("CompleteFinishedReservations", r.maintenance.CompleteFinishedReservations)
}

func (r *Runner) PurgeExpiredIdempotencyKeys() {
	r.run("PurgeExpiredIdempotencyKeys", r.maintenance.PurgeExpiredIdempotencyKeys)
}

// run wraps job execution with panic recovery and a timeout.
func (r *Runner) run(name string, job func(ctx context.Context) (int64, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Job panicked", "job", name, "panic", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	affected, err := job(ctx)
	if err != nil {
		slog.Error("Job failed", "job", name, "error", err.Error(), "duration", time.Since(start))
		return
	}
	slog.Debug("Job completed", "job", name, "affected", affected, "duration", time.Since(start))
}
