package commands

import (
	"context"
	"log/slog"
	"time"

	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/clock"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/shared"
)

// MaintenanceCommands are run by the scheduler, not by HTTP callers.
type MaintenanceCommands interface {
	CompleteFinishedReservations(ctx context.Context) (int64, error)
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type maintenanceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewMaintenanceCommands(uow shared.UnitOfWork, clock clock.Clock, loc *time.Location) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow, clock: clock, loc: loc}
}

// CompleteFinishedReservations moves confirmed reservations whose last day is before today to completed.
func (c *maintenanceCommandsImpl) CompleteFinishedReservations(ctx context.Context) (int64, error) {
	now := c.clock.Now()
	today := clock.Today(c.clock, c.loc)

	var completed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reservations().CompleteFinished(ctx, tx.DB(), today, now)
		if err != nil {
			return err
		}
		completed = n
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if completed > 0 {
		slog.Info("completed finished reservations", "count", completed, "before", today.String())
	}
	return completed, nil
}

func (c *maintenanceCommandsImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := c.uow.WithDB(ctx, func(ctx context.Context, db pgquery.DBTX) error {
		n, err := c.uow.Idempotency().DeleteExpired(ctx, db, c.clock.Now())
		if err != nil {
			return err
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if purged > 0 {
		slog.Info("purged expired idempotency keys", "count", purged)
	}
	return purged, nil
}
