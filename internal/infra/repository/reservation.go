package repository

import (
	"context"
	"time"

	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/infra/repository/converter"
	"car-rental-platform/internal/pkg/pgconv"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.CreateReservationParams) (uuid.UUID, error)
	UpdateReservationStatus(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateReservationStatusParams) error
	CompleteFinishedReservations(ctx context.Context, db pgquery.DBTX, arg pgquery.CompleteFinishedReservationsParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      pgquery.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db pgquery.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx pgquery.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx pgquery.DBTX, res *reservation.Reservation) error {
	params := pgquery.UpdateReservationStatusParams{
		ID:        res.ID(),
		Status:    res.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	}

	if err := r.queries.UpdateReservationStatus(ctx, tx, params); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to update reservation status", err)
	}

	return nil
}

// CompleteFinished marks confirmed reservations whose end date is before the given day as completed.
func (r *ReservationRepository) CompleteFinished(ctx context.Context, tx pgquery.DBTX, before civil.Date, now time.Time) (int64, error) {
	count, err := r.queries.CompleteFinishedReservations(ctx, tx, pgquery.CompleteFinishedReservationsParams{
		Before:    pgconv.DateToPgtype(before),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete finished reservations", err)
	}

	return count, nil
}
