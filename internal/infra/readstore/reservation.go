package readstore

import (
	"context"
	"time"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.GetReservationByIDRow, error)
	ListReservations(ctx context.Context, db pgquery.DBTX, arg pgquery.ListReservationsParams) ([]pgquery.ListReservationsRow, error)
	ListBlockingReservationsByVehicle(ctx context.Context, db pgquery.DBTX, arg pgquery.ListBlockingReservationsByVehicleParams) ([]pgquery.ListBlockingReservationsByVehicleRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      pgquery.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db pgquery.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view, err := ToReservationView(row.Reservation, row.VehicleMake, row.VehicleModel)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation row", err, infra.KindDBFailure)
	}
	return view, nil
}

// List returns one page in (created_at, id) descending order, starting after the cursor position when given.
func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationStoreFilter, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := pgquery.ListReservationsParams{
		UserID:    pgconv.UUIDPtrToPgtype(filter.UserID),
		AgencyID:  pgconv.UUIDPtrToPgtype(filter.AgencyID),
		VehicleID: pgconv.UUIDPtrToPgtype(filter.VehicleID),
		Status:    pgconv.StringPtrToPgtype(filter.Status),
		AfterID:   pgconv.UUIDPtrToPgtype(afterID),
		Limit:     limit,
	}
	if afterCreatedAt != nil {
		params.AfterCreatedAt = pgconv.TimeToPgtype(*afterCreatedAt)
	}

	rows, err := r.queries.ListReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		view, err := ToReservationView(row.Reservation, row.VehicleMake, row.VehicleModel)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid reservation row", err, infra.KindDBFailure)
		}
		result = append(result, view)
	}

	return result, nil
}

// BlockingIntervals returns pending and confirmed reservations of the vehicle that touch [from, to].
func (r *ReservationReadStore) BlockingIntervals(ctx context.Context, vehicleID uuid.UUID, from, to civil.Date) ([]queries.IntervalView, error) {
	rows, err := r.queries.ListBlockingReservationsByVehicle(ctx, r.db, pgquery.ListBlockingReservationsByVehicleParams{
		VehicleID: vehicleID,
		FromDate:  pgconv.DateToPgtype(from),
		ToDate:    pgconv.DateToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking reservations", err)
	}

	result := make([]queries.IntervalView, 0, len(rows))
	for _, row := range rows {
		start, end, err := datePair(row.StartDate, row.EndDate)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid reservation dates", err, infra.KindDBFailure)
		}
		result = append(result, queries.IntervalView{
			ReservationID: row.ID,
			StartDate:     start,
			EndDate:       end,
			Status:        row.Status,
		})
	}

	return result, nil
}

// ToReservationView is shared with the write side, which reads rows locked FOR UPDATE.
func ToReservationView(row pgquery.Reservation, vehicleMake, vehicleModel string) (*queries.ReservationView, error) {
	start, end, err := datePair(row.StartDate, row.EndDate)
	if err != nil {
		return nil, err
	}
	base, err := pgconv.DecimalFromNumeric(row.BasePrice)
	if err != nil {
		return nil, err
	}
	discountAmount, err := pgconv.DecimalFromNumeric(row.DiscountAmount)
	if err != nil {
		return nil, err
	}
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, err
	}

	return &queries.ReservationView{
		ID:             row.ID,
		AgencyID:       row.AgencyID,
		VehicleID:      row.VehicleID,
		VehicleMake:    vehicleMake,
		VehicleModel:   vehicleModel,
		UserID:         row.UserID,
		CustomerName:   row.CustomerName,
		CustomerEmail:  row.CustomerEmail,
		CustomerPhone:  row.CustomerPhone,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      int(row.TotalDays),
		BasePrice:      base,
		DiscountCode:   pgconv.StringPtrFromPgtype(row.DiscountCode),
		DiscountAmount: discountAmount,
		TotalPrice:     total,
		Status:         row.Status,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func datePair(start, end pgtype.Date) (civil.Date, civil.Date, error) {
	s, err := pgconv.DateFromPgtype(start)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	e, err := pgconv.DateFromPgtype(end)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return s, e, nil
}
