package readstore

import (
	"context"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleReadQueries interface {
	GetVehicleByID(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.Vehicle, error)
}

type VehicleReadStore struct {
	queries VehicleReadQueries
	db      pgquery.DBTX
}

func NewVehicleReadStore(queries VehicleReadQueries, db pgquery.DBTX) *VehicleReadStore {
	return &VehicleReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	row, err := r.queries.GetVehicleByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	view, err := toVehicleView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid vehicle rates", err, infra.KindDBFailure)
	}
	return view, nil
}

func toVehicleView(row pgquery.Vehicle) (*queries.VehicleView, error) {
	daily, err := pgconv.DecimalFromNumeric(row.DailyRate)
	if err != nil {
		return nil, err
	}
	weekly, err := pgconv.DecimalFromNumeric(row.WeeklyRate)
	if err != nil {
		return nil, err
	}
	monthly, err := pgconv.DecimalFromNumeric(row.MonthlyRate)
	if err != nil {
		return nil, err
	}

	return &queries.VehicleView{
		ID:          row.ID,
		AgencyID:    row.AgencyID,
		Make:        row.Make,
		Model:       row.Model,
		DailyRate:   daily,
		WeeklyRate:  weekly,
		MonthlyRate: monthly,
		IsAvailable: row.IsAvailable,
	}, nil
}
