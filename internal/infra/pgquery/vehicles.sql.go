package pgquery

import (
	"context"

	"github.com/google/uuid"
)

const getVehicleByID = `-- name: GetVehicleByID :one
SELECT id, agency_id, make, model, daily_rate, weekly_rate, monthly_rate, is_available, created_at, updated_at
FROM vehicles
WHERE id = $1
`

func (q *Queries) GetVehicleByID(ctx context.Context, db DBTX, id uuid.UUID) (Vehicle, error) {
	row := db.QueryRow(ctx, getVehicleByID, id)
	var i Vehicle
	err := row.Scan(
		&i.ID,
		&i.AgencyID,
		&i.Make,
		&i.Model,
		&i.DailyRate,
		&i.WeeklyRate,
		&i.MonthlyRate,
		&i.IsAvailable,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const lockVehicleForUpdate = `-- name: LockVehicleForUpdate :one
SELECT id FROM vehicles WHERE id = $1 FOR UPDATE
`

// LockVehicleForUpdate serialises bookings of one vehicle for the rest of the transaction.
func (q *Queries) LockVehicleForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (uuid.UUID, error) {
	row := db.QueryRow(ctx, lockVehicleForUpdate, id)
	var lockedID uuid.UUID
	err := row.Scan(&lockedID)
	return lockedID, err
}
