package pgquery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    id, agency_id, vehicle_id, user_id,
    customer_name, customer_email, customer_phone,
    start_date, end_date, total_days,
    base_price, discount_code, discount_amount, total_price,
    status, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16
)
RETURNING id
`

type CreateReservationParams struct {
	ID             uuid.UUID          `json:"id"`
	AgencyID       uuid.UUID          `json:"agency_id"`
	VehicleID      uuid.UUID          `json:"vehicle_id"`
	UserID         uuid.UUID          `json:"user_id"`
	CustomerName   string             `json:"customer_name"`
	CustomerEmail  string             `json:"customer_email"`
	CustomerPhone  string             `json:"customer_phone"`
	StartDate      pgtype.Date        `json:"start_date"`
	EndDate        pgtype.Date        `json:"end_date"`
	TotalDays      int32              `json:"total_days"`
	BasePrice      pgtype.Numeric     `json:"base_price"`
	DiscountCode   pgtype.Text        `json:"discount_code"`
	DiscountAmount pgtype.Numeric     `json:"discount_amount"`
	TotalPrice     pgtype.Numeric     `json:"total_price"`
	Status         string             `json:"status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.AgencyID,
		arg.VehicleID,
		arg.UserID,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.StartDate,
		arg.EndDate,
		arg.TotalDays,
		arg.BasePrice,
		arg.DiscountCode,
		arg.DiscountAmount,
		arg.TotalPrice,
		arg.Status,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT r.id, r.agency_id, r.vehicle_id, r.user_id,
       r.customer_name, r.customer_email, r.customer_phone,
       r.start_date, r.end_date, r.total_days,
       r.base_price, r.discount_code, r.discount_amount, r.total_price,
       r.status, r.created_at, r.updated_at,
       v.make AS vehicle_make, v.model AS vehicle_model
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
WHERE r.id = $1
`

type GetReservationByIDRow struct {
	Reservation
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
}

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (GetReservationByIDRow, error) {
	row := db.QueryRow(ctx, getReservationByID, id)
	var i GetReservationByIDRow
	err := row.Scan(append(reservationScanTargets(&i.Reservation), &i.VehicleMake, &i.VehicleModel)...)
	return i, err
}

const getReservationForUpdate = `-- name: GetReservationForUpdate :one
SELECT id, agency_id, vehicle_id, user_id,
       customer_name, customer_email, customer_phone,
       start_date, end_date, total_days,
       base_price, discount_code, discount_amount, total_price,
       status, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	row := db.QueryRow(ctx, getReservationForUpdate, id)
	var i Reservation
	err := row.Scan(reservationScanTargets(&i)...)
	return i, err
}

const listReservations = `-- name: ListReservations :many
SELECT r.id, r.agency_id, r.vehicle_id, r.user_id,
       r.customer_name, r.customer_email, r.customer_phone,
       r.start_date, r.end_date, r.total_days,
       r.base_price, r.discount_code, r.discount_amount, r.total_price,
       r.status, r.created_at, r.updated_at,
       v.make AS vehicle_make, v.model AS vehicle_model
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
WHERE ($1::uuid IS NULL OR r.user_id = $1)
  AND ($2::uuid IS NULL OR r.agency_id = $2)
  AND ($3::uuid IS NULL OR r.vehicle_id = $3)
  AND ($4::text IS NULL OR r.status = $4)
  AND ($5::timestamptz IS NULL OR (r.created_at, r.id) < ($5, $6::uuid))
ORDER BY r.created_at DESC, r.id DESC
LIMIT $7
`

type ListReservationsParams struct {
	UserID         pgtype.UUID        `json:"user_id"`
	AgencyID       pgtype.UUID        `json:"agency_id"`
	VehicleID      pgtype.UUID        `json:"vehicle_id"`
	Status         pgtype.Text        `json:"status"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

type ListReservationsRow = GetReservationByIDRow

func (q *Queries) ListReservations(ctx context.Context, db DBTX, arg ListReservationsParams) ([]ListReservationsRow, error) {
	rows, err := db.Query(ctx, listReservations,
		arg.UserID,
		arg.AgencyID,
		arg.VehicleID,
		arg.Status,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListReservationsRow{}
	for rows.Next() {
		var i ListReservationsRow
		if err := rows.Scan(append(reservationScanTargets(&i.Reservation), &i.VehicleMake, &i.VehicleModel)...); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listBlockingReservationsByVehicle = `-- name: ListBlockingReservationsByVehicle :many
SELECT id, start_date, end_date, status
FROM reservations
WHERE vehicle_id = $1
  AND status IN ('pending', 'confirmed')
  AND end_date >= $2
  AND start_date <= $3
ORDER BY start_date
`

type ListBlockingReservationsByVehicleParams struct {
	VehicleID uuid.UUID   `json:"vehicle_id"`
	FromDate  pgtype.Date `json:"from_date"`
	ToDate    pgtype.Date `json:"to_date"`
}

type ListBlockingReservationsByVehicleRow struct {
	ID        uuid.UUID   `json:"id"`
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	Status    string      `json:"status"`
}

// ListBlockingReservationsByVehicle narrows to the window in SQL; the overlap rule itself lives in the domain.
func (q *Queries) ListBlockingReservationsByVehicle(ctx context.Context, db DBTX, arg ListBlockingReservationsByVehicleParams) ([]ListBlockingReservationsByVehicleRow, error) {
	rows, err := db.Query(ctx, listBlockingReservationsByVehicle, arg.VehicleID, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListBlockingReservationsByVehicleRow{}
	for rows.Next() {
		var i ListBlockingReservationsByVehicleRow
		if err := rows.Scan(&i.ID, &i.StartDate, &i.EndDate, &i.Status); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateReservationStatus = `-- name: UpdateReservationStatus :exec
UPDATE reservations
SET status = $2, updated_at = $3
WHERE id = $1
`

type UpdateReservationStatusParams struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) error {
	tag, err := db.Exec(ctx, updateReservationStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const completeFinishedReservations = `-- name: CompleteFinishedReservations :execrows
UPDATE reservations
SET status = 'completed', updated_at = $2
WHERE status = 'confirmed' AND end_date < $1
`

type CompleteFinishedReservationsParams struct {
	Before    pgtype.Date        `json:"before"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CompleteFinishedReservations(ctx context.Context, db DBTX, arg CompleteFinishedReservationsParams) (int64, error) {
	result, err := db.Exec(ctx, completeFinishedReservations, arg.Before, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func reservationScanTargets(i *Reservation) []any {
	return []any{
		&i.ID,
		&i.AgencyID,
		&i.VehicleID,
		&i.UserID,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerPhone,
		&i.StartDate,
		&i.EndDate,
		&i.TotalDays,
		&i.BasePrice,
		&i.DiscountCode,
		&i.DiscountAmount,
		&i.TotalPrice,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}
