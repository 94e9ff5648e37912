package pgquery

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Vehicle struct {
	ID          uuid.UUID          `json:"id"`
	AgencyID    uuid.UUID          `json:"agency_id"`
	Make        string             `json:"make"`
	Model       string             `json:"model"`
	DailyRate   pgtype.Numeric     `json:"daily_rate"`
	WeeklyRate  pgtype.Numeric     `json:"weekly_rate"`
	MonthlyRate pgtype.Numeric     `json:"monthly_rate"`
	IsAvailable bool               `json:"is_available"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Discount struct {
	ID            uuid.UUID          `json:"id"`
	AgencyID      uuid.UUID          `json:"agency_id"`
	Code          string             `json:"code"`
	Kind          string             `json:"kind"`
	Amount        pgtype.Numeric     `json:"amount"`
	MinRentalDays pgtype.Int4        `json:"min_rental_days"`
	MaxRentalDays pgtype.Int4        `json:"max_rental_days"`
	ValidFrom     pgtype.Date        `json:"valid_from"`
	ValidTo       pgtype.Date        `json:"valid_to"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Reservation struct {
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
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type IdempotencyKey struct {
	Key                 uuid.UUID          `json:"key"`
	UserID              uuid.UUID          `json:"user_id"`
	Endpoint            string             `json:"endpoint"`
	RequestHash         string             `json:"request_hash"`
	ResponseBodyHash    pgtype.Text        `json:"response_body_hash"`
	Status              string             `json:"status"`
	ResultReservationID pgtype.UUID        `json:"result_reservation_id"`
	ExpiresAt           pgtype.Timestamptz `json:"expires_at"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}
