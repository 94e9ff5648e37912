package queries

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleView represents read-optimized vehicle data
type VehicleView struct {
	ID          uuid.UUID       `json:"id"`
	AgencyID    uuid.UUID       `json:"agency_id"`
	Make        string          `json:"make"`
	Model       string          `json:"model"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	WeeklyRate  decimal.Decimal `json:"weekly_rate"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	IsAvailable bool            `json:"is_available"`
}

// DiscountView represents read-optimized discount data
type DiscountView struct {
	ID            uuid.UUID       `json:"id"`
	AgencyID      uuid.UUID       `json:"agency_id"`
	Code          string          `json:"code"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	MinRentalDays *int            `json:"min_rental_days,omitempty"`
	MaxRentalDays *int            `json:"max_rental_days,omitempty"`
	ValidFrom     civil.Date      `json:"valid_from"`
	ValidTo       civil.Date      `json:"valid_to"`
	IsActive      bool            `json:"is_active"`
}

type ReservationView struct {
	ID             uuid.UUID       `json:"id"`
	AgencyID       uuid.UUID       `json:"agency_id"`
	VehicleID      uuid.UUID       `json:"vehicle_id"`
	VehicleMake    string          `json:"vehicle_make"`
	VehicleModel   string          `json:"vehicle_model"`
	UserID         uuid.UUID       `json:"user_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone"`
	StartDate      civil.Date      `json:"start_date"`
	EndDate        civil.Date      `json:"end_date"`
	TotalDays      int             `json:"total_days"`
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountCode   *string         `json:"discount_code,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IntervalView is a blocking reservation as seen by the availability check
type IntervalView struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	StartDate     civil.Date `json:"start_date"`
	EndDate       civil.Date `json:"end_date"`
	Status        string     `json:"status"`
}

// IdempotencyKeyView represents read-optimized idempotency key data
type IdempotencyKeyView struct {
	Key                 uuid.UUID  `json:"key"`
	UserID              uuid.UUID  `json:"user_id"`
	Endpoint            string     `json:"endpoint"`
	RequestHash         string     `json:"request_hash"`
	ResponseBodyHash    *string    `json:"response_body_hash,omitempty"`
	Status              string     `json:"status"`
	ResultReservationID *uuid.UUID `json:"result_reservation_id,omitempty"`
	ExpiresAt           time.Time  `json:"expires_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type QuoteView struct {
	VehicleID         uuid.UUID       `json:"vehicle_id"`
	AgencyID          uuid.UUID       `json:"agency_id"`
	StartDate         civil.Date      `json:"start_date"`
	EndDate           civil.Date      `json:"end_date"`
	TotalDays         int             `json:"total_days"`
	Tier              string          `json:"tier"`
	DailyRateUsed     decimal.Decimal `json:"daily_rate_used"`
	BasePrice         decimal.Decimal `json:"base_price"`
	DiscountCode      *string         `json:"discount_code,omitempty"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	DiscountRejection string          `json:"discount_rejection,omitempty"`
	TotalPrice        decimal.Decimal `json:"total_price"`
}

type AvailabilityView struct {
	VehicleID uuid.UUID      `json:"vehicle_id"`
	StartDate civil.Date     `json:"start_date"`
	EndDate   civil.Date     `json:"end_date"`
	Rentable  bool           `json:"rentable"`
	Available bool           `json:"available"`
	Conflicts []IntervalView `json:"conflicts"`
}
