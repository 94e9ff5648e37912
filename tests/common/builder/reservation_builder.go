//go:build unit || e2e

package builder

import (
	"time"

	reqdto "car-rental-platform/internal/handler/dto/request"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	AgencyID       uuid.UUID
	VehicleID      uuid.UUID
	UserID         uuid.UUID
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	StartDate      civil.Date
	EndDate        civil.Date
	BasePrice      decimal.Decimal
	DiscountCode   *string
	DiscountAmount decimal.Decimal
	Status         string
	CreatedAt      time.Time
}

// NewReservationBuilder defaults to a pending three-day rental at 50.00 per day.
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:             uuid.New(),
		AgencyID:       uuid.New(),
		VehicleID:      uuid.New(),
		UserID:         uuid.New(),
		CustomerName:   "Jane Driver",
		CustomerEmail:  "jane@example.com",
		CustomerPhone:  "+1-555-0100",
		StartDate:      civil.Date{Year: 2026, Month: time.July, Day: 1},
		EndDate:        civil.Date{Year: 2026, Month: time.July, Day: 3},
		BasePrice:      decimal.RequireFromString("150.00"),
		DiscountAmount: decimal.Zero,
		Status:         "pending",
		CreatedAt:      time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) totalDays() int {
	return r.EndDate.DaysSince(r.StartDate) + 1
}

func (r *ReservationBuilder) totalPrice() decimal.Decimal {
	return decimal.Max(decimal.Zero, r.BasePrice.Sub(r.DiscountAmount))
}

// Build methods
func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		VehicleID:     r.VehicleID,
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.String(),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		DiscountCode:  r.DiscountCode,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:             r.ID,
		AgencyID:       r.AgencyID,
		VehicleID:      r.VehicleID,
		VehicleMake:    "Toyota",
		VehicleModel:   "Corolla",
		UserID:         r.UserID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		TotalDays:      r.totalDays(),
		BasePrice:      r.BasePrice,
		DiscountCode:   r.DiscountCode,
		DiscountAmount: r.DiscountAmount,
		TotalPrice:     r.totalPrice(),
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildInfra() pgquery.Reservation {
	return pgquery.Reservation{
		ID:             r.ID,
		AgencyID:       r.AgencyID,
		VehicleID:      r.VehicleID,
		UserID:         r.UserID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		StartDate:      pgconv.DateToPgtype(r.StartDate),
		EndDate:        pgconv.DateToPgtype(r.EndDate),
		TotalDays:      int32(r.totalDays()),
		BasePrice:      pgconv.NumericFromDecimal(r.BasePrice),
		DiscountCode:   pgconv.StringPtrToPgtype(r.DiscountCode),
		DiscountAmount: pgconv.NumericFromDecimal(r.DiscountAmount),
		TotalPrice:     pgconv.NumericFromDecimal(r.totalPrice()),
		Status:         r.Status,
		CreatedAt:      pgconv.TimeToPgtype(r.CreatedAt),
		UpdatedAt:      pgconv.TimeToPgtype(r.CreatedAt),
	}
}
