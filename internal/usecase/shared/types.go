package shared

import (
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/pricing"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/domain/vehicle"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type VehicleSnapshot struct {
	ID          uuid.UUID
	AgencyID    uuid.UUID
	Make        string
	Model       string
	DailyRate   decimal.Decimal
	WeeklyRate  decimal.Decimal
	MonthlyRate decimal.Decimal
	IsAvailable bool
}

func (s *VehicleSnapshot) ToDomain() (*vehicle.Vehicle, error) {
	card, err := pricing.NewRateCard(s.DailyRate, s.WeeklyRate, s.MonthlyRate)
	if err != nil {
		return nil, err
	}
	return vehicle.Reconstruct(s.ID, s.AgencyID, s.Make, s.Model, card, s.IsAvailable), nil
}

type DiscountSnapshot struct {
	ID            uuid.UUID
	AgencyID      uuid.UUID
	Code          string
	Kind          string
	Amount        decimal.Decimal
	MinRentalDays *int
	MaxRentalDays *int
	ValidFrom     civil.Date
	ValidTo       civil.Date
	IsActive      bool
}

func (s *DiscountSnapshot) ToDomain() (*discount.Rule, error) {
	return discount.NewRule(discount.Params{
		ID:            s.ID,
		AgencyID:      s.AgencyID,
		Code:          s.Code,
		Kind:          s.Kind,
		Amount:        s.Amount,
		MinRentalDays: s.MinRentalDays,
		MaxRentalDays: s.MaxRentalDays,
		ValidFrom:     s.ValidFrom,
		ValidTo:       s.ValidTo,
		Active:        s.IsActive,
	})
}

type ReservationSnapshot struct {
	ID             uuid.UUID
	AgencyID       uuid.UUID
	VehicleID      uuid.UUID
	UserID         uuid.UUID
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	StartDate      civil.Date
	EndDate        civil.Date
	TotalDays      int
	BasePrice      decimal.Decimal
	DiscountCode   *string
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *ReservationSnapshot) ToDomain() (*reservation.Reservation, error) {
	r, err := daterange.New(s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}
	status, err := reservation.NewStatus(s.Status)
	if err != nil {
		return nil, err
	}
	var code *discount.Code
	if s.DiscountCode != nil {
		c := discount.Code(*s.DiscountCode)
		code = &c
	}

	return reservation.Reconstruct(reservation.Snapshot{
		ID:             s.ID,
		AgencyID:       s.AgencyID,
		VehicleID:      s.VehicleID,
		UserID:         s.UserID,
		Customer:       reservation.ReconstructCustomer(s.CustomerName, s.CustomerEmail, s.CustomerPhone),
		DateRange:      r,
		TotalDays:      s.TotalDays,
		BasePrice:      s.BasePrice,
		DiscountCode:   code,
		DiscountAmount: s.DiscountAmount,
		TotalPrice:     s.TotalPrice,
		Status:         status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}), nil
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)
