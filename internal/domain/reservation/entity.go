package reservation

import (
	"errors"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrInvalidTransition    = errors.New("reservation status transition not allowed")
	ErrVehicleNotRentable   = errors.New("vehicle is not available for rental")
	ErrDatesUnavailable     = errors.New("vehicle is not available for the selected dates")
	ErrInvalidCustomerName  = errors.New("customer name is required")
	ErrInvalidCustomerEmail = errors.New("invalid customer email")
	ErrInvalidCustomerPhone = errors.New("customer phone is required")
)

// Reservation snapshots the quote at creation; later rate card or discount edits don't reprice it.
type Reservation struct {
	id             uuid.UUID
	agencyID       uuid.UUID
	vehicleID      uuid.UUID
	userID         uuid.UUID
	customer       Customer
	dateRange      daterange.DateRange
	totalDays      int
	basePrice      decimal.Decimal
	discountCode   *discount.Code
	discountAmount decimal.Decimal
	totalPrice     decimal.Decimal
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
}

func newPending(
	agencyID, vehicleID, userID uuid.UUID,
	customer Customer,
	r daterange.DateRange,
	quote pricing.Quote,
	code *discount.Code,
	now time.Time,
) *Reservation {
	return &Reservation{
		id:             uuid.New(),
		agencyID:       agencyID,
		vehicleID:      vehicleID,
		userID:         userID,
		customer:       customer,
		dateRange:      r,
		totalDays:      quote.TotalDays,
		basePrice:      quote.BasePrice,
		discountCode:   code,
		discountAmount: quote.DiscountAmount,
		totalPrice:     quote.TotalPrice,
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}
}

type Snapshot struct {
	ID             uuid.UUID
	AgencyID       uuid.UUID
	VehicleID      uuid.UUID
	UserID         uuid.UUID
	Customer       Customer
	DateRange      daterange.DateRange
	TotalDays      int
	BasePrice      decimal.Decimal
	DiscountCode   *discount.Code
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(s Snapshot) *Reservation {
	return &Reservation{
		id:             s.ID,
		agencyID:       s.AgencyID,
		vehicleID:      s.VehicleID,
		userID:         s.UserID,
		customer:       s.Customer,
		dateRange:      s.DateRange,
		totalDays:      s.TotalDays,
		basePrice:      s.BasePrice,
		discountCode:   s.DiscountCode,
		discountAmount: s.DiscountAmount,
		totalPrice:     s.TotalPrice,
		status:         s.Status,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

// TransitionTo moves the reservation along the lifecycle.
func (r *Reservation) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) Interval() Interval {
	return Interval{Range: r.dateRange, Status: r.status}
}

func (r *Reservation) ID() uuid.UUID                   { return r.id }
func (r *Reservation) AgencyID() uuid.UUID             { return r.agencyID }
func (r *Reservation) VehicleID() uuid.UUID            { return r.vehicleID }
func (r *Reservation) UserID() uuid.UUID               { return r.userID }
func (r *Reservation) Customer() Customer              { return r.customer }
func (r *Reservation) DateRange() daterange.DateRange  { return r.dateRange }
func (r *Reservation) TotalDays() int                  { return r.totalDays }
func (r *Reservation) BasePrice() decimal.Decimal      { return r.basePrice }
func (r *Reservation) DiscountCode() *discount.Code    { return r.discountCode }
func (r *Reservation) DiscountAmount() decimal.Decimal { return r.discountAmount }
func (r *Reservation) TotalPrice() decimal.Decimal     { return r.totalPrice }
func (r *Reservation) Status() Status                  { return r.status }
func (r *Reservation) CreatedAt() time.Time            { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time            { return r.updatedAt }
