package reservation

import (
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/pricing"
	"car-rental-platform/internal/domain/vehicle"
	"car-rental-platform/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock    clock.Clock
	Location *time.Location
	Policy   AvailabilityPolicy
}

func NewFactory(clock clock.Clock, loc *time.Location, policy AvailabilityPolicy) *Factory {
	return &Factory{
		Clock:    clock,
		Location: loc,
		Policy:   policy,
	}
}

// CreateReservation checks the vehicle can be rented for r against the existing intervals,
// prices it and returns a pending reservation. rule may be nil.
// The discount code is kept on the reservation only when it reduced the price.
func (f *Factory) CreateReservation(
	v *vehicle.Vehicle,
	userID uuid.UUID,
	customer Customer,
	r daterange.DateRange,
	existing []Interval,
	rule *discount.Rule,
) (*Reservation, pricing.Quote, error) {
	if !v.IsAvailable() {
		return nil, pricing.Quote{}, ErrVehicleNotRentable
	}
	if !f.Policy.IsAvailable(r, existing) {
		return nil, pricing.Quote{}, ErrDatesUnavailable
	}

	now := f.Clock.Now()
	quote := pricing.ComputePrice(v.RateCard(), r, rule, clock.Today(f.Clock, f.Location))

	var code *discount.Code
	if rule != nil && quote.DiscountRejection == discount.RejectionNone {
		c := rule.Code()
		code = &c
	}

	return newPending(v.AgencyID(), v.ID(), userID, customer, r, quote, code, now), quote, nil
}
