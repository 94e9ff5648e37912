package queries

import (
	"context"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/pricing"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
}

type DiscountReadStore interface {
	FindActiveByCode(ctx context.Context, agencyID uuid.UUID, code string) (*DiscountView, error)
}

type IntervalReadStore interface {
	BlockingIntervals(ctx context.Context, vehicleID uuid.UUID, from, to civil.Date) ([]IntervalView, error)
}

type PricingQueries interface {
	// Quote prices a prospective rental. An unknown or inapplicable code yields a quote without discount.
	Quote(ctx context.Context, vehicleID uuid.UUID, r daterange.DateRange, discountCode *string) (*QuoteView, error)
	Availability(ctx context.Context, vehicleID uuid.UUID, r daterange.DateRange) (*AvailabilityView, error)
}

type pricingQueriesImpl struct {
	vehicles   VehicleReadStore
	discounts  DiscountReadStore
	intervals  IntervalReadStore
	calculator *pricing.Calculator
	policy     reservation.AvailabilityPolicy
}

func NewPricingQueries(
	vehicles VehicleReadStore,
	discounts DiscountReadStore,
	intervals IntervalReadStore,
	calculator *pricing.Calculator,
	policy reservation.AvailabilityPolicy,
) PricingQueries {
	return &pricingQueriesImpl{
		vehicles:   vehicles,
		discounts:  discounts,
		intervals:  intervals,
		calculator: calculator,
		policy:     policy,
	}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, vehicleID uuid.UUID, r daterange.DateRange, discountCode *string) (*QuoteView, error) {
	v, card, err := q.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	var rule *discount.Rule
	rejection := discount.RejectionNone
	if discountCode != nil {
		rule, rejection, err = q.lookupDiscount(ctx, v.AgencyID, *discountCode)
		if err != nil {
			return nil, err
		}
	}

	quote := q.calculator.Compute(card, r, rule)
	if rejection == discount.RejectionNone {
		rejection = quote.DiscountRejection
	}

	view := &QuoteView{
		VehicleID:         v.ID,
		AgencyID:          v.AgencyID,
		StartDate:         r.Start(),
		EndDate:           r.End(),
		TotalDays:         quote.TotalDays,
		Tier:              string(quote.Tier),
		DailyRateUsed:     quote.DailyRateUsed,
		BasePrice:         quote.BasePrice,
		DiscountAmount:    quote.DiscountAmount,
		DiscountRejection: rejection.String(),
		TotalPrice:        quote.TotalPrice,
	}
	if rule != nil && rejection == discount.RejectionNone {
		code := rule.Code().String()
		view.DiscountCode = &code
	}
	return view, nil
}

func (q *pricingQueriesImpl) Availability(ctx context.Context, vehicleID uuid.UUID, r daterange.DateRange) (*AvailabilityView, error) {
	v, _, err := q.loadVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	views, err := q.intervals.BlockingIntervals(ctx, vehicleID, r.Start(), r.End())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	conflicts := []IntervalView{}
	for _, iv := range views {
		dr, err := daterange.New(iv.StartDate, iv.EndDate)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		existing := []reservation.Interval{{Range: dr, Status: reservation.Status(iv.Status)}}
		if len(q.policy.Conflicts(r, existing)) > 0 {
			conflicts = append(conflicts, iv)
		}
	}

	return &AvailabilityView{
		VehicleID: v.ID,
		StartDate: r.Start(),
		EndDate:   r.End(),
		Rentable:  v.IsAvailable,
		Available: v.IsAvailable && len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (q *pricingQueriesImpl) loadVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleView, pricing.RateCard, error) {
	v, err := q.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, pricing.RateCard{}, errs.ErrVehicleNotFound
		}
		return nil, pricing.RateCard{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	card, err := pricing.NewRateCard(v.DailyRate, v.WeeklyRate, v.MonthlyRate)
	if err != nil {
		return nil, pricing.RateCard{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	return v, card, nil
}

func (q *pricingQueriesImpl) lookupDiscount(ctx context.Context, agencyID uuid.UUID, rawCode string) (*discount.Rule, discount.Rejection, error) {
	code, err := discount.NewCode(rawCode)
	if err != nil {
		return nil, discount.RejectionCodeNotFound, nil
	}

	d, err := q.discounts.FindActiveByCode(ctx, agencyID, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, discount.RejectionCodeNotFound, nil
		}
		return nil, discount.RejectionNone, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	rule, err := discount.NewRule(discount.Params{
		ID:            d.ID,
		AgencyID:      d.AgencyID,
		Code:          d.Code,
		Kind:          d.Kind,
		Amount:        d.Amount,
		MinRentalDays: d.MinRentalDays,
		MaxRentalDays: d.MaxRentalDays,
		ValidFrom:     d.ValidFrom,
		ValidTo:       d.ValidTo,
		Active:        d.IsActive,
	})
	if err != nil {
		return nil, discount.RejectionNone, errs.Mark(err, errs.ErrDomainValidation)
	}
	return rule, discount.RejectionNone, nil
}
