package pricing

import (
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/pkg/clock"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Quote is recomputed on every call and never cached.
type Quote struct {
	TotalDays      int
	Tier           Tier
	DailyRateUsed  decimal.Decimal
	BasePrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal
	// Set only when a rule was supplied but contributed nothing.
	DiscountRejection discount.Rejection
}

func (q Quote) DiscountApplied() bool {
	return q.DiscountAmount.IsPositive()
}

// ComputePrice prices r against card, applying rule when it is valid on today.
// Base price is the full-precision per-day rate times the day count, rounded to cents once.
func ComputePrice(card RateCard, r daterange.DateRange, rule *discount.Rule, today civil.Date) Quote {
	days := r.Days()
	perDay := card.PerDay(days)
	base := perDay.Mul(decimal.NewFromInt(int64(days))).Round(2)

	q := Quote{
		TotalDays:      days,
		Tier:           TierFor(days),
		DailyRateUsed:  perDay.Round(4),
		BasePrice:      base,
		DiscountAmount: decimal.Zero,
		TotalPrice:     base,
	}

	if rule == nil {
		return q
	}
	if rejection := rule.Evaluate(today, days); rejection != discount.RejectionNone {
		q.DiscountRejection = rejection
		return q
	}

	q.DiscountAmount = rule.AmountFor(base)
	q.TotalPrice = decimal.Max(decimal.Zero, base.Sub(q.DiscountAmount))
	return q
}

// Calculator binds ComputePrice to a clock so callers don't pass "today" around.
type Calculator struct {
	clock clock.Clock
	loc   *time.Location
}

func NewCalculator(c clock.Clock, loc *time.Location) *Calculator {
	return &Calculator{clock: c, loc: loc}
}

func (c *Calculator) Compute(card RateCard, r daterange.DateRange, rule *discount.Rule) Quote {
	return ComputePrice(card, r, rule, c.Today())
}

func (c *Calculator) Today() civil.Date {
	return clock.Today(c.clock, c.loc)
}
