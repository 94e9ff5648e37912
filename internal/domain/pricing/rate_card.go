package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNegativeRate = errors.New("rates must be non-negative")

// RateCard holds a vehicle's per-day, per-week and per-month prices.
// Tiers are not checked against each other; a weekly rate above 7x daily is allowed.
type RateCard struct {
	daily   decimal.Decimal
	weekly  decimal.Decimal
	monthly decimal.Decimal
}

func NewRateCard(daily, weekly, monthly decimal.Decimal) (RateCard, error) {
	if daily.IsNegative() || weekly.IsNegative() || monthly.IsNegative() {
		return RateCard{}, ErrNegativeRate
	}
	return RateCard{daily: daily, weekly: weekly, monthly: monthly}, nil
}

func MustRateCard(daily, weekly, monthly string) RateCard {
	rc, err := NewRateCard(
		decimal.RequireFromString(daily),
		decimal.RequireFromString(weekly),
		decimal.RequireFromString(monthly),
	)
	if err != nil {
		panic(err)
	}
	return rc
}

func (rc RateCard) Daily() decimal.Decimal   { return rc.daily }
func (rc RateCard) Weekly() decimal.Decimal  { return rc.weekly }
func (rc RateCard) Monthly() decimal.Decimal { return rc.monthly }

const (
	weeklyThresholdDays  = 7
	monthlyThresholdDays = 30
)

// Tier names which rate a rental length is billed at.
type Tier string

const (
	TierDaily   Tier = "daily"
	TierWeekly  Tier = "weekly"
	TierMonthly Tier = "monthly"
)

func TierFor(totalDays int) Tier {
	switch {
	case totalDays >= monthlyThresholdDays:
		return TierMonthly
	case totalDays >= weeklyThresholdDays:
		return TierWeekly
	default:
		return TierDaily
	}
}

// PerDay is the effective daily rate for a rental of totalDays.
func (rc RateCard) PerDay(totalDays int) decimal.Decimal {
	switch TierFor(totalDays) {
	case TierMonthly:
		return rc.monthly.Div(decimal.NewFromInt(monthlyThresholdDays))
	case TierWeekly:
		return rc.weekly.Div(decimal.NewFromInt(weeklyThresholdDays))
	default:
		return rc.daily
	}
}
