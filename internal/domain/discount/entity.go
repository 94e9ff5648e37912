package discount

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rule is an agency-scoped promotional discount.
type Rule struct {
	id            uuid.UUID
	agencyID      uuid.UUID
	code          Code
	kind          Kind
	amount        decimal.Decimal
	minRentalDays *int
	maxRentalDays *int
	validFrom     civil.Date
	validTo       civil.Date
	active        bool
}

type Params struct {
	ID            uuid.UUID
	AgencyID      uuid.UUID
	Code          string
	Kind          string
	Amount        decimal.Decimal
	MinRentalDays *int
	MaxRentalDays *int
	ValidFrom     civil.Date
	ValidTo       civil.Date
	Active        bool
}

func NewRule(p Params) (*Rule, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}
	kind, err := NewKind(p.Kind)
	if err != nil {
		return nil, err
	}
	if p.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if p.ValidTo.Before(p.ValidFrom) {
		return nil, ErrInvalidWindow
	}

	return &Rule{
		id:            p.ID,
		agencyID:      p.AgencyID,
		code:          code,
		kind:          kind,
		amount:        p.Amount,
		minRentalDays: p.MinRentalDays,
		maxRentalDays: p.MaxRentalDays,
		validFrom:     p.ValidFrom,
		validTo:       p.ValidTo,
		active:        p.Active,
	}, nil
}

// Evaluate reports whether the rule applies on today to a rental of totalDays.
// The validity window is inclusive on both dates. A nil or zero rental-day bound is unbounded.
func (r *Rule) Evaluate(today civil.Date, totalDays int) Rejection {
	switch {
	case !r.active:
		return RejectionInactive
	case today.Before(r.validFrom):
		return RejectionNotYetValid
	case today.After(r.validTo):
		return RejectionExpired
	case r.minRentalDays != nil && *r.minRentalDays > 0 && totalDays < *r.minRentalDays:
		return RejectionBelowMinDays
	case r.maxRentalDays != nil && *r.maxRentalDays > 0 && totalDays > *r.maxRentalDays:
		return RejectionAboveMaxDays
	}
	return RejectionNone
}

// AmountFor is the discount on base, before any clamping of the total.
func (r *Rule) AmountFor(base decimal.Decimal) decimal.Decimal {
	if r.kind == KindPercentage {
		return base.Mul(r.amount).Div(hundred).Round(2)
	}
	return r.amount
}

func (r *Rule) ID() uuid.UUID           { return r.id }
func (r *Rule) AgencyID() uuid.UUID     { return r.agencyID }
func (r *Rule) Code() Code              { return r.code }
func (r *Rule) Kind() Kind              { return r.kind }
func (r *Rule) Amount() decimal.Decimal { return r.amount }
func (r *Rule) MinRentalDays() *int     { return r.minRentalDays }
func (r *Rule) MaxRentalDays() *int     { return r.maxRentalDays }
func (r *Rule) ValidFrom() civil.Date   { return r.validFrom }
func (r *Rule) ValidTo() civil.Date     { return r.validTo }
func (r *Rule) IsActive() bool          { return r.active }
