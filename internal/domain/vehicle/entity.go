package vehicle

import (
	"car-rental-platform/internal/domain/pricing"

	"github.com/google/uuid"
)

// Vehicle is read-only here; fleet management lives elsewhere.
type Vehicle struct {
	id          uuid.UUID
	agencyID    uuid.UUID
	make        string
	model       string
	rateCard    pricing.RateCard
	isAvailable bool
}

func Reconstruct(id, agencyID uuid.UUID, brand, model string, rateCard pricing.RateCard, isAvailable bool) *Vehicle {
	return &Vehicle{
		id:          id,
		agencyID:    agencyID,
		make:        brand,
		model:       model,
		rateCard:    rateCard,
		isAvailable: isAvailable,
	}
}

func (v *Vehicle) DisplayName() string {
	return v.make + " " + v.model
}

func (v *Vehicle) ID() uuid.UUID              { return v.id }
func (v *Vehicle) AgencyID() uuid.UUID        { return v.agencyID }
func (v *Vehicle) Make() string               { return v.make }
func (v *Vehicle) Model() string              { return v.model }
func (v *Vehicle) RateCard() pricing.RateCard { return v.rateCard }
func (v *Vehicle) IsAvailable() bool          { return v.isAvailable }
