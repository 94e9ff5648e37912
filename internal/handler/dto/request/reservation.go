package request

import (
	"strings"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/pkg/patch"
	"car-rental-platform/internal/usecase/commands"
	"car-rental-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	VehicleID     uuid.UUID `json:"vehicleId" binding:"required"`
	StartDate     string    `json:"startDate" binding:"required"`
	EndDate       string    `json:"endDate" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required,max=200"`
	CustomerEmail string    `json:"customerEmail" binding:"required,email"`
	CustomerPhone string    `json:"customerPhone" binding:"required,max=50"`
	DiscountCode  *string   `json:"discountCode,omitempty" binding:"omitempty,max=64"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	dates, err := daterange.Parse(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	return commands.CreateReservationInput{
		VehicleID: r.VehicleID,
		DateRange: dates,
		Customer: commands.CustomerInput{
			Name:  strings.TrimSpace(r.CustomerName),
			Email: strings.TrimSpace(r.CustomerEmail),
			Phone: strings.TrimSpace(r.CustomerPhone),
		},
		DiscountCode: patch.NonEmpty(r.DiscountCode, strings.TrimSpace),
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListReservationsQuery holds the raw query string; ids are parsed by ToFilter.
type ListReservationsQuery struct {
	AgencyID  *string `form:"agencyId"`
	VehicleID *string `form:"vehicleId"`
	Status    *string `form:"status"`
	Limit     *int    `form:"limit" binding:"omitempty,min=1"`
	After     string  `form:"after"`
}

func (q ListReservationsQuery) ToFilter() (queries.ReservationFilter, error) {
	var filter queries.ReservationFilter

	agencyID, err := parseOptionalUUID(q.AgencyID)
	if err != nil {
		return filter, err
	}
	vehicleID, err := parseOptionalUUID(q.VehicleID)
	if err != nil {
		return filter, err
	}

	filter.AgencyID = agencyID
	filter.VehicleID = vehicleID
	filter.Status = patch.NonEmpty(q.Status, strings.TrimSpace)
	return filter, nil
}

func (q ListReservationsQuery) LimitOrDefault() int {
	return queries.ValidateLimit(patch.Coalesce(q.Limit, queries.DefaultListLimit))
}

type DateRangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

func (q DateRangeQuery) ToDateRange() (daterange.DateRange, error) {
	return daterange.Parse(q.StartDate, q.EndDate)
}

type PricingQuery struct {
	DateRangeQuery
	DiscountCode *string `form:"discountCode"`
}

func (q PricingQuery) Code() *string {
	return patch.NonEmpty(q.DiscountCode, strings.TrimSpace)
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	v := patch.NonEmpty(s, strings.TrimSpace)
	if v == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
