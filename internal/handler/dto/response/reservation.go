package response

import (
	"time"

	"car-rental-platform/internal/usecase/queries"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Money is rendered with two decimals and dates as YYYY-MM-DD.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).StringFixed(2), nil
			},
		},
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: civil.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(civil.Date).String(), nil
			},
		},
	},
}

type ReservationResponse struct {
	ID             string    `json:"id"`
	AgencyID       string    `json:"agencyId"`
	VehicleID      string    `json:"vehicleId"`
	VehicleMake    string    `json:"vehicleMake"`
	VehicleModel   string    `json:"vehicleModel"`
	UserID         string    `json:"userId"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerPhone  string    `json:"customerPhone"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	TotalDays      int       `json:"totalDays"`
	BasePrice      string    `json:"basePrice"`
	DiscountCode   *string   `json:"discountCode,omitempty"`
	DiscountAmount string    `json:"discountAmount"`
	TotalPrice     string    `json:"totalPrice"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	res := &ReservationResponse{}
	mustCopy(res, v)
	return res
}

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   *string                `json:"nextCursor,omitempty"`
}

func FromReservationList(items []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	out := &ReservationListResponse{Reservations: make([]*ReservationResponse, len(items))}
	for i, it := range items {
		out.Reservations[i] = FromReservationView(it)
	}
	if next != nil {
		out.NextCursor = &next.After
	}
	return out
}

type QuoteResponse struct {
	VehicleID         string  `json:"vehicleId"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	TotalDays         int     `json:"totalDays"`
	Tier              string  `json:"tier"`
	DailyRateUsed     string  `json:"dailyRateUsed"`
	BasePrice         string  `json:"basePrice"`
	DiscountCode      *string `json:"discountCode,omitempty"`
	DiscountAmount    string  `json:"discountAmount"`
	DiscountRejection string  `json:"discountRejection,omitempty"`
	TotalPrice        string  `json:"totalPrice"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	res := &QuoteResponse{}
	mustCopy(res, v)
	// Four places so clients can reproduce basePrice from the per-day rate.
	res.DailyRateUsed = v.DailyRateUsed.StringFixed(4)
	return res
}

type ConflictResponse struct {
	ReservationID string `json:"reservationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
}

type AvailabilityResponse struct {
	VehicleID string             `json:"vehicleId"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Rentable  bool               `json:"rentable"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	res := &AvailabilityResponse{
		VehicleID: v.VehicleID.String(),
		StartDate: v.StartDate.String(),
		EndDate:   v.EndDate.String(),
		Rentable:  v.Rentable,
		Available: v.Available,
		Conflicts: make([]ConflictResponse, len(v.Conflicts)),
	}
	for i, c := range v.Conflicts {
		res.Conflicts[i] = ConflictResponse{
			ReservationID: c.ReservationID.String(),
			StartDate:     c.StartDate.String(),
			EndDate:       c.EndDate.String(),
			Status:        c.Status,
		}
	}
	return res
}

func mustCopy(dst, src any) {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		// Only reachable if the DTO and view drift apart.
		panic("response copy failed: " + err.Error())
	}
}
