package converter

import (
	"fmt"
	"math"

	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) pgquery.CreateReservationParams {
	days := res.TotalDays()
	if days > math.MaxInt32 || days < 1 {
		panic(fmt.Sprintf("total days out of range: %d", days))
	}

	customer := res.Customer()
	r := res.DateRange()

	params := pgquery.CreateReservationParams{
		ID:             res.ID(),
		AgencyID:       res.AgencyID(),
		VehicleID:      res.VehicleID(),
		UserID:         res.UserID(),
		CustomerName:   customer.Name(),
		CustomerEmail:  customer.Email(),
		CustomerPhone:  customer.Phone(),
		StartDate:      pgconv.DateToPgtype(r.Start()),
		EndDate:        pgconv.DateToPgtype(r.End()),
		TotalDays:      int32(days),
		BasePrice:      pgconv.NumericFromDecimal(res.BasePrice()),
		DiscountAmount: pgconv.NumericFromDecimal(res.DiscountAmount()),
		TotalPrice:     pgconv.NumericFromDecimal(res.TotalPrice()),
		Status:         res.Status().String(),
		CreatedAt:      pgconv.TimeToPgtype(res.CreatedAt()),
	}

	if code := res.DiscountCode(); code != nil {
		params.DiscountCode = pgtype.Text{String: code.String(), Valid: true}
	} else {
		params.DiscountCode = pgtype.Text{Valid: false}
	}

	return params
}
