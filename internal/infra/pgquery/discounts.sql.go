package pgquery

import (
	"context"

	"github.com/google/uuid"
)

const getActiveDiscountByCode = `-- name: GetActiveDiscountByCode :one
SELECT id, agency_id, code, kind, amount, min_rental_days, max_rental_days, valid_from, valid_to, is_active, created_at, updated_at
FROM discounts
WHERE agency_id = $1 AND code = $2 AND is_active = TRUE
`

type GetActiveDiscountByCodeParams struct {
	AgencyID uuid.UUID `json:"agency_id"`
	Code     string    `json:"code"`
}

func (q *Queries) GetActiveDiscountByCode(ctx context.Context, db DBTX, arg GetActiveDiscountByCodeParams) (Discount, error) {
	row := db.QueryRow(ctx, getActiveDiscountByCode, arg.AgencyID, arg.Code)
	var i Discount
	err := row.Scan(
		&i.ID,
		&i.AgencyID,
		&i.Code,
		&i.Kind,
		&i.Amount,
		&i.MinRentalDays,
		&i.MaxRentalDays,
		&i.ValidFrom,
		&i.ValidTo,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
