package readstore

import (
	"context"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type DiscountReadQueries interface {
	GetActiveDiscountByCode(ctx context.Context, db pgquery.DBTX, arg pgquery.GetActiveDiscountByCodeParams) (pgquery.Discount, error)
}

type DiscountReadStore struct {
	queries DiscountReadQueries
	db      pgquery.DBTX
}

func NewDiscountReadStore(queries DiscountReadQueries, db pgquery.DBTX) *DiscountReadStore {
	return &DiscountReadStore{
		queries: queries,
		db:      db,
	}
}

// FindActiveByCode only sees discounts flagged active; window and day-count checks happen in pricing.
func (r *DiscountReadStore) FindActiveByCode(ctx context.Context, agencyID uuid.UUID, code string) (*queries.DiscountView, error) {
	row, err := r.queries.GetActiveDiscountByCode(ctx, r.db, pgquery.GetActiveDiscountByCodeParams{
		AgencyID: agencyID,
		Code:     code,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find discount by code", err)
	}

	view, err := toDiscountView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discount row", err, infra.KindDBFailure)
	}
	return view, nil
}

func toDiscountView(row pgquery.Discount) (*queries.DiscountView, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, err
	}
	validFrom, err := pgconv.DateFromPgtype(row.ValidFrom)
	if err != nil {
		return nil, err
	}
	validTo, err := pgconv.DateFromPgtype(row.ValidTo)
	if err != nil {
		return nil, err
	}

	return &queries.DiscountView{
		ID:            row.ID,
		AgencyID:      row.AgencyID,
		Code:          row.Code,
		Kind:          row.Kind,
		Amount:        amount,
		MinRentalDays: pgconv.IntPtrFromPgtype(row.MinRentalDays),
		MaxRentalDays: pgconv.IntPtrFromPgtype(row.MaxRentalDays),
		ValidFrom:     validFrom,
		ValidTo:       validTo,
		IsActive:      row.IsActive,
	}, nil
}
