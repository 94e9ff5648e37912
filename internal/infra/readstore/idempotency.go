package readstore

import (
	"context"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db pgquery.DBTX, arg pgquery.GetIdempotencyKeyParams) (pgquery.IdempotencyKey, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{queries: queries}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, db pgquery.DBTX, key, userID uuid.UUID) (*queries.IdempotencyKeyView, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, db, pgquery.GetIdempotencyKeyParams{
		Key:    key,
		UserID: userID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &queries.IdempotencyKeyView{
		Key:                 row.Key,
		UserID:              row.UserID,
		Endpoint:            row.Endpoint,
		RequestHash:         row.RequestHash,
		ResponseBodyHash:    pgconv.StringPtrFromPgtype(row.ResponseBodyHash),
		Status:              row.Status,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
		CreatedAt:           pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:           pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
