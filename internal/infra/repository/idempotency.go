package repository

import (
	"context"
	"time"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db pgquery.DBTX, arg pgquery.TryInsertIdempotencyKeyParams) (int64, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db pgquery.DBTX, arg pgquery.ClaimExpiredIdempotencyKeyParams) (int64, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateIdempotencyKeyCompletedParams) error
	DeleteIdempotencyKey(ctx context.Context, db pgquery.DBTX, arg pgquery.DeleteIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db pgquery.DBTX, before pgtype.Timestamptz) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      pgquery.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db pgquery.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := pgquery.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	inserted, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return inserted == 1, nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	params := pgquery.ClaimExpiredIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	claimed, err := r.queries.ClaimExpiredIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}

	return claimed == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, responseBodyHash string, resultReservationID uuid.UUID) error {
	params := pgquery.UpdateIdempotencyKeyCompletedParams{
		Key:                 key,
		UserID:              userID,
		ResponseBodyHash:    pgconv.StringToPgtype(responseBodyHash),
		ResultReservationID: pgconv.UUIDToPgtype(resultReservationID),
	}

	err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID) error {
	err := r.queries.DeleteIdempotencyKey(ctx, tx, pgquery.DeleteIdempotencyKeyParams{Key: key, UserID: userID})
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx pgquery.DBTX, before time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
