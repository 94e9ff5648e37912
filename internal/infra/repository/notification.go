package repository

import (
	"context"
	"time"

	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"

	"github.com/jackc/pgx/v5/pgtype"
)

const notificationStatusQueued = "queued"

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db pgquery.DBTX, arg pgquery.CreateNotificationJobParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      pgquery.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db pgquery.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

// CreateJob enqueues an outbox row; delivery is handled by a separate worker.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx pgquery.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := pgquery.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgtype.Timestamptz{Time: runAt, Valid: true},
		Status:  notificationStatusQueued,
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}
