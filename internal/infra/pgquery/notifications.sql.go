package pgquery

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `-- name: CreateNotificationJob :exec
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)
`

type CreateNotificationJobParams struct {
	Kind    string             `json:"kind"`
	Topic   string             `json:"topic"`
	Payload []byte             `json:"payload"`
	RunAt   pgtype.Timestamptz `json:"run_at"`
	Status  string             `json:"status"`
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob,
		arg.Kind,
		arg.Topic,
		arg.Payload,
		arg.RunAt,
		arg.Status,
	)
	return err
}
