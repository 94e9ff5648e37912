//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/infra/repository"
	"car-rental-platform/internal/pkg/pgconv"
	repositorymock "car-rental-platform/tests/mock/repository"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

func pendingReservation(code *discount.Code) *reservation.Reservation {
	return reservation.Reconstruct(reservation.Snapshot{
		ID:             uuid.New(),
		AgencyID:       uuid.New(),
		VehicleID:      uuid.New(),
		UserID:         uuid.New(),
		Customer:       reservation.ReconstructCustomer("Jane Driver", "jane@example.com", "+1-555-0100"),
		DateRange:      daterange.MustParse("2026-07-01", "2026-07-03"),
		TotalDays:      3,
		BasePrice:      decimal.RequireFromString("150.00"),
		DiscountCode:   code,
		DiscountAmount: decimal.RequireFromString("15.00"),
		TotalPrice:     decimal.RequireFromString("135.00"),
		Status:         reservation.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func TestReservationRepository_Create(t *testing.T) {
	code := discount.Code("SUMMER10")

	tests := []struct {
		name     string
		code     *discount.Code
		wantCode pgtype.Text
		queryErr error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "with discount code", code: &code, wantCode: pgtype.Text{String: "SUMMER10", Valid: true}},
		{name: "without discount code", wantCode: pgtype.Text{}},
		{name: "overlapping row rejected by the exclusion constraint", queryErr: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "unknown vehicle", queryErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockReservationWriteQueries(ctrl)
			res := pendingReservation(tt.code)

			q.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgquery.DBTX, arg pgquery.CreateReservationParams) (uuid.UUID, error) {
					assert.Equal(t, res.ID(), arg.ID)
					assert.Equal(t, pgconv.DateToPgtype(civil.Date{Year: 2026, Month: time.July, Day: 1}), arg.StartDate)
					assert.Equal(t, pgconv.DateToPgtype(civil.Date{Year: 2026, Month: time.July, Day: 3}), arg.EndDate)
					assert.Equal(t, int32(3), arg.TotalDays)
					assert.Equal(t, "pending", arg.Status)
					assert.Equal(t, tt.wantCode, arg.DiscountCode)

					total, err := pgconv.DecimalFromNumeric(arg.TotalPrice)
					require.NoError(t, err)
					assert.True(t, total.Equal(decimal.NewFromInt(135)), "total %s", total)

					if tt.queryErr != nil {
						return uuid.Nil, tt.queryErr
					}
					return arg.ID, nil
				})

			id, err := repository.NewReservationRepository(q, nil).Create(context.Background(), nil, res)

			if tt.wantKind != "" {
				assert.Equal(t, uuid.Nil, id)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, res.ID(), id)
		})
	}
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("writes status and timestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockReservationWriteQueries(ctrl)
		res := pendingReservation(nil)
		require.NoError(t, res.TransitionTo(reservation.StatusConfirmed, later))

		q.EXPECT().UpdateReservationStatus(gomock.Any(), gomock.Any(), pgquery.UpdateReservationStatusParams{
			ID:        res.ID(),
			Status:    "confirmed",
			UpdatedAt: pgconv.TimeToPgtype(later),
		}).Return(nil)

		assert.NoError(t, repository.NewReservationRepository(q, nil).UpdateStatus(context.Background(), nil, res))
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockReservationWriteQueries(ctrl)
		q.EXPECT().UpdateReservationStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)

		err := repository.NewReservationRepository(q, nil).UpdateStatus(context.Background(), nil, pendingReservation(nil))

		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})
}

func TestReservationRepository_CompleteFinished(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockReservationWriteQueries(ctrl)
	before := civil.Date{Year: 2026, Month: time.June, Day: 1}

	q.EXPECT().CompleteFinishedReservations(gomock.Any(), gomock.Any(), pgquery.CompleteFinishedReservationsParams{
		Before:    pgconv.DateToPgtype(before),
		UpdatedAt: pgconv.TimeToPgtype(now),
	}).Return(int64(4), nil)

	count, err := repository.NewReservationRepository(q, nil).CompleteFinished(context.Background(), nil, before, now)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestIdempotencyRepository(t *testing.T) {
	key := uuid.New()
	userID := uuid.New()
	expiresAt := now.Add(24 * time.Hour)

	t.Run("TryInsert reports whether this call claimed the key", func(t *testing.T) {
		for _, affected := range []int64{0, 1} {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
			q.EXPECT().TryInsertIdempotencyKey(gomock.Any(), gomock.Any(), pgquery.TryInsertIdempotencyKeyParams{
				Key:         key,
				UserID:      userID,
				Endpoint:    "POST /api/reservations",
				RequestHash: "abc",
				ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
			}).Return(affected, nil)

			claimed, err := repository.NewIdempotencyRepository(q, nil).
				TryInsert(context.Background(), nil, key, userID, "POST /api/reservations", "abc", expiresAt)

			require.NoError(t, err)
			assert.Equal(t, affected == 1, claimed)
		}
	})

	t.Run("ClaimExpired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		q.EXPECT().ClaimExpiredIdempotencyKey(gomock.Any(), gomock.Any(), pgquery.ClaimExpiredIdempotencyKeyParams{
			Key:         key,
			UserID:      userID,
			RequestHash: "abc",
			ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		}).Return(int64(1), nil)

		claimed, err := repository.NewIdempotencyRepository(q, nil).
			ClaimExpired(context.Background(), nil, key, userID, "abc", expiresAt)

		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("UpdateStatusCompleted stores the result reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		resID := uuid.New()
		q.EXPECT().UpdateIdempotencyKeyCompleted(gomock.Any(), gomock.Any(), pgquery.UpdateIdempotencyKeyCompletedParams{
			Key:                 key,
			UserID:              userID,
			ResponseBodyHash:    pgconv.StringToPgtype("def"),
			ResultReservationID: pgconv.UUIDToPgtype(resID),
		}).Return(nil)

		err := repository.NewIdempotencyRepository(q, nil).
			UpdateStatusCompleted(context.Background(), nil, key, userID, "def", resID)

		assert.NoError(t, err)
	})

	t.Run("Release failure is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		q.EXPECT().DeleteIdempotencyKey(gomock.Any(), gomock.Any(), pgquery.DeleteIdempotencyKeyParams{Key: key, UserID: userID}).
			Return(assert.AnError)

		err := repository.NewIdempotencyRepository(q, nil).Release(context.Background(), nil, key, userID)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		q.EXPECT().DeleteExpiredIdempotencyKeys(gomock.Any(), gomock.Any(), pgconv.TimeToPgtype(now)).Return(int64(2), nil)

		count, err := repository.NewIdempotencyRepository(q, nil).DeleteExpired(context.Background(), nil, now)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestNotificationRepository_CreateJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockNotificationWriteQueries(ctrl)
	payload := []byte(`{"reservation_id":"x"}`)

	q.EXPECT().CreateNotificationJob(gomock.Any(), gomock.Any(), pgquery.CreateNotificationJobParams{
		Kind:    "email",
		Topic:   "reservation.created",
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(now),
		Status:  "queued",
	}).Return(nil)

	err := repository.NewNotificationRepository(q, nil).
		CreateJob(context.Background(), nil, "email", "reservation.created", payload, now)

	assert.NoError(t, err)
}
