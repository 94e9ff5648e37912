package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/infra/readstore"
	"car-rental-platform/internal/infra/repository"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/pkg/pgconv"
	"car-rental-platform/internal/usecase/queries"
	"car-rental-platform/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *pgquery.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgquery.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted is enough because bookings lock the vehicle row before reading intervals
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db pgquery.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

func (u *PostgresUoW) Idempotency() shared.IdempotencyRepository {
	return repository.NewIdempotencyRepository(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgquery.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo  shared.ReservationRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() pgquery.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx pgquery.DBTX

	// Lazy-initialized readstores
	vehicleStore     *readstore.VehicleReadStore
	discountStore    *readstore.DiscountReadStore
	reservationStore *readstore.ReservationReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) VehicleByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	if r.vehicleStore == nil {
		r.vehicleStore = readstore.NewVehicleReadStore(r.uow.q, r.dbtx)
	}

	v, err := r.vehicleStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.VehicleSnapshot{
		ID:          v.ID,
		AgencyID:    v.AgencyID,
		Make:        v.Make,
		Model:       v.Model,
		DailyRate:   v.DailyRate,
		WeeklyRate:  v.WeeklyRate,
		MonthlyRate: v.MonthlyRate,
		IsAvailable: v.IsAvailable,
	}
	return snapshot, nil
}

func (r *commandReads) LockVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := r.uow.q.LockVehicleForUpdate(ctx, r.dbtx, id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock vehicle", err)
	}
	return nil
}

func (r *commandReads) ActiveDiscountByCode(ctx context.Context, agencyID uuid.UUID, code string) (*shared.DiscountSnapshot, error) {
	if r.discountStore == nil {
		r.discountStore = readstore.NewDiscountReadStore(r.uow.q, r.dbtx)
	}

	d, err := r.discountStore.FindActiveByCode(ctx, agencyID, code)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.DiscountSnapshot{
		ID:            d.ID,
		AgencyID:      d.AgencyID,
		Code:          d.Code,
		Kind:          d.Kind,
		Amount:        d.Amount,
		MinRentalDays: d.MinRentalDays,
		MaxRentalDays: d.MaxRentalDays,
		ValidFrom:     d.ValidFrom,
		ValidTo:       d.ValidTo,
		IsActive:      d.IsActive,
	}
	return snapshot, nil
}

func (r *commandReads) BlockingIntervals(ctx context.Context, vehicleID uuid.UUID, dr daterange.DateRange) ([]reservation.Interval, error) {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.uow.q, r.dbtx)
	}

	views, err := r.reservationStore.BlockingIntervals(ctx, vehicleID, dr.Start(), dr.End())
	if err != nil {
		return nil, err
	}

	return toIntervals(views)
}

func (r *commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row, err := r.uow.q.GetReservationForUpdate(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	v, err := readstore.ToReservationView(row, "", "")
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation row", err, infra.KindDBFailure)
	}

	snapshot := &shared.ReservationSnapshot{
		ID:             v.ID,
		AgencyID:       v.AgencyID,
		VehicleID:      v.VehicleID,
		UserID:         v.UserID,
		CustomerName:   v.CustomerName,
		CustomerEmail:  v.CustomerEmail,
		CustomerPhone:  v.CustomerPhone,
		StartDate:      v.StartDate,
		EndDate:        v.EndDate,
		TotalDays:      v.TotalDays,
		BasePrice:      v.BasePrice,
		DiscountCode:   v.DiscountCode,
		DiscountAmount: v.DiscountAmount,
		TotalPrice:     v.TotalPrice,
		Status:         v.Status,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	return snapshot, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.uow.q)
	}

	record, err := r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.IdempotencyRecord{
		Key:                 record.Key,
		UserID:              record.UserID,
		Status:              record.Status,
		RequestHash:         record.RequestHash,
		ResultReservationID: record.ResultReservationID,
		ExpiresAt:           record.ExpiresAt,
	}
	return snapshot, nil
}

func toIntervals(views []queries.IntervalView) ([]reservation.Interval, error) {
	out := make([]reservation.Interval, 0, len(views))
	for _, v := range views {
		dr, err := daterange.New(v.StartDate, v.EndDate)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid range", err, infra.KindDBFailure)
		}
		status, err := reservation.NewStatus(v.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid status", err, infra.KindDBFailure)
		}
		out = append(out, reservation.Interval{Range: dr, Status: status})
	}
	return out, nil
}
