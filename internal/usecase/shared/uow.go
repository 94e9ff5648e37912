package shared

import (
	"context"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra/pgquery"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single statement operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db pgquery.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
	// Idempotency: key bookkeeping that must survive a rolled back booking transaction
	Idempotency() IdempotencyRepository
}

type Tx interface {
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() pgquery.DBTX
}

type CommandReads interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	// LockVehicle takes a row lock; only meaningful inside Within.
	LockVehicle(ctx context.Context, id uuid.UUID) error
	ActiveDiscountByCode(ctx context.Context, agencyID uuid.UUID, code string) (*DiscountSnapshot, error)
	BlockingIntervals(ctx context.Context, vehicleID uuid.UUID, r daterange.DateRange) ([]reservation.Interval, error)
	// ReservationForUpdate locks the row inside Within.
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx pgquery.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx pgquery.DBTX, res *reservation.Reservation) error
	CompleteFinished(ctx context.Context, tx pgquery.DBTX, before civil.Date, now time.Time) (int64, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether this call claimed the key.
	TryInsert(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	Release(ctx context.Context, tx pgquery.DBTX, key, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx pgquery.DBTX, before time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgquery.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

// VehicleLocker serialises bookings of one vehicle across service instances.
type VehicleLocker interface {
	Lock(ctx context.Context, vehicleID uuid.UUID) (unlock func(), err error)
}
