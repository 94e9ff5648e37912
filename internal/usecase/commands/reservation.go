package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/discount"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/domain/vehicle"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/pkg/clock"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/queries"
	"car-rental-platform/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /api/reservations"
	defaultIdempotencyTTL     = 24 * time.Hour
)

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

type CreateReservationInput struct {
	VehicleID    uuid.UUID
	DateRange    daterange.DateRange
	Customer     CustomerInput
	DiscountCode *string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, principal user.Principal, input CreateReservationInput, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	UpdateStatus(ctx context.Context, principal user.Principal, id uuid.UUID, status string) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	locker             shared.VehicleLocker
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	idempotencyTTL     time.Duration
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locker shared.VehicleLocker,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
	idempotencyTTL time.Duration,
) ReservationCommands {
	if idempotencyTTL <= 0 {
		idempotencyTTL = defaultIdempotencyTTL
	}
	return &reservationCommandsImpl{
		uow:                uow,
		locker:             locker,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		clock:              clock,
		idempotencyTTL:     idempotencyTTL,
	}
}

func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	principal user.Principal,
	input CreateReservationInput,
	idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	if !principal.IsClient() {
		return nil, errs.ErrForbidden
	}
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	customer, err := reservation.NewCustomer(input.Customer.Name, input.Customer.Email, input.Customer.Phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	userID := principal.UserID
	requestHash := calculateRequestHash(input)

	replayed, err := c.claimIdempotencyKey(ctx, idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
	}

	view, err := c.book(ctx, userID, input, customer, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, idempotencyKey, userID)
		return nil, err
	}

	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// claimIdempotencyKey returns the stored reservation when the request was already completed,
// nil when this call now owns the key.
func (c *reservationCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	key, userID uuid.UUID,
	requestHash string,
) (*queries.ReservationView, error) {
	expiresAt := c.clock.Now().Add(c.idempotencyTTL)

	var claimed bool
	err := c.uow.WithDB(ctx, func(ctx context.Context, db pgquery.DBTX) error {
		var err error
		claimed, err = c.uow.Idempotency().TryInsert(ctx, db, key, userID, createReservationEndpoint, requestHash, expiresAt)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Released or purged between the insert and this read; the client can retry.
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	if !existing.ExpiresAt.After(c.clock.Now()) {
		err := c.uow.WithDB(ctx, func(ctx context.Context, db pgquery.DBTX) error {
			var err error
			claimed, err = c.uow.Idempotency().ClaimExpired(ctx, db, key, userID, requestHash, expiresAt)
			return err
		})
		if err != nil {
			return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if claimed {
			return nil, nil
		}
		return nil, errs.ErrIdempotencyInProgress
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, errs.Mark(errs.New("completed request missing result reservation ID"), errs.ErrIdempotencyCheckFailed)
		}
		// Use system-level access for idempotency replay
		return c.reservationQueries.GetByIDSystem(ctx, *existing.ResultReservationID)
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

func (c *reservationCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	// The request context may already be cancelled; releasing must still happen.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := c.uow.WithDB(ctx, func(ctx context.Context, db pgquery.DBTX) error {
		return c.uow.Idempotency().Release(ctx, db, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key.String(), "error", err.Error())
	}
}

func (c *reservationCommandsImpl) book(
	ctx context.Context,
	userID uuid.UUID,
	input CreateReservationInput,
	customer reservation.Customer,
	idempotencyKey uuid.UUID,
) (*queries.ReservationView, error) {
	v, err := c.loadVehicle(ctx, c.uow.CommandReads(), input.VehicleID)
	if err != nil {
		return nil, err
	}
	if !v.IsAvailable() {
		return nil, errs.ErrVehicleUnavailable
	}

	unlock, err := c.locker.Lock(ctx, v.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrVehicleBusy)
	}
	defer unlock()

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		// Row lock serialises concurrent bookings of this vehicle even without the distributed lock.
		if err := reads.LockVehicle(ctx, v.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		existing, err := reads.BlockingIntervals(ctx, v.ID(), input.DateRange)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		rule, err := c.loadDiscount(ctx, reads, v.AgencyID(), input.DiscountCode)
		if err != nil {
			return err
		}

		entity, quote, err := c.reservationFactory.CreateReservation(v, userID, customer, input.DateRange, existing, rule)
		if err != nil {
			return mapFactoryError(err)
		}
		if quote.DiscountRejection != discount.RejectionNone {
			slog.Info("discount not applied",
				"code", rule.Code().String(),
				"reason", quote.DiscountRejection.String(),
				"vehicle_id", v.ID().String())
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrDatesUnavailable)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.enqueueNotification(ctx, tx, "reservation_created", id, entity.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, calculateIDHash(id), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		reservationID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: Get the complete reservation view from read store
	view, err := c.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *reservationCommandsImpl) UpdateStatus(
	ctx context.Context,
	principal user.Principal,
	id uuid.UUID,
	status string,
) (*queries.ReservationView, error) {
	if principal.IsClient() {
		return nil, errs.ErrForbidden
	}

	next, err := reservation.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStatus)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Other agencies' reservations are reported as missing.
		if !principal.CanManageAgency(snap.AgencyID) {
			return errs.ErrReservationNotFound
		}

		entity, err := snap.ToDomain()
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := entity.TransitionTo(next, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := c.enqueueNotification(ctx, tx, "reservation_status_changed", entity.ID(), entity.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.reservationQueries.GetByIDSystem(ctx, id)
}

func (c *reservationCommandsImpl) loadVehicle(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*vehicle.Vehicle, error) {
	snap, err := reads.VehicleByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	v, err := snap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return v, nil
}

// loadDiscount returns nil when no code was given or the agency has no active discount with it.
func (c *reservationCommandsImpl) loadDiscount(ctx context.Context, reads shared.CommandReads, agencyID uuid.UUID, rawCode *string) (*discount.Rule, error) {
	if rawCode == nil || strings.TrimSpace(*rawCode) == "" {
		return nil, nil
	}

	snap, err := reads.ActiveDiscountByCode(ctx, agencyID, strings.TrimSpace(*rawCode))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	rule, err := snap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return rule, nil
}

func (c *reservationCommandsImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	topic string,
	reservationID uuid.UUID,
	status reservation.Status,
) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"status":         status.String(),
		"type":           topic,
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, c.clock.Now())
}

func mapFactoryError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrVehicleNotRentable):
		return errs.Mark(err, errs.ErrVehicleUnavailable)
	case errors.Is(err, reservation.ErrDatesUnavailable):
		return errs.Mark(err, errs.ErrDatesUnavailable)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

type requestFingerprint struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	DiscountCode  string    `json:"discount_code"`
}

func calculateRequestHash(input CreateReservationInput) string {
	fp := requestFingerprint{
		VehicleID:     input.VehicleID,
		StartDate:     input.DateRange.Start().String(),
		EndDate:       input.DateRange.End().String(),
		CustomerName:  strings.TrimSpace(input.Customer.Name),
		CustomerEmail: strings.TrimSpace(input.Customer.Email),
		CustomerPhone: strings.TrimSpace(input.Customer.Phone),
	}
	if input.DiscountCode != nil {
		fp.DiscountCode = strings.TrimSpace(*input.DiscountCode)
	}
	data, _ := json.Marshal(fp)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
