package queries

import (
	"context"
	"time"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// ReservationFilter is what the caller asked for; scoping by principal is applied on top.
type ReservationFilter struct {
	AgencyID  *uuid.UUID
	VehicleID *uuid.UUID
	Status    *string
}

// ReservationStoreFilter is the effective filter sent to storage.
type ReservationStoreFilter struct {
	UserID    *uuid.UUID
	AgencyID  *uuid.UUID
	VehicleID *uuid.UUID
	Status    *string
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationStoreFilter, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, principal user.Principal, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips access checks; used for read-after-write and idempotent replay.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, principal user.Principal, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, principal user.Principal, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	// Hide existence from callers who may not see it.
	if !principal.CanView(view.UserID, view.AgencyID) {
		return nil, errs.ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, principal user.Principal, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	storeFilter, err := scopeFilter(principal, filter)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	var afterCreatedAt *time.Time
	var afterID *uuid.UUID
	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, ErrInvalidCursor)
		}
		afterCreatedAt, afterID = &lastCreatedAt, &lastID
	}

	rows, err := q.store.List(ctx, storeFilter, afterCreatedAt, afterID, int32(limit+1))
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func scopeFilter(principal user.Principal, filter ReservationFilter) (ReservationStoreFilter, error) {
	out := ReservationStoreFilter{
		AgencyID:  filter.AgencyID,
		VehicleID: filter.VehicleID,
		Status:    filter.Status,
	}

	switch principal.Role {
	case user.RoleAdmin:
	case user.RoleManager:
		if filter.AgencyID != nil && !principal.CanManageAgency(*filter.AgencyID) {
			return ReservationStoreFilter{}, errs.ErrForbidden
		}
		out.AgencyID = principal.AgencyID
	case user.RoleClient:
		userID := principal.UserID
		out.UserID = &userID
	default:
		return ReservationStoreFilter{}, errs.ErrForbidden
	}

	return out, nil
}
