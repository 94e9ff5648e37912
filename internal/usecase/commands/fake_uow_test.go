//go:build unit

package commands_test

import (
	"context"
	"maps"
	"sync"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/infra"
	"car-rental-platform/internal/infra/pgquery"
	"car-rental-platform/internal/usecase/queries"
	"car-rental-platform/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeStore is an in-memory UnitOfWork. Within restores its state when fn fails.
type fakeStore struct {
	mu sync.Mutex

	vehicles      map[uuid.UUID]*shared.VehicleSnapshot
	discounts     map[string]*shared.DiscountSnapshot
	reservations  map[uuid.UUID]*reservation.Reservation
	idempotency   map[uuid.UUID]*shared.IdempotencyRecord
	notifications []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles:     map[uuid.UUID]*shared.VehicleSnapshot{},
		discounts:    map[string]*shared.DiscountSnapshot{},
		reservations: map[uuid.UUID]*reservation.Reservation{},
		idempotency:  map[uuid.UUID]*shared.IdempotencyRecord{},
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows)
}

func discountKey(agencyID uuid.UUID, code string) string {
	return agencyID.String() + "/" + code
}

func (s *fakeStore) addDiscount(d *shared.DiscountSnapshot) {
	s.discounts[discountKey(d.AgencyID, d.Code)] = d
}

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	reservations := make(map[uuid.UUID]*reservation.Reservation, len(s.reservations))
	for id, r := range s.reservations {
		cp := *r
		reservations[id] = &cp
	}
	idem := maps.Clone(s.idempotency)
	notifications := len(s.notifications)
	s.mu.Unlock()

	if err := fn(ctx, &fakeTx{s}); err != nil {
		s.mu.Lock()
		s.reservations = reservations
		s.idempotency = idem
		s.notifications = s.notifications[:notifications]
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) WithDB(ctx context.Context, fn func(ctx context.Context, db pgquery.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *fakeStore) CommandReads() shared.CommandReads         { return &fakeReads{s} }
func (s *fakeStore) Idempotency() shared.IdempotencyRepository { return &fakeIdempotency{s} }

type fakeTx struct{ s *fakeStore }

func (t *fakeTx) Reservations() shared.ReservationRepository   { return &fakeReservations{t.s} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return &fakeIdempotency{t.s} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotifications{t.s} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &fakeReads{t.s} }
func (t *fakeTx) DB() pgquery.DBTX                             { return nil }

type fakeReads struct{ s *fakeStore }

func (r *fakeReads) VehicleByID(_ context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, notFound("vehicle not found")
	}
	return v, nil
}

func (r *fakeReads) LockVehicle(ctx context.Context, id uuid.UUID) error {
	_, err := r.VehicleByID(ctx, id)
	return err
}

func (r *fakeReads) ActiveDiscountByCode(_ context.Context, agencyID uuid.UUID, code string) (*shared.DiscountSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.discounts[discountKey(agencyID, code)]
	if !ok || !d.IsActive {
		return nil, notFound("discount not found")
	}
	return d, nil
}

func (r *fakeReads) BlockingIntervals(_ context.Context, vehicleID uuid.UUID, window daterange.DateRange) ([]reservation.Interval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []reservation.Interval
	for _, res := range r.s.reservations {
		if res.VehicleID() != vehicleID || !res.Status().Blocks() {
			continue
		}
		out = append(out, res.Interval())
	}
	return out, nil
}

func (r *fakeReads) ReservationForUpdate(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return toSnapshot(res), nil
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.idempotency[key]
	if !ok || rec.UserID != userID {
		return nil, notFound("idempotency key not found")
	}
	cp := *rec
	return &cp, nil
}

type fakeReservations struct{ s *fakeStore }

func (f *fakeReservations) Create(_ context.Context, _ pgquery.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.reservations[res.ID()] = res
	return res.ID(), nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, _ pgquery.DBTX, res *reservation.Reservation) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reservations[res.ID()]; !ok {
		return notFound("reservation not found")
	}
	f.s.reservations[res.ID()] = res
	return nil
}

func (f *fakeReservations) CompleteFinished(_ context.Context, _ pgquery.DBTX, before civil.Date, now time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, res := range f.s.reservations {
		if res.Status() == reservation.StatusConfirmed && res.DateRange().End().Before(before) {
			if err := res.TransitionTo(reservation.StatusCompleted, now); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

type fakeIdempotency struct{ s *fakeStore }

func (f *fakeIdempotency) TryInsert(_ context.Context, _ pgquery.DBTX, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.idempotency[key]; ok {
		return false, nil
	}
	f.s.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (f *fakeIdempotency) ClaimExpired(_ context.Context, _ pgquery.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rec, ok := f.s.idempotency[key]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	f.s.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (f *fakeIdempotency) UpdateStatusCompleted(_ context.Context, _ pgquery.DBTX, key, userID uuid.UUID, _ string, reservationID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	rec, ok := f.s.idempotency[key]
	if !ok || rec.UserID != userID {
		return notFound("idempotency key not found")
	}
	cp := *rec
	cp.Status = shared.IdempotencyStatusCompleted
	cp.ResultReservationID = &reservationID
	f.s.idempotency[key] = &cp
	return nil
}

func (f *fakeIdempotency) Release(_ context.Context, _ pgquery.DBTX, key, userID uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if rec, ok := f.s.idempotency[key]; ok && rec.UserID == userID && rec.Status == shared.IdempotencyStatusProcessing {
		delete(f.s.idempotency, key)
	}
	return nil
}

func (f *fakeIdempotency) DeleteExpired(_ context.Context, _ pgquery.DBTX, before time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for key, rec := range f.s.idempotency {
		if rec.ExpiresAt.Before(before) {
			delete(f.s.idempotency, key)
			n++
		}
	}
	return n, nil
}

type fakeNotifications struct{ s *fakeStore }

func (f *fakeNotifications) CreateJob(_ context.Context, _ pgquery.DBTX, _, topic string, _ []byte, _ time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.notifications = append(f.s.notifications, topic)
	return nil
}

// fakeReservationQueries serves read-after-write from the same store.
type fakeReservationQueries struct {
	queries.ReservationQueries
	s *fakeStore
}

func (q *fakeReservationQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	res, ok := q.s.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	snap := toSnapshot(res)
	return &queries.ReservationView{
		ID:             snap.ID,
		AgencyID:       snap.AgencyID,
		VehicleID:      snap.VehicleID,
		UserID:         snap.UserID,
		CustomerName:   snap.CustomerName,
		CustomerEmail:  snap.CustomerEmail,
		CustomerPhone:  snap.CustomerPhone,
		StartDate:      snap.StartDate,
		EndDate:        snap.EndDate,
		TotalDays:      snap.TotalDays,
		BasePrice:      snap.BasePrice,
		DiscountCode:   snap.DiscountCode,
		DiscountAmount: snap.DiscountAmount,
		TotalPrice:     snap.TotalPrice,
		Status:         snap.Status,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
	}, nil
}

func toSnapshot(res *reservation.Reservation) *shared.ReservationSnapshot {
	var code *string
	if res.DiscountCode() != nil {
		c := res.DiscountCode().String()
		code = &c
	}
	return &shared.ReservationSnapshot{
		ID:             res.ID(),
		AgencyID:       res.AgencyID(),
		VehicleID:      res.VehicleID(),
		UserID:         res.UserID(),
		CustomerName:   res.Customer().Name(),
		CustomerEmail:  res.Customer().Email(),
		CustomerPhone:  res.Customer().Phone(),
		StartDate:      res.DateRange().Start(),
		EndDate:        res.DateRange().End(),
		TotalDays:      res.TotalDays(),
		BasePrice:      res.BasePrice(),
		DiscountCode:   code,
		DiscountAmount: res.DiscountAmount(),
		TotalPrice:     res.TotalPrice(),
		Status:         res.Status().String(),
		CreatedAt:      res.CreatedAt(),
		UpdatedAt:      res.UpdatedAt(),
	}
}

type fakeLocker struct {
	err    error
	locked map[uuid.UUID]int
}

func (l *fakeLocker) Lock(_ context.Context, vehicleID uuid.UUID) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.locked == nil {
		l.locked = map[uuid.UUID]int{}
	}
	l.locked[vehicleID]++
	return func() { l.locked[vehicleID]-- }, nil
}
