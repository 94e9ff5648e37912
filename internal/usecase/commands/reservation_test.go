//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/domain/reservation"
	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/pkg/clock"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/commands"
	"car-rental-platform/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	store     *fakeStore
	locker    *fakeLocker
	clock     *clock.MockClock
	commands  commands.ReservationCommands
	agencyID  uuid.UUID
	vehicleID uuid.UUID
	client    user.Principal
	manager   user.Principal
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.locker = &fakeLocker{}
	s.clock = clock.NewMockClock(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC))
	s.agencyID = uuid.New()
	s.vehicleID = uuid.New()

	s.store.vehicles[s.vehicleID] = &shared.VehicleSnapshot{
		ID:          s.vehicleID,
		AgencyID:    s.agencyID,
		Make:        "Toyota",
		Model:       "Corolla",
		DailyRate:   decimal.RequireFromString("50"),
		WeeklyRate:  decimal.RequireFromString("300"),
		MonthlyRate: decimal.RequireFromString("1200"),
		IsAvailable: true,
	}
	s.store.addDiscount(&shared.DiscountSnapshot{
		ID:        uuid.New(),
		AgencyID:  s.agencyID,
		Code:      "SUMMER10",
		Kind:      "percentage",
		Amount:    decimal.RequireFromString("10"),
		ValidFrom: civil.Date{Year: 2026, Month: time.January, Day: 1},
		ValidTo:   civil.Date{Year: 2026, Month: time.December, Day: 31},
		IsActive:  true,
	})

	s.client = user.Principal{UserID: uuid.New(), Role: user.RoleClient}
	s.manager = user.Principal{UserID: uuid.New(), Role: user.RoleManager, AgencyID: &s.agencyID}

	factory := reservation.NewFactory(s.clock, time.UTC, reservation.AvailabilityPolicy{})
	s.commands = commands.NewReservationCommands(
		s.store,
		s.locker,
		factory,
		&fakeReservationQueries{s: s.store},
		s.clock,
		time.Hour,
	)
}

func (s *ReservationCommandsTestSuite) input(start, end string, code *string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		VehicleID: s.vehicleID,
		DateRange: daterange.MustParse(start, end),
		Customer: commands.CustomerInput{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+44 20 7946 0000",
		},
		DiscountCode: code,
	}
}

func (s *ReservationCommandsTestSuite) seedReservation(start, end string, status reservation.Status) *reservation.Reservation {
	r := daterange.MustParse(start, end)
	res := reservation.Reconstruct(reservation.Snapshot{
		ID:        uuid.New(),
		AgencyID:  s.agencyID,
		VehicleID: s.vehicleID,
		UserID:    uuid.New(),
		Customer:  reservation.ReconstructCustomer("Existing", "existing@example.com", "123"),
		DateRange: r,
		TotalDays: r.Days(),
		Status:    status,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	})
	s.store.reservations[res.ID()] = res
	return res
}

func TestReservationCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_Success() {
	code := "SUMMER10"
	key := uuid.New()

	result, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-07-01", "2026-07-10", &code), key)

	s.Require().NoError(err)
	s.False(result.IsReplayed)
	view := result.Reservation
	s.Equal("pending", view.Status)
	s.Equal(10, view.TotalDays)
	s.Equal("428.57", view.BasePrice.StringFixed(2))
	s.Equal("42.86", view.DiscountAmount.StringFixed(2))
	s.Equal("385.71", view.TotalPrice.StringFixed(2))
	s.Require().NotNil(view.DiscountCode)
	s.Equal("SUMMER10", *view.DiscountCode)
	s.Equal(s.client.UserID, view.UserID)
	s.Equal(s.agencyID, view.AgencyID)

	rec := s.store.idempotency[key]
	s.Require().NotNil(rec)
	s.Equal(shared.IdempotencyStatusCompleted, rec.Status)
	s.Equal(view.ID, *rec.ResultReservationID)
	s.Equal([]string{"reservation_created"}, s.store.notifications)
	s.Equal(0, s.locker.locked[s.vehicleID], "lock must be released")
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_DiscountNotApplied() {
	testCases := []struct {
		name string
		code string
	}{
		{name: "unknown code", code: "NOPE"},
		{name: "blank code", code: "   "},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			code := tc.code
			result, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-08-01", "2026-08-03", &code), uuid.New())

			s.Require().NoError(err)
			s.Nil(result.Reservation.DiscountCode)
			s.True(result.Reservation.DiscountAmount.IsZero())
			s.Equal("150.00", result.Reservation.TotalPrice.StringFixed(2))
			delete(s.store.reservations, result.Reservation.ID)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_DiscountOutsideWindowIsNotStored() {
	s.store.addDiscount(&shared.DiscountSnapshot{
		ID:            uuid.New(),
		AgencyID:      s.agencyID,
		Code:          "LONGSTAY",
		Kind:          "fixed",
		Amount:        decimal.RequireFromString("100"),
		MinRentalDays: intPtr(14),
		ValidFrom:     civil.Date{Year: 2026, Month: time.January, Day: 1},
		ValidTo:       civil.Date{Year: 2026, Month: time.December, Day: 31},
		IsActive:      true,
	})
	code := "LONGSTAY"

	result, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-07-01", "2026-07-03", &code), uuid.New())

	s.Require().NoError(err)
	s.Nil(result.Reservation.DiscountCode)
	s.Equal("150.00", result.Reservation.TotalPrice.StringFixed(2))
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_IdempotentReplay() {
	key := uuid.New()
	in := s.input("2026-07-01", "2026-07-03", nil)

	first, err := s.commands.CreateReservation(context.Background(), s.client, in, key)
	s.Require().NoError(err)

	second, err := s.commands.CreateReservation(context.Background(), s.client, in, key)
	s.Require().NoError(err)

	s.True(second.IsReplayed)
	s.Equal(first.Reservation.ID, second.Reservation.ID)
	s.Len(s.store.reservations, 1)
	s.Len(s.store.notifications, 1)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_KeyReusedWithDifferentBody() {
	key := uuid.New()
	_, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-07-01", "2026-07-03", nil), key)
	s.Require().NoError(err)

	_, err = s.commands.CreateReservation(context.Background(), s.client, s.input("2026-09-01", "2026-09-03", nil), key)

	s.Truef(errs.Is(err, errs.ErrIdempotencyKeyReused), "got %v", err)
	s.Len(s.store.reservations, 1)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_KeyInProgress() {
	key := uuid.New()
	in := s.input("2026-07-01", "2026-07-03", nil)
	s.store.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      s.client.UserID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: mustHash(s, in, key),
		ExpiresAt:   s.clock.Now().Add(time.Hour),
	}

	_, err := s.commands.CreateReservation(context.Background(), s.client, in, key)

	s.Truef(errs.Is(err, errs.ErrIdempotencyInProgress), "got %v", err)
	s.Empty(s.store.reservations)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_ExpiredKeyIsReclaimed() {
	key := uuid.New()
	s.store.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      s.client.UserID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: "stale",
		ExpiresAt:   s.clock.Now().Add(-time.Minute),
	}

	result, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-07-01", "2026-07-03", nil), key)

	s.Require().NoError(err)
	s.False(result.IsReplayed)
	s.Equal(shared.IdempotencyStatusCompleted, s.store.idempotency[key].Status)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_Errors() {
	testCases := []struct {
		name        string
		setup       func()
		principal   func() user.Principal
		input       func() commands.CreateReservationInput
		key         uuid.UUID
		expectedErr error
	}{
		{
			name:        "error: manager cannot book",
			principal:   func() user.Principal { return s.manager },
			key:         uuid.New(),
			expectedErr: errs.ErrForbidden,
		},
		{
			name:        "error: missing idempotency key",
			key:         uuid.Nil,
			expectedErr: errs.ErrIdempotencyKeyRequired,
		},
		{
			name: "error: invalid customer email",
			input: func() commands.CreateReservationInput {
				in := s.input("2026-07-01", "2026-07-03", nil)
				in.Customer.Email = "not-an-email"
				return in
			},
			key:         uuid.New(),
			expectedErr: errs.ErrDomainValidation,
		},
		{
			name: "error: vehicle not found",
			input: func() commands.CreateReservationInput {
				in := s.input("2026-07-01", "2026-07-03", nil)
				in.VehicleID = uuid.New()
				return in
			},
			key:         uuid.New(),
			expectedErr: errs.ErrVehicleNotFound,
		},
		{
			name:        "error: vehicle flagged unavailable",
			setup:       func() { s.store.vehicles[s.vehicleID].IsAvailable = false },
			key:         uuid.New(),
			expectedErr: errs.ErrVehicleUnavailable,
		},
		{
			name:        "error: overlapping confirmed reservation",
			setup:       func() { s.seedReservation("2026-07-02", "2026-07-05", reservation.StatusConfirmed) },
			key:         uuid.New(),
			expectedErr: errs.ErrDatesUnavailable,
		},
		{
			name:        "error: touching boundary day",
			setup:       func() { s.seedReservation("2026-07-03", "2026-07-06", reservation.StatusPending) },
			key:         uuid.New(),
			expectedErr: errs.ErrDatesUnavailable,
		},
		{
			name:        "error: vehicle lock held elsewhere",
			setup:       func() { s.locker.err = errors.New("lock held") },
			key:         uuid.New(),
			expectedErr: errs.ErrVehicleBusy,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setup != nil {
				tc.setup()
			}
			principal := s.client
			if tc.principal != nil {
				principal = tc.principal()
			}
			in := s.input("2026-07-01", "2026-07-03", nil)
			if tc.input != nil {
				in = tc.input()
			}
			before := len(s.store.reservations)

			result, err := s.commands.CreateReservation(context.Background(), principal, in, tc.key)

			s.Nil(result)
			s.Truef(errs.Is(err, tc.expectedErr), "got %v", err)
			s.Len(s.store.reservations, before)
			s.NotContains(s.store.idempotency, tc.key, "failed request must release its key")
		})
	}
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_CancelledReservationDoesNotBlock() {
	s.seedReservation("2026-07-01", "2026-07-10", reservation.StatusCancelled)
	s.seedReservation("2026-07-01", "2026-07-10", reservation.StatusCompleted)

	result, err := s.commands.CreateReservation(context.Background(), s.client, s.input("2026-07-02", "2026-07-04", nil), uuid.New())

	s.Require().NoError(err)
	s.Equal("pending", result.Reservation.Status)
}

func (s *ReservationCommandsTestSuite) TestUpdateStatus() {
	otherAgency := uuid.New()

	testCases := []struct {
		name           string
		initial        reservation.Status
		principal      func() user.Principal
		status         string
		missing        bool
		expectedErr    error
		expectedStatus string
	}{
		{
			name:           "success: manager confirms pending",
			initial:        reservation.StatusPending,
			principal:      func() user.Principal { return s.manager },
			status:         "confirmed",
			expectedStatus: "confirmed",
		},
		{
			name:           "success: admin completes confirmed",
			initial:        reservation.StatusConfirmed,
			principal:      func() user.Principal { return user.Principal{UserID: uuid.New(), Role: user.RoleAdmin} },
			status:         "completed",
			expectedStatus: "completed",
		},
		{
			name:           "success: manager cancels confirmed",
			initial:        reservation.StatusConfirmed,
			principal:      func() user.Principal { return s.manager },
			status:         "cancelled",
			expectedStatus: "cancelled",
		},
		{
			name:        "error: client cannot change status",
			initial:     reservation.StatusPending,
			principal:   func() user.Principal { return s.client },
			status:      "cancelled",
			expectedErr: errs.ErrForbidden,
		},
		{
			name:    "error: manager of another agency",
			initial: reservation.StatusPending,
			principal: func() user.Principal {
				return user.Principal{UserID: uuid.New(), Role: user.RoleManager, AgencyID: &otherAgency}
			},
			status:      "confirmed",
			expectedErr: errs.ErrReservationNotFound,
		},
		{
			name:        "error: completed is terminal",
			initial:     reservation.StatusCompleted,
			principal:   func() user.Principal { return s.manager },
			status:      "pending",
			expectedErr: errs.ErrInvalidTransition,
		},
		{
			name:        "error: pending cannot complete",
			initial:     reservation.StatusPending,
			principal:   func() user.Principal { return s.manager },
			status:      "completed",
			expectedErr: errs.ErrInvalidTransition,
		},
		{
			name:        "error: unknown status",
			initial:     reservation.StatusPending,
			principal:   func() user.Principal { return s.manager },
			status:      "archived",
			expectedErr: errs.ErrInvalidStatus,
		},
		{
			name:        "error: reservation not found",
			initial:     reservation.StatusPending,
			principal:   func() user.Principal { return s.manager },
			status:      "confirmed",
			missing:     true,
			expectedErr: errs.ErrReservationNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			res := s.seedReservation("2026-07-01", "2026-07-03", tc.initial)
			id := res.ID()
			if tc.missing {
				id = uuid.New()
			}

			view, err := s.commands.UpdateStatus(context.Background(), tc.principal(), id, tc.status)

			if tc.expectedErr != nil {
				s.Truef(errs.Is(err, tc.expectedErr), "got %v", err)
				s.Nil(view)
				s.Equal(tc.initial, s.store.reservations[res.ID()].Status())
				s.Empty(s.store.notifications)
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.expectedStatus, view.Status)
			s.Equal([]string{"reservation_status_changed"}, s.store.notifications)
		})
	}
}

func TestMaintenanceCommands(t *testing.T) {
	store := newFakeStore()
	clk := clock.NewMockClock(time.Date(2026, 7, 10, 0, 30, 0, 0, time.UTC))
	vehicleID := uuid.New()

	seed := func(start, end string, status reservation.Status) uuid.UUID {
		r := daterange.MustParse(start, end)
		res := reservation.Reconstruct(reservation.Snapshot{
			ID:        uuid.New(),
			VehicleID: vehicleID,
			DateRange: r,
			TotalDays: r.Days(),
			Status:    status,
		})
		store.reservations[res.ID()] = res
		return res.ID()
	}

	finished := seed("2026-07-01", "2026-07-09", reservation.StatusConfirmed)
	ongoing := seed("2026-07-05", "2026-07-10", reservation.StatusConfirmed)
	pending := seed("2026-07-01", "2026-07-02", reservation.StatusPending)

	store.idempotency[uuid.New()] = &shared.IdempotencyRecord{ExpiresAt: clk.Now().Add(-time.Hour)}
	store.idempotency[uuid.New()] = &shared.IdempotencyRecord{ExpiresAt: clk.Now().Add(time.Hour)}

	m := commands.NewMaintenanceCommands(store, clk, time.UTC)

	t.Run("success: completes confirmed reservations that ended before today", func(t *testing.T) {
		n, err := m.CompleteFinishedReservations(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, reservation.StatusCompleted, store.reservations[finished].Status())
		assert.Equal(t, reservation.StatusConfirmed, store.reservations[ongoing].Status())
		assert.Equal(t, reservation.StatusPending, store.reservations[pending].Status())
	})

	t.Run("success: purges expired idempotency keys", func(t *testing.T) {
		n, err := m.PurgeExpiredIdempotencyKeys(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Len(t, store.idempotency, 1)
	})
}

func intPtr(v int) *int { return &v }

// mustHash obtains the stored request hash by running the request once on a scratch store.
func mustHash(s *ReservationCommandsTestSuite, in commands.CreateReservationInput, key uuid.UUID) string {
	scratch := newFakeStore()
	scratch.vehicles = s.store.vehicles
	cmds := commands.NewReservationCommands(
		scratch,
		&fakeLocker{},
		reservation.NewFactory(s.clock, time.UTC, reservation.AvailabilityPolicy{}),
		&fakeReservationQueries{s: scratch},
		s.clock,
		time.Hour,
	)
	_, err := cmds.CreateReservation(context.Background(), s.client, in, key)
	s.Require().NoError(err)
	return scratch.idempotency[key].RequestHash
}
