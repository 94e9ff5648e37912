//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/handler/api"
	"car-rental-platform/internal/handler/middleware"
	resdto "car-rental-platform/internal/handler/dto/response"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/commands"
	"car-rental-platform/internal/usecase/queries"
	"car-rental-platform/tests/common/builder"
	"car-rental-platform/tests/common/httptest"
	"car-rental-platform/tests/common/testutil"
	commandsmock "car-rental-platform/tests/mock/commands"
	queriesmock "car-rental-platform/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const reservationsURL = "/reservations"

type ReservationHandlerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	principal    user.Principal
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.principal = builder.ClientPrincipal()
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// router authenticates every request as p; a zero principal leaves the context empty.
func (s *ReservationHandlerTestSuite) router(p user.Principal) *gin.Engine {
	r := gin.New()
	auth := func(c *gin.Context) { c.Next() }
	if p.UserID != uuid.Nil {
		auth = middleware.SetPrincipalForTest(p)
	}
	r.POST(reservationsURL, auth, s.handler.Create)
	r.GET(reservationsURL, auth, s.handler.List)
	r.GET(reservationsURL+"/:id", auth, s.handler.Get)
	r.PATCH(reservationsURL+"/:id/status", auth, s.handler.UpdateStatus)
	return r
}

func idemHeader(key uuid.UUID) map[string]string {
	return map[string]string{"Idempotency-Key": key.String()}
}

type testCaseReservation struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()
	key := uuid.New()

	s.Run("success: returns 201 with the priced reservation", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), s.principal, gomock.Any(), key).
			DoAndReturn(func(_ any, _ user.Principal, in commands.CreateReservationInput, _ uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Equal(b.VehicleID, in.VehicleID)
				s.Equal(3, in.DateRange.Days())
				s.Nil(in.DiscountCode)
				return &commands.CreateReservationResult{Reservation: view}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, reqBody, "", idemHeader(key))

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		want := resdto.FromReservationView(view)
		if diff := cmp.Diff(want.ID, body.ID); diff != "" {
			s.Failf("id mismatch", "(-want +got):\n%s", diff)
		}
		s.Equal("150.00", body.BasePrice)
		s.Equal("0.00", body.DiscountAmount)
		s.Equal("150.00", body.TotalPrice)
		s.Equal("2026-07-01", body.StartDate)
		s.Equal("pending", body.Status)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: replay returns 200 with Idempotent-Replayed", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), s.principal, gomock.Any(), key).
			Return(&commands.CreateReservationResult{Reservation: view, IsReplayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, reqBody, "", idemHeader(key))

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: discount code is trimmed and forwarded", func() {
		code := "  SUMMER10 "
		body := builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) { r.DiscountCode = &code }).BuildCreateRequestDTO()
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), s.principal, gomock.Any(), key).
			DoAndReturn(func(_ any, _ user.Principal, in commands.CreateReservationInput, _ uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Require().NotNil(in.DiscountCode)
				s.Equal("SUMMER10", *in.DiscountCode)
				return &commands.CreateReservationResult{Reservation: view}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, body, "", idemHeader(key))
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 401 without principal", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router(user.Principal{}), http.MethodPost, reservationsURL, reqBody, "", idemHeader(key))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 without Idempotency-Key", func() {
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")
	})

	s.Run("error: 400 with malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, reqBody, "",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []testCaseReservation{
			{name: "missing vehicleId", mutate: testutil.Field("vehicleId", nil), expectCode: http.StatusBadRequest},
			{name: "missing startDate", mutate: testutil.Field("startDate", nil), expectCode: http.StatusBadRequest},
			{name: "missing customerName", mutate: testutil.Field("customerName", nil), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("customerEmail", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "phone too long", mutate: testutil.Field("customerPhone", strings.Repeat("1", 51)), expectCode: http.StatusBadRequest},
			{name: "bad date format", mutate: testutil.Field("startDate", "07/01/2026"), expectCode: http.StatusBadRequest, expectInBody: "YYYY-MM-DD"},
			{name: "end before start", mutate: testutil.Field("endDate", "2026-06-30"), expectCode: http.StatusBadRequest, expectInBody: "endDate must not be before startDate"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, requestMap, "", idemHeader(key))
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{"forbidden", errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
			{"vehicle not found", errs.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
			{"vehicle unavailable", errs.ErrVehicleUnavailable, http.StatusBadRequest, "not available for rental"},
			{"dates taken", errs.Mark(errs.New("overlap"), errs.ErrDatesUnavailable), http.StatusConflict, "not available for the selected dates"},
			{"lock busy", errs.ErrVehicleBusy, http.StatusConflict, "another request"},
			{"key reused", errs.ErrIdempotencyKeyReused, http.StatusConflict, "different parameters"},
			{"in progress", errs.ErrIdempotencyInProgress, http.StatusConflict, "currently being processed"},
			{"domain validation", errs.ErrDomainValidation, http.StatusBadRequest, "Validation failed"},
			{"unexpected", errs.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router(s.principal), http.MethodPost, reservationsURL, reqBody, "", idemHeader(key))
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().BuildView()
	url := reservationsURL + "/" + view.ID.String()

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, url, nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		if diff := cmp.Diff(*resdto.FromReservationView(view), body); diff != "" {
			s.Failf("response mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("error: 400 for invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL+"/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation id")
	})

	s.Run("error: 404 when not visible", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal, view.ID).Return(nil, errs.ErrReservationNotFound)
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	views := []*queries.ReservationView{
		builder.NewReservationBuilder().BuildView(),
		builder.NewReservationBuilder().BuildView(),
	}

	s.Run("success: forwards filter, cursor and limit", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().
			List(gomock.Any(), s.principal, gomock.Any(), &queries.Cursor{After: "abc"}, 10).
			DoAndReturn(func(_ any, _ user.Principal, f queries.ReservationFilter, _ *queries.Cursor, _ int) ([]*queries.ReservationView, *queries.Cursor, error) {
				s.Require().NotNil(f.VehicleID)
				s.Equal(vehicleID, *f.VehicleID)
				s.Require().NotNil(f.Status)
				s.Equal("confirmed", *f.Status)
				s.Nil(f.AgencyID)
				return views, &queries.Cursor{After: "next"}, nil
			})

		url := reservationsURL + "?vehicleId=" + vehicleID.String() + "&status=confirmed&limit=10&after=abc"
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, url, nil, "")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Reservations, 2)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next", *body.NextCursor)
	})

	s.Run("success: default limit and no cursor", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), s.principal, queries.ReservationFilter{}, nil, queries.DefaultListLimit).
			Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL, nil, "")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Reservations)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 for malformed agencyId", func() {
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL+"?agencyId=xyz", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id in filter")
	})

	s.Run("error: 400 for zero limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL+"?limit=0", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: 403 when scope is forbidden", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.ErrForbidden)
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL+"?agencyId="+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 400 for bad cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)
		rec := httptest.PerformRequest(s.T(), s.router(s.principal), http.MethodGet, reservationsURL+"?after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateStatus() {
	b := builder.NewReservationBuilder()
	manager := builder.ManagerPrincipal(b.AgencyID)
	url := reservationsURL + "/" + b.ID.String() + "/status"

	s.Run("success: returns the updated reservation", func() {
		confirmed := b.With(func(r *builder.ReservationBuilder) { r.Status = "confirmed" }).BuildView()
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), manager, b.ID, "confirmed").Return(confirmed, nil)

		rec := httptest.PerformRequest(s.T(), s.router(manager), http.MethodPatch, url, map[string]any{"status": "confirmed"}, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 400 without status", func() {
		rec := httptest.PerformRequest(s.T(), s.router(manager), http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{"invalid status", errs.ErrInvalidStatus, http.StatusBadRequest},
			{"invalid transition", errs.Mark(errs.New("completed -> pending"), errs.ErrInvalidTransition), http.StatusUnprocessableEntity},
			{"not found", errs.ErrReservationNotFound, http.StatusNotFound},
			{"forbidden", errs.ErrForbidden, http.StatusForbidden},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), manager, b.ID, "pending").Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router(manager), http.MethodPatch, url, map[string]any{"status": "pending"}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}
