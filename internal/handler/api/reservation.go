package api

import (
	"errors"
	"net/http"

	reqdto "car-rental-platform/internal/handler/dto/request"
	resdto "car-rental-platform/internal/handler/dto/response"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/handler/middleware"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/commands"
	"car-rental-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errMissingPrincipal = errors.New("principal missing from context")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a vehicle for a date range. Retries with the same Idempotency-Key replay the original result.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}

	idempotencyKey, err := parseIdempotencyKey(c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", httperr.FieldErrors(err))
		return
	}
	input, err := req.ToInput()
	if err != nil {
		abortWithDateRangeError(c, err)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), principal, input, idempotencyKey)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header("Idempotent-Replayed", "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get a reservation by ID. Clients see their own, managers their agency's.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations visible to the caller, newest first, with keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param agencyId query string false "Agency ID (admins; managers only their own)"
// @Param vehicleId query string false "Vehicle ID"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", httperr.FieldErrors(err))
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id in filter", nil)
		return
	}
	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}

	items, next, err := h.q.List(c.Request.Context(), principal, filter, cursor, q.LimitOrDefault())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Update reservation status
// @Description Move a reservation along its lifecycle (managers of its agency, admins)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "New status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}
	var req reqdto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", httperr.FieldErrors(err))
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func parseIdempotencyKey(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return key, nil
}
