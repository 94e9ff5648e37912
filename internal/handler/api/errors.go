package api

import (
	"net/http"

	"car-rental-platform/internal/domain/daterange"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins.
var usecaseErrors = []errorMapping{
	{errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{errs.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrVehicleUnavailable, http.StatusBadRequest, "Vehicle is not available for rental"},
	{errs.ErrDatesUnavailable, http.StatusConflict, "Vehicle is not available for the selected dates"},
	{errs.ErrVehicleBusy, http.StatusConflict, "Vehicle is being booked by another request"},
	{errs.ErrInvalidTransition, http.StatusUnprocessableEntity, "Invalid status transition"},
	{errs.ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header is required"},
	{errs.ErrIdempotencyKeyReused, http.StatusConflict, "Duplicate reservation request with different parameters"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Reservation request is currently being processed"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Validation failed"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
}

func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range usecaseErrors {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abortWithDateRangeError(c *gin.Context, err error) {
	if errs.Is(err, daterange.ErrInvertedRange) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "endDate must not be before startDate", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must be in YYYY-MM-DD format", nil)
}
