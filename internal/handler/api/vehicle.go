package api

import (
	"net/http"

	reqdto "car-rental-platform/internal/handler/dto/request"
	resdto "car-rental-platform/internal/handler/dto/response"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	pricing queries.PricingQueries
}

func NewVehicleHandler(pricing queries.PricingQueries) *VehicleHandler {
	return &VehicleHandler{pricing: pricing}
}

// @Summary Price quote
// @Description Preview the price of renting a vehicle for a date range, optionally with a discount code
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param startDate query string true "First rental day (YYYY-MM-DD)"
// @Param endDate query string true "Last rental day (YYYY-MM-DD)"
// @Param discountCode query string false "Discount code"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/vehicles/{id}/pricing [get]
func (h *VehicleHandler) GetPricing(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle id", nil)
		return
	}
	var q reqdto.PricingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "startDate and endDate are required", httperr.FieldErrors(err))
		return
	}
	dates, err := q.ToDateRange()
	if err != nil {
		abortWithDateRangeError(c, err)
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), vehicleID, dates, q.Code())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(quote))
}

// @Summary Vehicle availability
// @Description Check whether a vehicle can be booked for a date range and list conflicting reservations
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param startDate query string true "First rental day (YYYY-MM-DD)"
// @Param endDate query string true "Last rental day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/vehicles/{id}/availability [get]
func (h *VehicleHandler) GetAvailability(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle id", nil)
		return
	}
	var q reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "startDate and endDate are required", httperr.FieldErrors(err))
		return
	}
	dates, err := q.ToDateRange()
	if err != nil {
		abortWithDateRangeError(c, err)
		return
	}

	view, err := h.pricing.Availability(c.Request.Context(), vehicleID, dates)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
