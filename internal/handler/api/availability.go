package api

import (
	"net/http"

	reqdto "shortlet-booking/internal/handler/dto/request"
	"shortlet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Property availability
// @Description Unavailable date ranges, rate card and booking mode for a window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param propertyId query string true "Property ID"
// @Param from query string false "Window start (YYYY-MM-DD), defaults to today"
// @Param to query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	propertyID, err := query.Property()
	if err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	window, err := query.Window()
	if err != nil {
		respondError(c, err, "Invalid window")
		return
	}

	view, err := h.q.GetAvailability(c.Request.Context(), propertyID, window)
	if err != nil {
		respondError(c, err, "Get availability failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Quote stay
// @Description Price breakdown and availability verdict for a stay
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param propertyId query string true "Property ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /quote [get]
func (h *AvailabilityHandler) Quote(c *gin.Context) {
	var query reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	propertyID, err := query.Property()
	if err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	dates, err := query.Dates()
	if err != nil {
		respondError(c, err, "Invalid stay dates")
		return
	}

	view, err := h.q.Quote(c.Request.Context(), propertyID, dates)
	if err != nil {
		respondError(c, err, "Quote failed")
		return
	}
	c.JSON(http.StatusOK, view)
}
