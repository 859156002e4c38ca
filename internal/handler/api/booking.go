package api

import (
	"net/http"

	reqdto "shortlet-booking/internal/handler/dto/request"
	resdto "shortlet-booking/internal/handler/dto/response"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader     = "Idempotency-Key"
	idempotentReplayedHeader = "Idempotent-Replayed"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Place a pending_payment hold on the requested dates
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Makes retries return the first booking"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingStateResponse
// @Success 200 {object} resdto.BookingStateResponse "Replayed by idempotency key"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		abortBadRequest(c, err, "Invalid idempotency key format")
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		abortBadRequest(c, bindErr, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid stay dates")
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), actor, in, idempotencyKey)
	if err != nil {
		respondError(c, err, "Create booking failed")
		return
	}

	resp := resdto.FromBooking(result.Booking)
	if result.IsReplayed {
		resp.Replayed = true
		c.Header(idempotentReplayedHeader, "true")
		c.JSON(http.StatusOK, resp)
		return
	}
	c.Header("Location", "/api/bookings/"+resp.ID.String())
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get booking
// @Description Get a booking visible to the caller
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err, "Get booking failed")
		return
	}
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		respondError(c, err, "Failed to render booking")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Decide booking
// @Description Host or agent approves or declines a paid request-mode booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.BookingDecisionRequest true "Decision"
// @Success 200 {object} resdto.BookingStateResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/decision [post]
func (h *BookingHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.BookingDecisionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		abortBadRequest(c, bindErr, "Invalid request")
		return
	}

	b, err := h.cmds.DecideBooking(c.Request.Context(), actor, id, req.Approve())
	if err != nil {
		respondError(c, err, "Booking decision failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel booking
// @Description Cancel a booking before check-in
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingStateResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid booking id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			abortBadRequest(c, bindErr, "Invalid request")
			return
		}
	}

	b, err := h.cmds.CancelBooking(c.Request.Context(), actor, id, req.GetReason())
	if err != nil {
		respondError(c, err, "Cancel booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// getIdempotencyKey returns nil when the header is absent.
func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader(idempotencyKeyHeader)
	if keyStr == "" {
		return nil, nil
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
