package api

import (
	"log/slog"
	"net/http"

	reqdto "shortlet-booking/internal/handler/dto/request"
	resdto "shortlet-booking/internal/handler/dto/response"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	webhookSignatureHeader = "X-Paystack-Signature"
	maxWebhookBodyBytes    = 1 << 20
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.BookingQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.BookingQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Create payment intent
// @Description Open a provider checkout for a held booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentIntentRequest true "Booking to pay"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	result, err := h.cmds.CreateIntent(c.Request.Context(), actor, req.BookingID)
	if err != nil {
		respondError(c, err, "Create payment intent failed")
		return
	}
	resp, err := resdto.FromIntentResult(result)
	if err != nil {
		respondError(c, err, "Failed to render payment intent")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Payment status
// @Description Booking and payment intent snapshot
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param bookingId query string true "Booking ID"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/status [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var query reqdto.PaymentStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	bookingID, err := query.Booking()
	if err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}

	view, err := h.q.GetPaymentStatus(c.Request.Context(), actor, bookingID)
	if err != nil {
		respondError(c, err, "Get payment status failed")
		return
	}
	resp, err := resdto.FromPaymentStatusView(view)
	if err != nil {
		respondError(c, err, "Failed to render payment status")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Verify payment
// @Description Ask the provider for the result of a reference and apply it
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Reference to verify"
// @Success 200 {object} resdto.PaymentOutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/verify [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	out, err := h.cmds.VerifyPayment(c.Request.Context(), actor, req.BookingID, req.GetReference())
	if err != nil {
		// the payment was recorded even though the booking could not take it
		if out != nil {
			respondErrorWithDetail(c, err, "Payment recorded but not applied", gin.H{
				"outcome": resdto.FromReconcileOutcome(out),
			})
			return
		}
		respondError(c, err, "Verify payment failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileOutcome(out))
}

// @Summary Payment webhook
// @Description Provider callback, authenticated by its signature header
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Paystack-Signature header string true "HMAC-SHA512 of the body"
// @Success 200 {object} resdto.PaymentOutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		abortBadRequest(c, err, "Unreadable body")
		return
	}

	out, err := h.cmds.HandleWebhook(c.Request.Context(), c.GetHeader(webhookSignatureHeader), body)
	switch {
	case err != nil && out == nil:
		respondError(c, err, "Webhook rejected")
	case err != nil:
		// State is committed; a non-2xx would only make the provider resend.
		slog.Warn("webhook applied with verdict",
			"reference", out.Reference,
			"booking_id", out.BookingID,
			"error", err.Error())
		c.JSON(http.StatusOK, resdto.FromReconcileOutcome(out))
	case out == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	default:
		c.JSON(http.StatusOK, resdto.FromReconcileOutcome(out))
	}
}
