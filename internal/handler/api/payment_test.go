//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/handler/api"
	resdto "shortlet-booking/internal/handler/dto/response"
	commandsmock "shortlet-booking/internal/mock/commands"
	queriesmock "shortlet-booking/internal/mock/queries"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/testutil/httptest"
	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/queries"
	"shortlet-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockBookingQueries
	actor        shared.Actor
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	s.router = newTestRouter(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.actor = guestActor()

	h := api.NewPaymentHandler(s.mockCommands, s.mockQueries)
	auth := fakeAuth(&s.actor)
	s.router.POST("/payments/intents", auth, h.CreateIntent)
	s.router.GET("/payments/status", auth, h.Status)
	s.router.POST("/payments/verify", auth, h.Verify)
	s.router.POST("/payments/webhook", h.Webhook)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func confirmedOutcome(bookingID uuid.UUID) *commands.ReconcileOutcome {
	return &commands.ReconcileOutcome{
		Reference:     "SL-3F2A9C1E-0123456789ab",
		BookingID:     bookingID,
		IntentStatus:  payment.StatusSucceeded,
		BookingStatus: booking.StatusConfirmed,
		PaymentStatus: booking.PaymentPaid,
		Activated:     true,
	}
}

func (s *PaymentHandlerTestSuite) TestCreateIntent() {
	bookingID := uuid.New()
	body := map[string]any{"bookingId": bookingID.String()}

	s.Run("success: returns the checkout link", func() {
		result := &commands.IntentResult{
			BookingID:        bookingID,
			Reference:        "SL-3F2A9C1E-0123456789ab",
			AuthorizationURL: "https://checkout.paystack.com/abc",
			AccessCode:       "abc",
			Amount:           160_000,
			Currency:         "NGN",
			ExpiresAt:        time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		}
		s.mockCommands.EXPECT().CreateIntent(gomock.Any(), s.actor, bookingID).Return(result, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/intents", body, bearer)

		var got resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(resdto.PaymentIntentResponse{
			BookingID:        bookingID,
			Reference:        result.Reference,
			AuthorizationURL: result.AuthorizationURL,
			AccessCode:       "abc",
			Amount:           160_000,
			Currency:         "NGN",
			ExpiresAt:        result.ExpiresAt,
		}, got)
	})

	s.Run("error: missing booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/intents", map[string]any{}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: use case failures map to status codes", func() {
		tests := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "hold lapsed", err: commands.ErrHoldLapsed, expectCode: http.StatusConflict},
			{name: "someone else's booking", err: commands.ErrNotBookingGuest, expectCode: http.StatusForbidden},
			{name: "no payer email", err: commands.ErrPayerEmailMissing, expectCode: http.StatusBadRequest},
			{name: "provider down", err: errs.Mark(errors.New("paystack: 503"), errs.ErrUpstreamProvider), expectCode: http.StatusBadGateway},
		}
		for _, tt := range tests {
			s.Run(tt.name, func() {
				s.mockCommands.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), bookingID).Return(nil, tt.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/intents", body, bearer)

				httptest.AssertErrorResponse(s.T(), rec, tt.expectCode, "Create payment intent failed")
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestStatus() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: booking with its intents", func() {
		s.mockQueries.EXPECT().GetPaymentStatus(gomock.Any(), s.actor, view.ID).Return(&queries.PaymentStatusView{
			Booking: view,
			Intents: []*queries.PaymentIntentView{{ID: uuid.New(), Reference: "SL-3F2A9C1E-0123456789ab", Status: "pending"}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/status?bookingId="+view.ID.String(), nil, bearer)

		var got resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(view.ID, got.Booking.ID)
		s.Len(got.Intents, 1)
	})

	s.Run("error: bookingId is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/status", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: bookingId is not a uuid", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/status?bookingId=42", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: not visible", func() {
		s.mockQueries.EXPECT().GetPaymentStatus(gomock.Any(), gomock.Any(), view.ID).Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/status?bookingId="+view.ID.String(), nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Get payment status failed")
	})
}

func (s *PaymentHandlerTestSuite) TestVerify() {
	bookingID := uuid.New()
	ref := "SL-3F2A9C1E-0123456789ab"

	s.Run("success: confirmed on the spot", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), s.actor, bookingID, ref).Return(confirmedOutcome(bookingID), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify",
			map[string]any{"bookingId": bookingID.String(), "reference": " " + ref + " "}, bearer)

		var got resdto.PaymentOutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("confirmed", got.BookingStatus)
		s.Equal("succeeded", got.IntentStatus)
		s.True(got.Activated)
	})

	s.Run("error: recorded but not applied carries the outcome", func() {
		out := &commands.ReconcileOutcome{
			Reference:     ref,
			BookingID:     bookingID,
			IntentStatus:  payment.StatusSucceeded,
			BookingStatus: booking.StatusExpired,
			PaymentStatus: booking.PaymentRefundRequired,
		}
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), gomock.Any(), bookingID, ref).Return(out, commands.ErrRefundRequired)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify",
			map[string]any{"bookingId": bookingID.String(), "reference": ref}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Payment recorded but not applied")
		detail := httptest.DecodeErrorDetail(s.T(), rec)
		s.Contains(detail["reason"], "can no longer be fulfilled")
		outcome, ok := detail["outcome"].(map[string]any)
		s.Require().True(ok)
		s.Equal("refund_required", outcome["paymentStatus"])
	})

	s.Run("error: provider could not be reached", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), gomock.Any(), bookingID, ref).
			Return(nil, errs.Mark(errors.New("timeout"), errs.ErrUpstreamProvider))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify",
			map[string]any{"bookingId": bookingID.String(), "reference": ref}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Verify payment failed")
		s.Nil(httptest.DecodeErrorDetail(s.T(), rec))
	})

	s.Run("error: reference is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify",
			map[string]any{"bookingId": bookingID.String()}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	bookingID := uuid.New()
	payload := []byte(`{"event":"charge.success","data":{"reference":"SL-3F2A9C1E-0123456789ab"}}`)
	headers := map[string]string{"X-Paystack-Signature": "abc123"}

	s.Run("success: applied", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), "abc123", payload).Return(confirmedOutcome(bookingID), nil)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/webhook", payload, headers)

		var got resdto.PaymentOutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(bookingID, got.BookingID)
	})

	s.Run("success: events without a payment are acknowledged", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), "abc123", payload).Return(nil, nil)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/webhook", payload, headers)

		var got map[string]bool
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.True(got["received"])
	})

	s.Run("success: a committed verdict still answers 200", func() {
		out := confirmedOutcome(bookingID)
		out.BookingStatus = booking.StatusExpired
		out.PaymentStatus = booking.PaymentRefundRequired
		out.Activated = false
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), "abc123", payload).Return(out, commands.ErrRefundRequired)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/webhook", payload, headers)

		var got resdto.PaymentOutcomeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("refund_required", got.PaymentStatus)
	})

	s.Run("error: bad signature", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), "forged", payload).
			Return(nil, errs.Mark(errors.New("signature mismatch"), errs.ErrForbidden))

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/webhook", payload,
			map[string]string{"X-Paystack-Signature": "forged"})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Webhook rejected")
	})
}
