//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/handler/api"
	resdto "shortlet-booking/internal/handler/dto/response"
	commandsmock "shortlet-booking/internal/mock/commands"
	queriesmock "shortlet-booking/internal/mock/queries"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil"
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

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	actor        shared.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.router = newTestRouter(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.actor = guestActor()

	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)
	auth := fakeAuth(&s.actor)
	s.router.POST("/bookings", auth, h.Create)
	s.router.GET("/bookings/:id", auth, h.Get)
	s.router.POST("/bookings/:id/decision", auth, h.Decide)
	s.router.POST("/bookings/:id/cancel", auth, h.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildCreateRequestDTO()
	created := bb.BuildDomain()

	s.Run("success: returns 201 with the hold and its location", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.actor, gomock.Any(), (*uuid.UUID)(nil)).
			DoAndReturn(func(_ context.Context, _ shared.Actor, in commands.CreateBookingInput, _ *uuid.UUID) (*commands.CreateBookingResult, error) {
				s.Equal(reqBody.PropertyID, in.PropertyID)
				s.True(in.Dates.Equal(bb.Dates))
				s.Equal(2, in.GuestCount)
				return &commands.CreateBookingResult{Booking: created}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.BookingStateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal("pending_payment", body.Status)
		s.Equal(int64(160_000), body.Total)
		s.False(body.Replayed)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + created.ID().String()})
	})

	s.Run("success: replay by idempotency key returns 200", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.actor, gomock.Any(), &key).
			Return(&commands.CreateBookingResult{Booking: created, IsReplayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, bearer,
			map[string]string{"Idempotency-Key": key.String()})

		var body resdto.BookingStateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true", "Location": ""})
	})

	s.Run("error: malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, bearer,
			map[string]string{"Idempotency-Key": "retry-1"})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid idempotency key format")
	})

	s.Run("error: 401 without credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 on validation errors", func() {
		bound := []testCaseBooking{
			{name: "guestCount boundary OK (1)", mutate: testutil.Field("guestCount", 1), expectCode: http.StatusCreated},
			{name: "guestCount boundary OK (50)", mutate: testutil.Field("guestCount", 50), expectCode: http.StatusCreated},
			{name: "guestCount boundary invalid (0)", mutate: testutil.Field("guestCount", 0), expectCode: http.StatusBadRequest},
			{name: "guestCount boundary invalid (51)", mutate: testutil.Field("guestCount", 51), expectCode: http.StatusBadRequest},
		}
		missing := []testCaseBooking{
			{name: "missing field: propertyId", mutate: testutil.Field("propertyId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: checkIn", mutate: testutil.Field("checkIn", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: checkOut", mutate: testutil.Field("checkOut", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: guestCount", mutate: testutil.Field("guestCount", nil), expectCode: http.StatusBadRequest},
		}
		dates := []testCaseBooking{
			{name: "checkIn not ISO", mutate: testutil.Field("checkIn", "10/03/2025"), expectCode: http.StatusBadRequest},
			{name: "checkOut with time", mutate: testutil.Field("checkOut", "2025-03-13T11:00:00Z"), expectCode: http.StatusBadRequest},
			{name: "checkOut equals checkIn", mutate: testutil.Field("checkOut", "2025-03-10"), expectCode: http.StatusBadRequest},
			{name: "checkOut before checkIn", mutate: testutil.Field("checkOut", "2025-03-09"), expectCode: http.StatusBadRequest},
		}

		for _, group := range [][]testCaseBooking{bound, missing, dates} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
							Return(&commands.CreateBookingResult{Booking: created}, nil)
					}

					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearer)

					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("error: use case failures map to status codes", func() {
		tests := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "dates taken", err: commands.ErrBookingConflict, expectCode: http.StatusConflict},
			{name: "unknown property", err: commands.ErrPropertyNotFound, expectCode: http.StatusNotFound},
			{name: "own listing", err: commands.ErrOwnProperty, expectCode: http.StatusForbidden},
			{name: "key still processing", err: commands.ErrIdempotencyInProgress, expectCode: http.StatusConflict},
			{name: "key reused with another body", err: commands.ErrIdempotencyMismatch, expectCode: http.StatusConflict},
			{name: "hold ttl misconfigured", err: booking.ErrInvalidHoldTTL, expectCode: http.StatusServiceUnavailable},
			{name: "database down", err: errs.Mark(errors.New("conn refused"), errs.ErrDatabaseOperationFailed), expectCode: http.StatusInternalServerError},
		}
		for _, tt := range tests {
			s.Run(tt.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

				httptest.AssertErrorResponse(s.T(), rec, tt.expectCode, "Create booking failed")
			})
		}
	})

	s.Run("error: conflicts explain the reason, server errors do not", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBookingConflict)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
		s.Contains(httptest.DecodeErrorDetail(s.T(), rec)["reason"], "dates were taken")

		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("password authentication failed"), errs.ErrDatabaseOperationFailed))
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
		s.Nil(httptest.DecodeErrorDetail(s.T(), rec))
		s.NotContains(rec.Body.String(), "password")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.CheckIn, body.CheckIn)
		s.Equal(view.Total, body.Total)
		s.Equal(view.PropertyTitle, body.PropertyTitle)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: lookup failures", func() {
		tests := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "not found", err: queries.ErrBookingNotFound, expectCode: http.StatusNotFound},
			{name: "forbidden", err: queries.ErrBookingAccess, expectCode: http.StatusForbidden},
		}
		for _, tt := range tests {
			s.Run(tt.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(nil, tt.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, bearer)

				httptest.AssertErrorResponse(s.T(), rec, tt.expectCode, "Get booking failed")
			})
		}
	})
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Status = booking.StatusConfirmed
		bb.PaymentStatus = booking.PaymentPaid
	}).BuildDomain()
	url := "/bookings/" + b.ID().String() + "/decision"

	s.Run("success: approve and decline", func() {
		for decision, approve := range map[string]bool{"approve": true, "decline": false} {
			s.mockCommands.EXPECT().DecideBooking(gomock.Any(), s.actor, b.ID(), approve).Return(b, nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"decision": decision}, bearer)

			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})

	s.Run("error: unknown decision", func() {
		for _, body := range []map[string]any{{"decision": "maybe"}, {}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, bearer)

			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: not awaiting a decision", func() {
		s.mockCommands.EXPECT().DecideBooking(gomock.Any(), gomock.Any(), b.ID(), true).Return(nil, booking.ErrInvalidTransition)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"decision": "approve"}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Booking decision failed")
	})

	s.Run("error: not the host", func() {
		s.mockCommands.EXPECT().DecideBooking(gomock.Any(), gomock.Any(), b.ID(), false).Return(nil, commands.ErrNotPropertyManager)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"decision": "decline"}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Booking decision failed")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		bb.Status = booking.StatusCancelled
		bb.PaymentStatus = booking.PaymentPaid
	}).BuildDomain()
	url := "/bookings/" + b.ID().String() + "/cancel"

	s.Run("success: without a body", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, b.ID(), "").Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)

		var body resdto.BookingStateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("success: reason is trimmed", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, b.ID(), "plans changed").Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "  plans changed "}, bearer)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: reason too long", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": strings.Repeat("a", 501)}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: window closed", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), b.ID(), "").Return(nil, booking.ErrCancellationWindowClosed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Cancel booking failed")
		s.Contains(httptest.DecodeErrorDetail(s.T(), rec)["reason"], "cancellation window has closed")
	})
}
