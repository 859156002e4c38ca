//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/handler/api"
	queriesmock "shortlet-booking/internal/mock/queries"
	"shortlet-booking/internal/testutil/httptest"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAvailabilityHandler_Get(t *testing.T) {
	propertyID := uuid.New()
	window := stay.MustDateRange("2026-03-01", "2026-04-01")
	view := &queries.AvailabilityView{
		PropertyID: propertyID,
		From:       "2026-03-01",
		To:         "2026-04-01",
		Unavailable: []queries.UnavailableRangeView{
			{CheckIn: "2026-03-10", CheckOut: "2026-03-13", Source: "booking"},
		},
		BookingMode: "instant",
	}

	tests := []struct {
		name       string
		query      string
		setup      func(m *queriesmock.MockAvailabilityQueries)
		expectCode int
	}{
		{
			name:  "success",
			query: "?propertyId=" + propertyID.String() + "&from=2026-03-01&to=2026-04-01",
			setup: func(m *queriesmock.MockAvailabilityQueries) {
				m.EXPECT().GetAvailability(gomock.Any(), propertyID, gomock.Any()).
					DoAndReturn(func(_ any, _ uuid.UUID, got stay.DateRange) (*queries.AvailabilityView, error) {
						assert.True(t, got.Equal(window))
						return view, nil
					})
			},
			expectCode: http.StatusOK,
		},
		{
			name:  "no window leaves the default to the query",
			query: "?propertyId=" + propertyID.String(),
			setup: func(m *queriesmock.MockAvailabilityQueries) {
				m.EXPECT().GetAvailability(gomock.Any(), propertyID, gomock.Any()).
					DoAndReturn(func(_ any, _ uuid.UUID, got stay.DateRange) (*queries.AvailabilityView, error) {
						assert.True(t, got.IsZero())
						return view, nil
					})
			},
			expectCode: http.StatusOK,
		},
		{name: "missing property", query: "?from=2026-03-01&to=2026-04-01", expectCode: http.StatusBadRequest},
		{name: "property is not a uuid", query: "?propertyId=42&from=2026-03-01&to=2026-04-01", expectCode: http.StatusBadRequest},
		{name: "only one bound", query: "?propertyId=" + propertyID.String() + "&from=2026-03-01", expectCode: http.StatusBadRequest},
		{name: "malformed date", query: "?propertyId=" + propertyID.String() + "&from=March&to=2026-04-01", expectCode: http.StatusBadRequest},
		{name: "inverted window", query: "?propertyId=" + propertyID.String() + "&from=2026-04-01&to=2026-03-01", expectCode: http.StatusBadRequest},
		{
			name:  "window too wide",
			query: "?propertyId=" + propertyID.String() + "&from=2026-01-01&to=2030-01-01",
			setup: func(m *queriesmock.MockAvailabilityQueries) {
				m.EXPECT().GetAvailability(gomock.Any(), propertyID, gomock.Any()).Return(nil, queries.ErrWindowTooWide)
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name:  "unknown property",
			query: "?propertyId=" + propertyID.String() + "&from=2026-03-01&to=2026-04-01",
			setup: func(m *queriesmock.MockAvailabilityQueries) {
				m.EXPECT().GetAvailability(gomock.Any(), propertyID, gomock.Any()).Return(nil, queries.ErrPropertyNotFound)
			},
			expectCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := queriesmock.NewMockAvailabilityQueries(ctrl)
			if tt.setup != nil {
				tt.setup(q)
			}
			router := newTestRouter(t)
			router.GET("/availability", api.NewAvailabilityHandler(q).Get)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/availability"+tt.query, nil, "")

			if tt.expectCode != http.StatusOK {
				httptest.AssertErrorResponse(t, rec, tt.expectCode, "")
				return
			}
			var got queries.AvailabilityView
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
			assert.Equal(t, *view, got)
		})
	}
}

func TestAvailabilityHandler_Quote(t *testing.T) {
	propertyID := uuid.New()
	url := "/quote?propertyId=" + propertyID.String() + "&checkIn=2026-03-02&checkOut=2026-03-05"

	t.Run("unavailable dates are still priced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := queriesmock.NewMockAvailabilityQueries(ctrl)
		q.EXPECT().Quote(gomock.Any(), propertyID, gomock.Any()).Return(&queries.QuoteView{
			PropertyID: propertyID,
			CheckIn:    "2026-03-02",
			CheckOut:   "2026-03-05",
			Nights:     3,
			Total:      160_000,
			Currency:   "NGN",
			Available:  false,
			Reason:     "dates are not available",
		}, nil)
		router := newTestRouter(t)
		router.GET("/quote", api.NewAvailabilityHandler(q).Quote)

		rec := httptest.PerformRequest(t, router, http.MethodGet, url, nil, "")

		var got queries.QuoteView
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, int64(160_000), got.Total)
		assert.False(t, got.Available)
		assert.Equal(t, "dates are not available", got.Reason)
	})

	t.Run("checkOut is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := newTestRouter(t)
		router.GET("/quote", api.NewAvailabilityHandler(queriesmock.NewMockAvailabilityQueries(ctrl)).Quote)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/quote?propertyId="+propertyID.String()+"&checkIn=2026-03-02", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid query")
	})
}
