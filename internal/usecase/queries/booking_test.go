//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/infra"
	queriesmock "shortlet-booking/internal/mock/queries"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/usecase/queries"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_GetByID(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()
	agentID := uuid.New()
	view.AgentID = &agentID

	tests := []struct {
		name    string
		actor   shared.Actor
		wantErr error
	}{
		{name: "guest who booked", actor: shared.Actor{ID: view.GuestID, Role: user.RoleGuest}},
		{name: "host of the property", actor: shared.Actor{ID: view.HostID, Role: user.RoleHost}},
		{name: "agent of the property", actor: shared.Actor{ID: agentID, Role: user.RoleAgent}},
		{name: "operator", actor: shared.Actor{ID: uuid.New(), Role: user.RoleOperator}},
		{name: "admin", actor: shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}},
		{name: "another guest sees nothing", actor: shared.Actor{ID: uuid.New(), Role: user.RoleGuest}, wantErr: queries.ErrBookingNotFound},
		{name: "another host is forbidden", actor: shared.Actor{ID: uuid.New(), Role: user.RoleHost}, wantErr: queries.ErrBookingAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			bookings := queriesmock.NewMockBookingViewRepo(ctrl)
			intents := queriesmock.NewMockPaymentIntentViewRepo(ctrl)
			bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

			got, err := queries.NewBookingQueries(bookings, intents).GetByID(context.Background(), tt.actor, view.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view, got)
		})
	}
}

func TestBookingQueries_GetByID_RepoErrors(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantMark error
	}{
		{name: "missing row", repoErr: infra.WrapRepoErr("booking not found", nil, infra.KindNotFound), wantMark: errs.ErrNotFound},
		{name: "database down", repoErr: infra.WrapRepoErr("query failed", errors.New("conn reset"), infra.KindDBFailure), wantMark: errs.ErrDatabaseOperationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			bookings := queriesmock.NewMockBookingViewRepo(ctrl)
			bookings.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, tt.repoErr)

			_, err := queries.NewBookingQueries(bookings, queriesmock.NewMockPaymentIntentViewRepo(ctrl)).
				GetByID(context.Background(), shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}, uuid.New())

			assert.True(t, errs.Is(err, tt.wantMark))
		})
	}
}

func TestBookingQueries_GetPaymentStatus(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()
	guest := shared.Actor{ID: view.GuestID, Role: user.RoleGuest}
	created := time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC)

	t.Run("lists intents with the booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookings := queriesmock.NewMockBookingViewRepo(ctrl)
		intents := queriesmock.NewMockPaymentIntentViewRepo(ctrl)
		listed := []*queries.PaymentIntentView{
			{ID: uuid.New(), Provider: "paystack", Reference: "SL-3F2A9C1E-000000000001", Amount: view.Total, Currency: "NGN", Status: "failed", CreatedAt: created, UpdatedAt: created},
			{ID: uuid.New(), Provider: "paystack", Reference: "SL-3F2A9C1E-000000000002", Amount: view.Total, Currency: "NGN", Status: "pending", CreatedAt: created, UpdatedAt: created},
		}
		bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		intents.EXPECT().ListByBooking(gomock.Any(), view.ID).Return(listed, nil)

		got, err := queries.NewBookingQueries(bookings, intents).GetPaymentStatus(context.Background(), guest, view.ID)

		require.NoError(t, err)
		assert.Equal(t, view, got.Booking)
		assert.Equal(t, listed, got.Intents)
	})

	t.Run("no intents yet is an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookings := queriesmock.NewMockBookingViewRepo(ctrl)
		intents := queriesmock.NewMockPaymentIntentViewRepo(ctrl)
		bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		intents.EXPECT().ListByBooking(gomock.Any(), view.ID).Return(nil, nil)

		got, err := queries.NewBookingQueries(bookings, intents).GetPaymentStatus(context.Background(), guest, view.ID)

		require.NoError(t, err)
		assert.NotNil(t, got.Intents)
		assert.Empty(t, got.Intents)
	})

	t.Run("access is checked before intents are read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookings := queriesmock.NewMockBookingViewRepo(ctrl)
		intents := queriesmock.NewMockPaymentIntentViewRepo(ctrl)
		bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := queries.NewBookingQueries(bookings, intents).
			GetPaymentStatus(context.Background(), shared.Actor{ID: uuid.New(), Role: user.RoleGuest}, view.ID)

		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("intent lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		bookings := queriesmock.NewMockBookingViewRepo(ctrl)
		intents := queriesmock.NewMockPaymentIntentViewRepo(ctrl)
		bookings.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		intents.EXPECT().ListByBooking(gomock.Any(), view.ID).Return(nil, errors.New("timeout"))

		_, err := queries.NewBookingQueries(bookings, intents).GetPaymentStatus(context.Background(), guest, view.ID)

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}
