package queries

import (
	"context"
	"errors"

	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../mock/queries/booking_mock.go -package=queriesmock

var (
	ErrBookingNotFound = errs.Mark(errors.New("booking not found"), errs.ErrNotFound)
	ErrBookingAccess   = errs.Mark(errors.New("booking access denied"), errs.ErrForbidden)
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	GetPaymentStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*PaymentStatusView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type PaymentIntentViewRepo interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*PaymentIntentView, error)
}

type bookingQueriesImpl struct {
	bookings BookingViewRepo
	intents  PaymentIntentViewRepo
}

func NewBookingQueries(bookings BookingViewRepo, intents PaymentIntentViewRepo) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, intents: intents}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !canView(actor, view) {
		// Other guests' bookings are reported as absent.
		if actor.Role == user.RoleGuest {
			return nil, ErrBookingNotFound
		}
		return nil, ErrBookingAccess
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetPaymentStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*PaymentStatusView, error) {
	view, err := q.GetByID(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	intents, err := q.intents.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if intents == nil {
		intents = []*PaymentIntentView{}
	}
	return &PaymentStatusView{Booking: view, Intents: intents}, nil
}

func canView(actor shared.Actor, v *BookingView) bool {
	if actor.IsStaff() || v.GuestID == actor.ID || v.HostID == actor.ID {
		return true
	}
	return v.AgentID != nil && *v.AgentID == actor.ID
}
