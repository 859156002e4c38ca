package booking

import (
	"errors"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/pkg/errs"
)

var ErrInvalidTransition = errs.Mark(errors.New("invalid booking transition"), errs.ErrInvalidTransition)

// Move is one legal edge of the lifecycle. Mode is empty when the edge does not depend on it.
type Move struct {
	From  Status
	Event Event
	Mode  property.BookingMode
	To    Status
}

var moves = []Move{
	{From: StatusPendingPayment, Event: EventPaymentSucceeded, Mode: property.BookingModeRequest, To: StatusPending},
	{From: StatusPendingPayment, Event: EventPaymentSucceeded, Mode: property.BookingModeInstant, To: StatusConfirmed},
	{From: StatusPendingPayment, Event: EventHoldExpired, To: StatusExpired},
	{From: StatusPending, Event: EventHostApproved, To: StatusConfirmed},
	{From: StatusPending, Event: EventHostDeclined, To: StatusDeclined},
	{From: StatusConfirmed, Event: EventCancelled, To: StatusCancelled},
}

// Moves lists every legal transition.
func Moves() []Move {
	return append([]Move(nil), moves...)
}

// Transition is the only place that decides the next status.
func Transition(current Status, event Event, mode property.BookingMode) (Status, error) {
	for _, m := range moves {
		if m.From != current || m.Event != event {
			continue
		}
		if m.Mode != "" && m.Mode != mode {
			continue
		}
		return m.To, nil
	}
	return current, errs.Wrapf(ErrInvalidTransition, "%s from %s (mode %s)", event, current, mode)
}
