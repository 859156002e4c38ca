package commands

import (
	"errors"

	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/pkg/errs"
)

var (
	ErrPropertyNotFound = errs.Mark(errors.New("property not found"), errs.ErrNotFound)
	ErrBookingNotFound  = errs.Mark(errors.New("booking not found"), errs.ErrNotFound)
	ErrBlockNotFound    = errs.Mark(errors.New("block not found"), errs.ErrNotFound)
	ErrPayoutNotFound   = errs.Mark(errors.New("payout not found"), errs.ErrNotFound)
	ErrIntentNotFound   = errs.Mark(errors.New("payment intent not found"), errs.ErrNotFound)

	ErrNotBookingGuest    = errs.Mark(errors.New("booking belongs to another guest"), errs.ErrForbidden)
	ErrNotPropertyManager = errs.Mark(errors.New("actor does not manage this property"), errs.ErrForbidden)
	ErrOperatorOnly       = errs.Mark(errors.New("operator role required"), errs.ErrForbidden)
	ErrOwnProperty        = errs.Mark(errors.New("hosts cannot book their own property"), errs.ErrForbidden)

	ErrBookingConflict       = errs.Mark(errors.New("dates were taken by another booking"), errs.ErrAvailabilityConflict)
	ErrBlockConflict         = errs.Mark(errors.New("block overlaps an active booking"), errs.ErrAvailabilityConflict)
	ErrHoldLapsed            = errs.Mark(errors.New("booking hold has lapsed"), errs.ErrInvalidTransition)
	ErrNotAwaitingPayment    = errs.Mark(errors.New("booking is not awaiting payment"), errs.ErrInvalidTransition)
	ErrRefundRequired        = errs.Mark(errors.New("payment captured for a booking that can no longer be fulfilled"), errs.ErrInvalidTransition)
	ErrAmountMismatch        = errs.Mark(errors.New("paid amount or currency differs from the booking total"), errs.ErrValidation)
	ErrBookingMismatch       = errs.Mark(errors.New("payment reference belongs to another booking"), errs.ErrValidation)
	ErrDuplicatePayment      = errs.Mark(errors.New("booking already has a successful payment"), errs.ErrDuplicateEvent)
	ErrIdempotencyInProgress = errs.Mark(errors.New("a request with this idempotency key is still processing"), errs.ErrIdempotencyInProgress)
	ErrIdempotencyMismatch   = errs.Mark(errors.New("idempotency key was used with a different request"), errs.ErrIdempotencyMismatch)
)

// repoErr maps a repository failure onto the use-case taxonomy.
func repoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
