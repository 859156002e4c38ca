package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"shortlet-booking/internal/domain/availability"
	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../mock/commands/booking_mock.go -package=commandsmock

const createBookingEndpoint = "POST /api/bookings"

type CreateBookingInput struct {
	PropertyID uuid.UUID
	Dates      stay.DateRange
	GuestCount int
}

type CreateBookingResult struct {
	Booking    *booking.Booking
	IsReplayed bool
}

type BookingCommands interface {
	// CreateBooking places a pending_payment hold. A non-nil idempotencyKey makes
	// retries of the same request return the booking created the first time.
	CreateBooking(ctx context.Context, actor shared.Actor, in CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	DecideBooking(ctx context.Context, actor shared.Actor, id uuid.UUID, approve bool) (*booking.Booking, error)
	CancelBooking(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.BookingConfig
	clock clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, cfg config.BookingConfig, clock clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:   uow,
		cfg:   cfg,
		clock: clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	actor shared.Actor,
	in CreateBookingInput,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	if in.Dates.IsZero() {
		return nil, stay.ErrInvalidRange
	}
	if in.GuestCount < 1 || in.GuestCount > booking.MaxGuestCount {
		return nil, booking.ErrInvalidGuestCount
	}

	requestHash := calculateRequestHash(in)
	var result *CreateBookingResult

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		now := u.clock.Now()

		if idempotencyKey != nil {
			replayed, err := u.claimIdempotencyKey(ctx, tx, *idempotencyKey, actor.ID, requestHash, now)
			if err != nil {
				return err
			}
			if replayed != nil {
				result = &CreateBookingResult{Booking: replayed, IsReplayed: true}
				return nil
			}
		}

		b, err := u.placeHold(ctx, tx, actor, in, now)
		if err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, *idempotencyKey, actor.ID, calculateIDHash(b.ID()), b.ID()); err != nil {
				return repoErr(err, nil)
			}
		}
		result = &CreateBookingResult{Booking: b}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// claimIdempotencyKey returns the original booking when the key was already
// completed for the same request.
func (u *bookingUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*booking.Booking, error) {
	expiresAt := now.Add(u.cfg.IdempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, key, userID, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, key, userID)
	if err != nil {
		return nil, repoErr(err, nil)
	}

	if existing.ExpiresAt.Before(now) {
		claimed, err := tx.Idempotency().ClaimExpired(ctx, key, userID, requestHash, expiresAt, now)
		if err != nil {
			return nil, repoErr(err, nil)
		}
		if !claimed {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed idempotency key has no booking")
		}
		b, err := tx.Bookings().FindByID(ctx, *existing.ResultBookingID)
		if err != nil {
			return nil, repoErr(err, ErrBookingNotFound)
		}
		slog.Info("booking request replayed", "booking_id", b.ID(), "idempotency_key", key)
		return b, nil
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (u *bookingUseCaseImpl) placeHold(
	ctx context.Context,
	tx shared.Tx,
	actor shared.Actor,
	in CreateBookingInput,
	now time.Time,
) (*booking.Booking, error) {
	// The property row lock serialises every calendar writer of this property.
	prop, err := tx.Properties().LockByID(ctx, in.PropertyID)
	if err != nil {
		return nil, repoErr(err, ErrPropertyNotFound)
	}
	if prop.IsManagedBy(actor.ID) {
		return nil, ErrOwnProperty
	}
	rc := prop.RateCard()

	b, err := booking.NewBooking(booking.NewParams{
		PropertyID: prop.ID(),
		GuestID:    actor.ID,
		Dates:      in.Dates,
		GuestCount: in.GuestCount,
		RateCard:   rc,
		HoldTTL:    u.cfg.HoldTTL,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}

	window := availability.PaddedWindow(in.Dates, rc.PrepDays)
	if err := expireLapsedHolds(ctx, tx, prop.ID(), window, now); err != nil {
		return nil, err
	}

	unavailable, err := shared.LoadUnavailable(ctx, tx, prop.ID(), &window, now, nil)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	if err := availability.Check(in.Dates, rc, unavailable, now); err != nil {
		if errs.Is(err, errs.ErrAvailabilityConflict) {
			slog.Info("booking rejected by availability",
				"property_id", prop.ID(),
				"dates", in.Dates.String(),
				"reason", err.Error())
		}
		return nil, err
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			slog.Warn("booking insert hit the overlap constraint",
				"property_id", prop.ID(),
				"dates", in.Dates.String())
			return nil, errs.Wrap(ErrBookingConflict, in.Dates.String())
		}
		return nil, repoErr(err, nil)
	}

	slog.Info("booking hold placed",
		"booking_id", b.ID(),
		"property_id", prop.ID(),
		"dates", in.Dates.String(),
		"total", b.Total(),
		"expires_at", b.ExpiresAt())
	return b, nil
}

func (u *bookingUseCaseImpl) DecideBooking(ctx context.Context, actor shared.Actor, id uuid.UUID, approve bool) (*booking.Booking, error) {
	event := booking.EventHostDeclined
	if approve {
		event = booking.EventHostApproved
	}

	var decided *booking.Booking
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		b, err := tx.Bookings().LockByID(ctx, id)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}
		prop, err := tx.Properties().FindByID(ctx, b.PropertyID())
		if err != nil {
			return repoErr(err, ErrPropertyNotFound)
		}
		if !actor.IsStaff() && !prop.IsManagedBy(actor.ID) {
			return ErrNotPropertyManager
		}

		from := b.Status()
		if approve {
			err = b.Approve(now)
		} else {
			err = b.Decline(now)
		}
		if err != nil {
			logRejectedTransition(b.ID(), event, from, err)
			return err
		}

		if err := u.saveTransition(ctx, tx, b, from); err != nil {
			return err
		}

		topic := notification.TopicBookingConfirmed
		if !approve {
			topic = notification.TopicBookingDeclined
		}
		if _, err := enqueue(ctx, tx, b.ID(), topic, []uuid.UUID{b.GuestID()}, bookingPayload(b), now); err != nil {
			return err
		}
		if b.PaymentStatus() == booking.PaymentRefundRequired {
			if _, err := enqueue(ctx, tx, b.ID(), notification.TopicRefundRequired, []uuid.UUID{b.GuestID()}, bookingPayload(b), now); err != nil {
				return err
			}
		}

		slog.Info("booking decided", "booking_id", b.ID(), "event", event.String(), "from", from.String(), "to", b.Status().String())
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*booking.Booking, error) {
	var cancelled *booking.Booking
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		b, err := tx.Bookings().LockByID(ctx, id)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}
		prop, err := tx.Properties().FindByID(ctx, b.PropertyID())
		if err != nil {
			return repoErr(err, ErrPropertyNotFound)
		}
		if !canCancel(actor, b, prop) {
			return ErrNotBookingGuest
		}

		from := b.Status()
		checkInAt := prop.RateCard().CheckInAt(b.Dates().CheckIn())
		if err := b.Cancel(checkInAt, now, reason, actor.IsStaff()); err != nil {
			logRejectedTransition(b.ID(), booking.EventCancelled, from, err)
			return err
		}

		if err := u.saveTransition(ctx, tx, b, from); err != nil {
			return err
		}

		recipients := append([]uuid.UUID{b.GuestID()}, managers(prop)...)
		payload := bookingPayload(b)
		payload["cancelled_by"] = actor.ID
		if _, err := enqueue(ctx, tx, b.ID(), notification.TopicBookingCancelled, recipients, payload, now); err != nil {
			return err
		}
		if b.PaymentStatus() == booking.PaymentRefundRequired {
			if _, err := enqueue(ctx, tx, b.ID(), notification.TopicRefundRequired, []uuid.UUID{b.GuestID()}, bookingPayload(b), now); err != nil {
				return err
			}
		}

		slog.Info("booking cancelled",
			"booking_id", b.ID(),
			"event", booking.EventCancelled.String(),
			"from", from.String(),
			"actor_id", actor.ID,
			"override", actor.IsStaff())
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (u *bookingUseCaseImpl) saveTransition(ctx context.Context, tx shared.Tx, b *booking.Booking, from booking.Status) error {
	updated, err := tx.Bookings().UpdateState(ctx, b, from)
	if err != nil {
		return repoErr(err, nil)
	}
	if !updated {
		return errs.Wrapf(booking.ErrInvalidTransition, "booking %s changed concurrently", b.ID())
	}
	return nil
}

func canCancel(actor shared.Actor, b *booking.Booking, prop *property.Property) bool {
	return actor.IsStaff() || b.GuestID() == actor.ID || prop.IsManagedBy(actor.ID)
}

func logRejectedTransition(id uuid.UUID, event booking.Event, from booking.Status, err error) {
	slog.Warn("booking transition rejected",
		"booking_id", id,
		"event", event.String(),
		"from", from.String(),
		"error", err.Error())
}

// expireLapsedHolds clears unpaid holds whose deadline passed but which the
// sweeper has not reached yet, so they stop blocking the overlap constraint.
func expireLapsedHolds(ctx context.Context, tx shared.Tx, propertyID uuid.UUID, window stay.DateRange, now time.Time) error {
	ids, err := tx.Bookings().LockLapsedHoldsOverlapping(ctx, propertyID, window, now)
	if err != nil {
		return repoErr(err, nil)
	}
	for _, id := range ids {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}
		if _, err := expireHold(ctx, tx, b, now); err != nil {
			return err
		}
	}
	return nil
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(map[string]any{
		"propertyId": in.PropertyID,
		"checkIn":    in.Dates.CheckIn().Format(stay.DateLayout),
		"checkOut":   in.Dates.CheckOut().Format(stay.DateLayout),
		"guestCount": in.GuestCount,
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
