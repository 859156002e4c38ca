package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../mock/commands/payment_mock.go -package=commandsmock

var ErrPayerEmailMissing = errs.Mark(errors.New("payer email is required to start a payment"), errs.ErrValidation)

type IntentResult struct {
	BookingID        uuid.UUID
	Reference        string
	AuthorizationURL string
	AccessCode       string
	Amount           int64
	Currency         string
	ExpiresAt        time.Time
}

type PaymentCommands interface {
	CreateIntent(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*IntentResult, error)
	// VerifyPayment asks the provider about reference right away. Provider
	// failures are returned as they are, without retry.
	VerifyPayment(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reference string) (*ReconcileOutcome, error)
	// HandleWebhook returns a nil outcome for authentic events that carry no payment result.
	HandleWebhook(ctx context.Context, signature string, body []byte) (*ReconcileOutcome, error)
}

type paymentUseCaseImpl struct {
	uow        shared.UnitOfWork
	provider   PaymentProvider
	reconciler ReconcileCommands
	cfg        config.JobsConfig
	clock      clock.Clock
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	provider PaymentProvider,
	reconciler ReconcileCommands,
	cfg config.JobsConfig,
	clock clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:        uow,
		provider:   provider,
		reconciler: reconciler,
		cfg:        cfg,
		clock:      clock,
	}
}

// CreateIntent opens a provider checkout for the booking total. The provider is
// called outside any transaction; the intent row is written afterwards and a
// webhook that races ahead of it adopts the reference instead.
func (u *paymentUseCaseImpl) CreateIntent(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*IntentResult, error) {
	if actor.Email == "" {
		return nil, ErrPayerEmailMissing
	}

	var held *booking.Booking
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}
		held = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkPayable(actor, held, u.clock.Now()); err != nil {
		return nil, err
	}

	reference := payment.NewReference(held.ID())
	session, err := u.provider.Initialize(ctx, payment.CheckoutRequest{
		Reference: reference,
		BookingID: held.ID(),
		Email:     actor.Email,
		Amount:    held.Total(),
		Currency:  held.Currency(),
	})
	if err != nil {
		slog.Warn("payment initialization failed",
			"booking_id", held.ID(),
			"reference", reference,
			"error", err.Error())
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		b, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}

		intent, err := payment.NewIntent(b.ID(), u.provider.Name(), reference, b.Total(), b.Currency(), now)
		if err != nil {
			return err
		}
		intent.SetAuthorizationURL(session.AuthorizationURL)
		if _, err := tx.PaymentIntents().InsertIfAbsent(ctx, intent); err != nil {
			return repoErr(err, nil)
		}

		if b.Status() != booking.StatusPendingPayment || b.PaymentStatus() == booking.PaymentPaid {
			// Settled by an earlier reference while the provider was called.
			return nil
		}
		if err := b.AttachPaymentReference(reference, now); err != nil {
			return err
		}
		if _, err := tx.Bookings().UpdateState(ctx, b, booking.StatusPendingPayment); err != nil {
			return repoErr(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payment intent created",
		"booking_id", held.ID(),
		"reference", reference,
		"amount", held.Total(),
		"currency", held.Currency())

	return &IntentResult{
		BookingID:        held.ID(),
		Reference:        reference,
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		Amount:           held.Total(),
		Currency:         held.Currency(),
		ExpiresAt:        held.ExpiresAt(),
	}, nil
}

func checkPayable(actor shared.Actor, b *booking.Booking, now time.Time) error {
	if b.GuestID() != actor.ID {
		return ErrNotBookingGuest
	}
	if b.PaymentStatus() == booking.PaymentPaid {
		return booking.ErrAlreadyPaid
	}
	if b.Status() != booking.StatusPendingPayment {
		return errs.Wrapf(ErrNotAwaitingPayment, "status %s", b.Status())
	}
	if b.HoldLapsed(now) {
		return errs.Wrapf(ErrHoldLapsed, "expired at %s", b.ExpiresAt().Format(time.RFC3339))
	}
	return nil
}

func (u *paymentUseCaseImpl) VerifyPayment(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, reference string) (*ReconcileOutcome, error) {
	if reference == "" {
		return nil, payment.ErrEmptyReference
	}

	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return repoErr(err, ErrBookingNotFound)
		}
		if b.GuestID() != actor.ID && !actor.IsStaff() {
			return ErrNotBookingGuest
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	timeout := u.cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	vctx, cancel := context.WithTimeout(ctx, timeout)
	event, err := u.provider.Verify(vctx, reference)
	cancel()
	if err != nil {
		return nil, err
	}

	if event.BookingID == uuid.Nil {
		event.BookingID = bookingID
	}
	if event.BookingID != bookingID {
		return nil, errs.Wrapf(ErrBookingMismatch, "reference %s", reference)
	}
	return u.reconciler.Apply(ctx, event)
}

func (u *paymentUseCaseImpl) HandleWebhook(ctx context.Context, signature string, body []byte) (*ReconcileOutcome, error) {
	event, ok, err := u.provider.ParseWebhook(signature, body)
	if err != nil {
		slog.Warn("webhook rejected", "error", err.Error())
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return u.reconciler.Apply(ctx, event)
}
