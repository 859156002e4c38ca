package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shortlet-booking/internal/domain/availability"
	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=reconcile.go -destination=../../mock/commands/reconcile_mock.go -package=commandsmock

const defaultReconcileBatchSize = 50

// ReconcileOutcome describes what applying one provider event did.
type ReconcileOutcome struct {
	Reference        string                `json:"reference"`
	BookingID        uuid.UUID             `json:"bookingId"`
	IntentStatus     payment.Status        `json:"intentStatus"`
	BookingStatus    booking.Status        `json:"bookingStatus"`
	PaymentStatus    booking.PaymentStatus `json:"paymentStatus"`
	AlreadyProcessed bool                  `json:"alreadyProcessed"`
	Activated        bool                  `json:"activated"`
}

type ReconcileReport struct {
	Scanned          int `json:"scanned"`
	Reconciled       int `json:"reconciled"`
	Activated        int `json:"activated"`
	AlreadyActivated int `json:"alreadyActivated"`
	StillPending     int `json:"stillPending"`
	VerifyFailed     int `json:"verifyFailed"`
	Errors           int `json:"errors"`
}

type ReconcileCommands interface {
	// Apply folds one provider event into intent and booking state. It is
	// idempotent per reference: a replay of a success reports AlreadyProcessed.
	Apply(ctx context.Context, event payment.ProviderEvent) (*ReconcileOutcome, error)
	ReconcileBatch(ctx context.Context, limit int) (*ReconcileReport, error)
}

type reconcileUseCaseImpl struct {
	uow      shared.UnitOfWork
	provider PaymentProvider
	cfg      config.JobsConfig
	clock    clock.Clock
	tracer   trace.Tracer
}

func NewReconcileUseCase(uow shared.UnitOfWork, provider PaymentProvider, cfg config.JobsConfig, clock clock.Clock) ReconcileCommands {
	return &reconcileUseCaseImpl{
		uow:      uow,
		provider: provider,
		cfg:      cfg,
		clock:    clock,
		tracer:   otel.Tracer("shortlet-booking/reconcile"),
	}
}

func (u *reconcileUseCaseImpl) Apply(ctx context.Context, event payment.ProviderEvent) (*ReconcileOutcome, error) {
	ctx, span := u.tracer.Start(ctx, "Reconciler.Apply", trace.WithAttributes(
		attribute.String("payment.reference", event.Reference),
		attribute.String("payment.outcome", string(event.Outcome)),
	))
	defer span.End()

	if err := event.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var res applied
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = u.apply(ctx, tx, event, u.clock.Now())
		return err
	})
	if errors.Is(err, ErrDuplicatePayment) {
		// The succeeded-intent unique index rejected a second success.
		slog.Warn("duplicate successful payment ignored",
			"reference", event.Reference,
			"booking_id", event.BookingID)
		return u.duplicateOutcome(ctx, event)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("reconcile.already_processed", res.out.AlreadyProcessed),
		attribute.Bool("reconcile.activated", res.out.Activated),
	)
	if res.verdict != nil {
		span.SetStatus(codes.Error, res.verdict.Error())
		return res.out, res.verdict
	}
	return res.out, nil
}

func (u *reconcileUseCaseImpl) duplicateOutcome(ctx context.Context, event payment.ProviderEvent) (*ReconcileOutcome, error) {
	out := &ReconcileOutcome{
		Reference:        event.Reference,
		BookingID:        event.BookingID,
		IntentStatus:     payment.StatusPending,
		AlreadyProcessed: true,
	}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if out.BookingID == uuid.Nil {
			intent, err := tx.PaymentIntents().LockByReference(ctx, event.Reference)
			if err != nil {
				return repoErr(err, ErrIntentNotFound)
			}
			out.BookingID = intent.BookingID()
		}
		_, err := u.withBooking(ctx, tx, out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applied carries a verdict error that describes committed state (a refund
// case or an amount mismatch) separately from errors that abort the transaction.
type applied struct {
	out     *ReconcileOutcome
	verdict error
}

func (u *reconcileUseCaseImpl) apply(
	ctx context.Context,
	tx shared.Tx,
	event payment.ProviderEvent,
	now time.Time,
) (applied, error) {
	intent, err := u.lockOrAdoptIntent(ctx, tx, event, now)
	if err != nil {
		return applied{}, err
	}
	if event.BookingID != uuid.Nil && event.BookingID != intent.BookingID() {
		return applied{}, errs.Wrapf(ErrBookingMismatch, "reference %s", event.Reference)
	}

	out := &ReconcileOutcome{
		Reference:    intent.Reference(),
		BookingID:    intent.BookingID(),
		IntentStatus: intent.Status(),
	}

	if intent.Status() == payment.StatusSucceeded {
		slog.Info("payment event already processed",
			"reference", intent.Reference(),
			"booking_id", intent.BookingID(),
			"outcome", string(event.Outcome))
		out.AlreadyProcessed = true
		return u.withBooking(ctx, tx, out)
	}

	switch event.Outcome {
	case payment.OutcomePending:
		return u.withBooking(ctx, tx, out)
	case payment.OutcomeFailed, payment.OutcomeAbandoned:
		if err := u.failIntent(ctx, tx, intent, event, now); err != nil {
			return applied{}, err
		}
		// The booking is left for the expiry sweeper.
		out.IntentStatus = intent.Status()
		return u.withBooking(ctx, tx, out)
	}

	b, err := tx.Bookings().LockByID(ctx, intent.BookingID())
	if err != nil {
		return applied{}, repoErr(err, ErrBookingNotFound)
	}
	fillBooking(out, b)

	if !event.Matches(b.Total(), b.Currency()) {
		if err := u.failIntent(ctx, tx, intent, event, now); err != nil {
			return applied{}, err
		}
		out.IntentStatus = intent.Status()
		slog.Warn("payment amount mismatch",
			"reference", intent.Reference(),
			"booking_id", b.ID(),
			"paid", event.Amount,
			"paid_currency", event.Currency,
			"expected", b.Total(),
			"expected_currency", b.Currency())
		return applied{
			out:     out,
			verdict: errs.Wrapf(ErrAmountMismatch, "paid %d %s, expected %d %s", event.Amount, event.Currency, b.Total(), b.Currency()),
		}, nil
	}

	succeeded, err := tx.PaymentIntents().CountSucceeded(ctx, b.ID())
	if err != nil {
		return applied{}, repoErr(err, nil)
	}
	if succeeded > 0 {
		slog.Warn("booking already has a successful payment",
			"reference", intent.Reference(),
			"booking_id", b.ID())
		out.AlreadyProcessed = true
		return applied{out: out}, nil
	}

	if err := intent.MarkSucceeded(event.Raw, now); err != nil {
		return applied{}, err
	}
	if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return applied{}, errs.Wrap(ErrDuplicatePayment, intent.Reference())
		}
		return applied{}, repoErr(err, nil)
	}
	out.IntentStatus = intent.Status()

	wasHeld := b.Status() == booking.StatusPendingPayment
	verdict, err := u.settleBooking(ctx, tx, b, intent.Reference(), now)
	if err != nil {
		return applied{}, err
	}
	fillBooking(out, b)
	out.Activated = wasHeld && verdict == nil
	return applied{out: out, verdict: verdict}, nil
}

// settleBooking applies captured money to the booking. A non-nil verdict is a
// refund case whose state must still be committed.
func (u *reconcileUseCaseImpl) settleBooking(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	reference string,
	now time.Time,
) (verdict error, err error) {
	from := b.Status()

	prop, err := tx.Properties().LockByID(ctx, b.PropertyID())
	if err != nil {
		return nil, repoErr(err, ErrPropertyNotFound)
	}

	if from != booking.StatusPendingPayment {
		if b.PaymentStatus() == booking.PaymentPaid {
			// Paid through an earlier reference; nothing left to apply.
			return nil, nil
		}
		outcome := errs.Wrapf(ErrRefundRequired, "booking %s is %s", b.ID(), from)
		return outcome, u.flagRefund(ctx, tx, b, from, now, outcome)
	}

	if conflict := u.revalidate(ctx, tx, b, prop, now); conflict != nil {
		if !errs.Is(conflict, errs.ErrAvailabilityConflict) {
			return nil, conflict
		}
		return conflict, u.flagRefund(ctx, tx, b, from, now, conflict)
	}

	if err := b.ApplyPayment(reference, now); err != nil {
		logRejectedTransition(b.ID(), booking.EventPaymentSucceeded, from, err)
		return nil, err
	}
	updated, err := tx.Bookings().UpdateState(ctx, b, from)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	if !updated {
		return nil, errs.Wrapf(booking.ErrInvalidTransition, "booking %s changed concurrently", b.ID())
	}

	topic := notification.TopicBookingConfirmed
	if b.Status() == booking.StatusPending {
		topic = notification.TopicBookingAwaitingHost
	}
	recipients := append([]uuid.UUID{b.GuestID()}, managers(prop)...)
	if _, err := enqueue(ctx, tx, b.ID(), topic, recipients, bookingPayload(b), now); err != nil {
		return nil, err
	}

	slog.Info("booking payment applied",
		"booking_id", b.ID(),
		"event", booking.EventPaymentSucceeded.String(),
		"from", from.String(),
		"to", b.Status().String(),
		"reference", reference)
	return nil, nil
}

// revalidate checks that no pending or confirmed booking took the dates, prep
// days included, while this hold waited for its payment.
func (u *reconcileUseCaseImpl) revalidate(ctx context.Context, tx shared.Tx, b *booking.Booking, prop *property.Property, now time.Time) error {
	prepDays := prop.RateCard().PrepDays
	window := availability.PaddedWindow(b.Dates(), prepDays)
	self := b.ID()

	stays, err := tx.Bookings().ListOccupying(ctx, shared.OccupancyQuery{
		PropertyID: b.PropertyID(),
		Now:        now,
		Window:     &window,
		ExcludeID:  &self,
	})
	if err != nil {
		return repoErr(err, nil)
	}

	occupied := make([]availability.UnavailableRange, 0, len(stays))
	for _, s := range stays {
		if s.Status != booking.StatusPending && s.Status != booking.StatusConfirmed {
			continue
		}
		occupied = append(occupied, availability.UnavailableRange{Dates: s.Dates, Source: availability.SourceBooking})
	}
	return availability.CheckConflicts(b.Dates(), availability.Resolve(occupied, &window), prepDays)
}

func (u *reconcileUseCaseImpl) flagRefund(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	from booking.Status,
	now time.Time,
	reason error,
) error {
	b.RequireRefund(now)
	updated, err := tx.Bookings().UpdateState(ctx, b, from)
	if err != nil {
		return repoErr(err, nil)
	}
	if !updated {
		return errs.Wrapf(booking.ErrInvalidTransition, "booking %s changed concurrently", b.ID())
	}
	if _, err := enqueue(ctx, tx, b.ID(), notification.TopicRefundRequired, []uuid.UUID{b.GuestID()}, bookingPayload(b), now); err != nil {
		return err
	}
	slog.Warn("captured payment needs refund",
		"booking_id", b.ID(),
		"event", booking.EventPaymentSucceeded.String(),
		"from", from.String(),
		"reason", reason.Error())
	return nil
}

func (u *reconcileUseCaseImpl) lockOrAdoptIntent(ctx context.Context, tx shared.Tx, event payment.ProviderEvent, now time.Time) (*payment.Intent, error) {
	intent, err := tx.PaymentIntents().LockByReference(ctx, event.Reference)
	if err == nil {
		return intent, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, repoErr(err, nil)
	}
	if event.BookingID == uuid.Nil {
		return nil, errs.Wrapf(ErrIntentNotFound, "reference %s", event.Reference)
	}

	// The provider can report a reference before the intent row that created it commits.
	if _, err := tx.Bookings().FindByID(ctx, event.BookingID); err != nil {
		return nil, repoErr(err, ErrBookingNotFound)
	}
	fresh, err := payment.FromEvent(event, now)
	if err != nil {
		return nil, err
	}
	if _, err := tx.PaymentIntents().InsertIfAbsent(ctx, fresh); err != nil {
		return nil, repoErr(err, nil)
	}
	slog.Info("payment intent adopted from provider event",
		"reference", event.Reference,
		"booking_id", event.BookingID)

	intent, err = tx.PaymentIntents().LockByReference(ctx, event.Reference)
	if err != nil {
		return nil, repoErr(err, ErrIntentNotFound)
	}
	return intent, nil
}

func (u *reconcileUseCaseImpl) failIntent(ctx context.Context, tx shared.Tx, intent *payment.Intent, event payment.ProviderEvent, now time.Time) error {
	if err := intent.MarkFailed(event.Raw, now); err != nil {
		return err
	}
	if err := tx.PaymentIntents().Update(ctx, intent); err != nil {
		return repoErr(err, nil)
	}
	slog.Info("payment intent failed",
		"reference", intent.Reference(),
		"booking_id", intent.BookingID(),
		"outcome", string(event.Outcome))
	return nil
}

func (u *reconcileUseCaseImpl) withBooking(ctx context.Context, tx shared.Tx, out *ReconcileOutcome) (applied, error) {
	b, err := tx.Bookings().FindByID(ctx, out.BookingID)
	if err != nil {
		return applied{}, repoErr(err, ErrBookingNotFound)
	}
	fillBooking(out, b)
	return applied{out: out}, nil
}

func fillBooking(out *ReconcileOutcome, b *booking.Booking) {
	out.BookingStatus = b.Status()
	out.PaymentStatus = b.PaymentStatus()
}

// ReconcileBatch verifies intents that have gone without a provider verdict
// for longer than the SLA. Failures are isolated per intent.
func (u *reconcileUseCaseImpl) ReconcileBatch(ctx context.Context, limit int) (*ReconcileReport, error) {
	ctx, span := u.tracer.Start(ctx, "Reconciler.ReconcileBatch")
	defer span.End()

	if limit <= 0 {
		limit = defaultReconcileBatchSize
	}
	now := u.clock.Now()
	staleBefore := now.Add(-u.cfg.ReconcileSLA)
	createdAfter := now.Add(-u.cfg.ReconcileLookback)

	var stale []shared.StaleIntent
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stale, err = tx.PaymentIntents().ListStalePending(ctx, staleBefore, createdAfter, limit)
		return err
	})
	if err != nil {
		err = repoErr(err, nil)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &ReconcileReport{Scanned: len(stale)}
	for _, s := range stale {
		event, err := u.verify(ctx, s.Reference)
		if err != nil {
			report.VerifyFailed++
			slog.Warn("payment verification failed",
				"reference", s.Reference,
				"booking_id", s.BookingID,
				"error", err.Error())
			u.requeue(ctx, s)
			continue
		}
		if event.BookingID == uuid.Nil {
			event.BookingID = s.BookingID
		}
		if event.Outcome == payment.OutcomePending {
			report.StillPending++
			u.requeue(ctx, s)
			continue
		}

		out, err := u.Apply(ctx, event)
		switch {
		case err == nil:
		case out != nil:
			// Committed with a refund or mismatch verdict.
			slog.Warn("payment reconciled with error outcome",
				"reference", s.Reference,
				"booking_id", s.BookingID,
				"error", err.Error())
		default:
			report.Errors++
			slog.Error("failed to reconcile payment",
				"reference", s.Reference,
				"booking_id", s.BookingID,
				"error", err.Error())
			continue
		}

		report.Reconciled++
		switch {
		case out.AlreadyProcessed:
			report.AlreadyActivated++
		case out.Activated:
			report.Activated++
		}
	}

	span.SetAttributes(
		attribute.Int("reconcile.scanned", report.Scanned),
		attribute.Int("reconcile.activated", report.Activated),
		attribute.Int("reconcile.errors", report.Errors),
	)
	slog.Info("payment reconciliation finished",
		"scanned", report.Scanned,
		"reconciled", report.Reconciled,
		"activated", report.Activated,
		"already_activated", report.AlreadyActivated,
		"still_pending", report.StillPending,
		"verify_failed", report.VerifyFailed,
		"errors", report.Errors)
	return report, nil
}

// requeue puts an intent without a verdict behind the rest of the stale set,
// so a batch full of stuck intents cannot hide newer ones.
func (u *reconcileUseCaseImpl) requeue(ctx context.Context, s shared.StaleIntent) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.PaymentIntents().Touch(ctx, s.Reference, u.clock.Now())
		return err
	})
	if err != nil {
		slog.Warn("failed to requeue payment intent",
			"reference", s.Reference,
			"booking_id", s.BookingID,
			"error", err.Error())
	}
}

func (u *reconcileUseCaseImpl) verify(ctx context.Context, reference string) (payment.ProviderEvent, error) {
	timeout := u.cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	vctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return u.provider.Verify(vctx, reference)
}
