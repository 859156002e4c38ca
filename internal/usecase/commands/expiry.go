package commands

import (
	"context"
	"log/slog"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=expiry.go -destination=../../mock/commands/expiry_mock.go -package=commandsmock

const defaultExpireBatchSize = 100

type ExpiryReport struct {
	Scanned  int `json:"scanned"`
	Expired  int `json:"expired"`
	Skipped  int `json:"skipped"`
	Notified int `json:"notified"`
	Errors   int `json:"errors"`
	// PurgedKeys counts idempotency keys past their retention.
	PurgedKeys int64 `json:"purgedKeys"`
}

type ExpiryCommands interface {
	ExpireDue(ctx context.Context, limit int) (*ExpiryReport, error)
}

type expiryUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpiryUseCase(uow shared.UnitOfWork, clock clock.Clock) ExpiryCommands {
	return &expiryUseCaseImpl{uow: uow, clock: clock}
}

// ExpireDue lapses unpaid holds past their deadline. Each booking is handled in
// its own transaction so one failure never blocks the rest of the batch.
func (u *expiryUseCaseImpl) ExpireDue(ctx context.Context, limit int) (*ExpiryReport, error) {
	if limit <= 0 {
		limit = defaultExpireBatchSize
	}
	now := u.clock.Now()

	var due []uuid.UUID
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Bookings().ListDueForExpiry(ctx, now, limit)
		return err
	})
	if err != nil {
		return nil, repoErr(err, nil)
	}

	report := &ExpiryReport{Scanned: len(due)}
	for i, id := range due {
		if ctx.Err() != nil {
			report.Errors += len(due) - i
			break
		}

		var res expireResult
		err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			res = expireResult{}
			b, err := tx.Bookings().LockByID(ctx, id)
			if err != nil {
				return repoErr(err, ErrBookingNotFound)
			}
			res, err = expireHold(ctx, tx, b, now)
			return err
		})
		if err != nil {
			report.Errors++
			slog.Error("failed to expire booking", "booking_id", id, "error", err.Error())
			continue
		}
		if !res.expired {
			report.Skipped++
			continue
		}
		report.Expired++
		report.Notified += res.notified
	}

	if err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, now)
		report.PurgedKeys = n
		return err
	}); err != nil {
		slog.Warn("failed to purge idempotency keys", "error", err.Error())
	}

	slog.Info("expiry sweep finished",
		"scanned", report.Scanned,
		"expired", report.Expired,
		"skipped", report.Skipped,
		"errors", report.Errors)
	return report, nil
}

type expireResult struct {
	expired  bool
	notified int
}

// expireHold is the single expiry path, shared by the sweeper and by booking
// creation when a lapsed hold sits on the requested dates. b must be locked.
func expireHold(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (expireResult, error) {
	if err := b.Expire(now); err != nil {
		if errs.IsAny(err, booking.ErrHoldNotLapsed, booking.ErrAlreadyPaid, booking.ErrInvalidTransition) {
			slog.Debug("booking not expirable",
				"booking_id", b.ID(),
				"status", b.Status().String(),
				"reason", err.Error())
			return expireResult{}, nil
		}
		return expireResult{}, err
	}

	updated, err := tx.Bookings().UpdateState(ctx, b, booking.StatusPendingPayment)
	if err != nil {
		return expireResult{}, repoErr(err, nil)
	}
	if !updated {
		// A concurrent writer moved the booking first.
		return expireResult{}, nil
	}

	notified, err := enqueue(ctx, tx, b.ID(), notification.TopicBookingExpired, []uuid.UUID{b.GuestID()}, bookingPayload(b), now)
	if err != nil {
		return expireResult{}, err
	}

	slog.Info("booking expired", "booking_id", b.ID(), "event", booking.EventHoldExpired.String())
	return expireResult{expired: true, notified: notified}, nil
}
