package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payout"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payout.go -destination=../../mock/commands/payout_mock.go -package=commandsmock

const defaultPayoutBatchSize = 100

var (
	ErrStayNotCompleted   = errs.Mark(errors.New("booking is not a completed confirmed stay"), errs.ErrInvalidTransition)
	ErrSettlementCurrency = errs.Mark(errors.New("settlement currency differs from the payout currency"), errs.ErrValidation)
)

type PayoutReport struct {
	Scanned  int `json:"scanned"`
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Errors   int `json:"errors"`
}

type SettlementInput struct {
	Method    string
	Reference string
	Note      string
	// Currency is optional; when set it must match the payout.
	Currency string
}

type PayoutCommands interface {
	ResolveEligible(ctx context.Context, limit int) (*PayoutReport, error)
	// ResolveForBooking reports whether a payout row was created by this call.
	ResolveForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	MarkPaid(ctx context.Context, actor shared.Actor, payoutID uuid.UUID, in SettlementInput) (*payout.Payout, error)
}

type payoutUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPayoutUseCase(uow shared.UnitOfWork, clock clock.Clock) PayoutCommands {
	return &payoutUseCaseImpl{uow: uow, clock: clock}
}

func (u *payoutUseCaseImpl) ResolveEligible(ctx context.Context, limit int) (*PayoutReport, error) {
	if limit <= 0 {
		limit = defaultPayoutBatchSize
	}
	now := u.clock.Now()
	// The widest "today" across timezones is one day ahead of UTC; each
	// candidate is re-checked against its own property timezone.
	checkOutBefore := stay.Date(now).AddDate(0, 0, 1)

	var candidates []uuid.UUID
	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		candidates, err = tx.Bookings().ListPayoutCandidates(ctx, checkOutBefore, limit)
		return err
	})
	if err != nil {
		return nil, repoErr(err, nil)
	}

	report := &PayoutReport{Scanned: len(candidates)}
	for _, id := range candidates {
		var res resolveResult
		err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			res, err = resolvePayout(ctx, tx, id, now)
			return err
		})
		switch {
		case err != nil:
			report.Errors++
			slog.Error("failed to resolve payout", "booking_id", id, "error", err.Error())
		case res.created:
			report.Created++
		case res.eligible:
			report.Existing++
		}
	}

	slog.Info("payout resolution finished",
		"scanned", report.Scanned,
		"created", report.Created,
		"existing", report.Existing,
		"errors", report.Errors)
	return report, nil
}

func (u *payoutUseCaseImpl) ResolveForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var res resolveResult
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = resolvePayout(ctx, tx, bookingID, u.clock.Now())
		return err
	})
	if err != nil {
		return false, err
	}
	if !res.eligible {
		return false, errs.Wrapf(ErrStayNotCompleted, "booking %s", bookingID)
	}
	return res.created, nil
}

type resolveResult struct {
	eligible bool
	created  bool
}

func resolvePayout(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, now time.Time) (resolveResult, error) {
	b, err := tx.Bookings().LockByID(ctx, bookingID)
	if err != nil {
		return resolveResult{}, repoErr(err, ErrBookingNotFound)
	}
	prop, err := tx.Properties().FindByID(ctx, b.PropertyID())
	if err != nil {
		return resolveResult{}, repoErr(err, ErrPropertyNotFound)
	}

	today := stay.Today(now, prop.RateCard().Location)
	if !b.IsPayoutEligible(today) {
		slog.Debug("stay not completed yet", "booking_id", b.ID(), "status", b.Status().String())
		return resolveResult{}, nil
	}

	p := payout.NewEligible(b.ID(), prop.HostID(), b.Total(), b.Currency(), now)
	created, err := tx.Payouts().InsertIfAbsent(ctx, p)
	if err != nil {
		return resolveResult{}, repoErr(err, nil)
	}
	if !created {
		return resolveResult{eligible: true}, nil
	}

	if _, err := enqueue(ctx, tx, p.ID(), notification.TopicPayoutEligible, []uuid.UUID{prop.HostID()}, payoutPayload(p), now); err != nil {
		return resolveResult{}, err
	}
	slog.Info("payout eligible", "payout_id", p.ID(), "booking_id", b.ID(), "amount", p.Amount())
	return resolveResult{eligible: true, created: true}, nil
}

// MarkPaid records a manual settlement. Repeating it on a paid payout returns
// the stored record unchanged.
func (u *payoutUseCaseImpl) MarkPaid(ctx context.Context, actor shared.Actor, payoutID uuid.UUID, in SettlementInput) (*payout.Payout, error) {
	if !actor.IsStaff() {
		return nil, ErrOperatorOnly
	}

	var result *payout.Payout
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		p, err := tx.Payouts().LockByID(ctx, payoutID)
		if err != nil {
			return repoErr(err, ErrPayoutNotFound)
		}
		if in.Currency != "" && !strings.EqualFold(in.Currency, p.Currency()) {
			return errs.Wrapf(ErrSettlementCurrency, "%s != %s", in.Currency, p.Currency())
		}

		changed, err := p.MarkPaid(payout.Settlement{
			Method:    in.Method,
			Reference: in.Reference,
			Note:      in.Note,
			Actor:     actor.ID,
		}, now)
		if err != nil {
			return err
		}
		result = p
		if !changed {
			return nil
		}

		updated, err := tx.Payouts().MarkPaid(ctx, p)
		if err != nil {
			return repoErr(err, nil)
		}
		if !updated {
			return errs.Wrapf(payout.ErrNotEligible, "payout %s changed concurrently", p.ID())
		}

		if _, err := enqueue(ctx, tx, p.ID(), notification.TopicPayoutPaid, []uuid.UUID{p.HostID()}, payoutPayload(p), now); err != nil {
			return err
		}
		slog.Info("payout marked paid", "payout_id", p.ID(), "booking_id", p.BookingID(), "actor_id", actor.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func payoutPayload(p *payout.Payout) map[string]any {
	payload := map[string]any{
		"payout_id":  p.ID(),
		"booking_id": p.BookingID(),
		"amount":     p.Amount(),
		"currency":   p.Currency(),
		"status":     p.Status().String(),
	}
	if s := p.Settlement(); s != nil {
		payload["method"] = s.Method
		payload["reference"] = s.Reference
	}
	return payload
}
