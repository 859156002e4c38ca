package queries

import (
	"context"
	"errors"
	"time"

	"shortlet-booking/internal/domain/availability"
	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/infra"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../mock/queries/availability_mock.go -package=queriesmock

const defaultAvailabilityDays = 365

var (
	ErrPropertyNotFound = errs.Mark(errors.New("property not found"), errs.ErrNotFound)
	ErrWindowTooWide    = errs.Mark(errors.New("availability window is too wide"), errs.ErrValidation)
)

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, propertyID uuid.UUID, window stay.DateRange) (*AvailabilityView, error)
	// Quote prices a stay and reports whether it could be booked right now.
	Quote(ctx context.Context, propertyID uuid.UUID, dates stay.DateRange) (*QuoteView, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	cfg   config.BookingConfig
	clock clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cfg config.BookingConfig, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, cfg: cfg, clock: clock}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, propertyID uuid.UUID, window stay.DateRange) (*AvailabilityView, error) {
	if q.cfg.AvailabilitySpan > 0 && window.Nights() > q.cfg.AvailabilitySpan {
		return nil, errs.Wrapf(ErrWindowTooWide, "%d days, at most %d", window.Nights(), q.cfg.AvailabilitySpan)
	}

	var view *AvailabilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Properties().FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		now := q.clock.Now()
		if window.IsZero() {
			window = q.defaultWindow(prop.RateCard().Today(now))
		}
		unavailable, err := shared.LoadUnavailable(ctx, tx, propertyID, &window, now, nil)
		if err != nil {
			return err
		}

		ranges := make([]UnavailableRangeView, 0, len(unavailable))
		for _, u := range unavailable {
			ranges = append(ranges, UnavailableRangeView{
				CheckIn:  u.Dates.CheckIn().Format(stay.DateLayout),
				CheckOut: u.Dates.CheckOut().Format(stay.DateLayout),
				Source:   string(u.Source),
			})
		}

		rc := prop.RateCard()
		view = &AvailabilityView{
			PropertyID:  propertyID,
			From:        window.CheckIn().Format(stay.DateLayout),
			To:          window.CheckOut().Format(stay.DateLayout),
			Unavailable: ranges,
			RateCard:    toRateCardView(rc),
			BookingMode: rc.BookingMode.String(),
		}
		return nil
	})
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) Quote(ctx context.Context, propertyID uuid.UUID, dates stay.DateRange) (*QuoteView, error) {
	if dates.IsZero() {
		return nil, stay.ErrInvalidRange
	}

	var view *QuoteView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		prop, err := tx.Properties().FindByID(ctx, propertyID)
		if err != nil {
			return err
		}
		rc := prop.RateCard()

		breakdown, err := pricing.Quote(dates, rc.Rates())
		if err != nil {
			return err
		}

		window := availability.PaddedWindow(dates, rc.PrepDays)
		now := q.clock.Now()
		unavailable, err := shared.LoadUnavailable(ctx, tx, propertyID, &window, now, nil)
		if err != nil {
			return err
		}

		view = &QuoteView{
			PropertyID:   propertyID,
			CheckIn:      dates.CheckIn().Format(stay.DateLayout),
			CheckOut:     dates.CheckOut().Format(stay.DateLayout),
			Nights:       breakdown.Nights,
			NightlyPrice: breakdown.NightlyPrice,
			Subtotal:     breakdown.Subtotal,
			CleaningFee:  breakdown.CleaningFee,
			Deposit:      breakdown.Deposit,
			Total:        breakdown.Total,
			Currency:     rc.Currency,
			BookingMode:  rc.BookingMode.String(),
			Available:    true,
		}
		if verdict := availability.Check(dates, rc, unavailable, now); verdict != nil {
			view.Available = false
			view.Reason = verdict.Error()
		}
		return nil
	})
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

// defaultWindow starts at the property's today and spans the configured maximum.
func (q *availabilityQueriesImpl) defaultWindow(today time.Time) stay.DateRange {
	days := q.cfg.AvailabilitySpan
	if days <= 0 {
		days = defaultAvailabilityDays
	}
	window, _ := stay.NewDateRange(today, today.AddDate(0, 0, days))
	return window
}

func toRateCardView(rc property.RateCard) RateCardView {
	return RateCardView{
		NightlyPrice:       rc.NightlyPrice,
		CleaningFee:        rc.CleaningFee,
		Deposit:            rc.Deposit,
		Currency:           rc.Currency,
		MinNights:          rc.MinNights,
		MaxNights:          rc.MaxNights,
		AdvanceNoticeHours: rc.AdvanceNoticeHours,
		PrepDays:           rc.PrepDays,
		CheckInTime:        rc.CheckInTime.String(),
		CheckOutTime:       rc.CheckOutTime.String(),
		CancellationPolicy: rc.CancellationPolicy.String(),
		Timezone:           rc.TimezoneName(),
	}
}

func mapReadErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrPropertyNotFound
	case errs.IsAny(err, errs.ErrValidation, errs.ErrNotFound):
		return err
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
