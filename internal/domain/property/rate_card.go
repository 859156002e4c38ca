package property

import (
	"errors"
	"time"

	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"
)

var (
	ErrInvalidRateCard = errs.Mark(errors.New("invalid rate card"), errs.ErrValidation)
	ErrInvalidTimezone = errs.Mark(errors.New("invalid property timezone"), errs.ErrValidation)
)

// RateCard holds the host-controlled booking settings of a property.
// It is read fresh for every operation; bookings copy what they need.
type RateCard struct {
	NightlyPrice       int64
	CleaningFee        int64
	Deposit            int64
	Currency           string
	MinNights          int
	MaxNights          int
	AdvanceNoticeHours int
	PrepDays           int
	CheckInTime        ClockTime
	CheckOutTime       ClockTime
	BookingMode        BookingMode
	CancellationPolicy CancellationPolicy
	Location           *time.Location
}

func (rc RateCard) Validate() error {
	switch {
	case rc.NightlyPrice < 0 || rc.CleaningFee < 0 || rc.Deposit < 0:
		return errs.Wrap(ErrInvalidRateCard, "amounts must not be negative")
	case len(rc.Currency) != 3:
		return errs.Wrap(ErrInvalidRateCard, "currency must be an ISO 4217 code")
	case rc.MinNights < 1:
		return errs.Wrap(ErrInvalidRateCard, "minimum nights must be at least 1")
	case rc.MaxNights < rc.MinNights:
		return errs.Wrap(ErrInvalidRateCard, "maximum nights below minimum nights")
	case rc.AdvanceNoticeHours < 0 || rc.PrepDays < 0:
		return errs.Wrap(ErrInvalidRateCard, "advance notice and prep days must not be negative")
	case !rc.BookingMode.IsValid():
		return ErrInvalidBookingMode
	case !rc.CancellationPolicy.IsValid():
		return ErrInvalidCancellationPolicy
	case rc.Location == nil:
		return ErrInvalidTimezone
	}
	return nil
}

func (rc RateCard) Rates() pricing.Rates {
	return pricing.Rates{
		NightlyPrice: rc.NightlyPrice,
		CleaningFee:  rc.CleaningFee,
		Deposit:      rc.Deposit,
	}
}

// CheckInAt is the instant a stay starting on date begins, in the property timezone.
func (rc RateCard) CheckInAt(date time.Time) time.Time {
	return stay.At(date, rc.CheckInTime.Hour, rc.CheckInTime.Minute, rc.location())
}

// CheckOutAt is the instant a stay ending on date is over.
func (rc RateCard) CheckOutAt(date time.Time) time.Time {
	return stay.At(date, rc.CheckOutTime.Hour, rc.CheckOutTime.Minute, rc.location())
}

// Today is the property's local calendar date at now.
func (rc RateCard) Today(now time.Time) time.Time {
	return stay.Today(now, rc.location())
}

func (rc RateCard) TimezoneName() string {
	return rc.location().String()
}

func (rc RateCard) location() *time.Location {
	if rc.Location == nil {
		return time.UTC
	}
	return rc.Location
}

func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidTimezone, "load %q", name)
	}
	return loc, nil
}
