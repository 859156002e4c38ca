package property

import (
	"errors"
	"fmt"
	"time"

	"shortlet-booking/internal/pkg/errs"
)

var (
	ErrInvalidBookingMode        = errs.Mark(errors.New("invalid booking mode"), errs.ErrValidation)
	ErrInvalidCancellationPolicy = errs.Mark(errors.New("invalid cancellation policy"), errs.ErrValidation)
	ErrInvalidClockTime          = errs.Mark(errors.New("clock time must use HH:MM"), errs.ErrValidation)
)

type BookingMode string

const (
	BookingModeInstant BookingMode = "instant"
	BookingModeRequest BookingMode = "request"
)

func (m BookingMode) String() string {
	return string(m)
}

func (m BookingMode) IsValid() bool {
	switch m {
	case BookingModeInstant, BookingModeRequest:
		return true
	default:
		return false
	}
}

func NewBookingMode(s string) (BookingMode, error) {
	m := BookingMode(s)
	if !m.IsValid() {
		return "", ErrInvalidBookingMode
	}
	return m, nil
}

type CancellationPolicy string

const (
	CancellationFlexible CancellationPolicy = "flexible"
	CancellationModerate CancellationPolicy = "moderate"
	CancellationStrict   CancellationPolicy = "strict"
)

func (p CancellationPolicy) String() string {
	return string(p)
}

func (p CancellationPolicy) IsValid() bool {
	_, ok := cancellationWindows[p]
	return ok
}

func NewCancellationPolicy(s string) (CancellationPolicy, error) {
	p := CancellationPolicy(s)
	if !p.IsValid() {
		return "", ErrInvalidCancellationPolicy
	}
	return p, nil
}

var cancellationWindows = map[CancellationPolicy]time.Duration{
	CancellationFlexible: 24 * time.Hour,
	CancellationModerate: 5 * 24 * time.Hour,
	CancellationStrict:   14 * 24 * time.Hour,
}

// Window is how long before the check-in instant a guest may still cancel.
func (p CancellationPolicy) Window() time.Duration {
	return cancellationWindows[p]
}

// Allows reports whether a cancellation at now is inside the policy window.
func (p CancellationPolicy) Allows(checkInAt, now time.Time) bool {
	if !p.IsValid() {
		return false
	}
	return !now.After(checkInAt.Add(-p.Window()))
}

// ClockTime is a local wall-clock time such as a check-in time.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, errs.Wrapf(ErrInvalidClockTime, "parse %q", s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
