package stay

import (
	"errors"
	"fmt"
	"time"

	"shortlet-booking/internal/pkg/errs"
)

// DateLayout is the wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidRange = errs.Mark(errors.New("check-out must be after check-in"), errs.ErrValidation)
	ErrInvalidDate  = errs.Mark(errors.New("dates must use YYYY-MM-DD"), errs.ErrValidation)
)

// Date truncates t to its calendar date, represented as midnight UTC.
// Calendar dates carry no timezone; the property timezone is applied only
// when a date is turned into an instant (see At).
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Wrapf(ErrInvalidDate, "parse %q", s)
	}
	return t, nil
}

// At returns the instant at which the calendar date reaches clock time hh:mm in loc.
func At(date time.Time, hour, minute int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}

// Today is the calendar date of now as observed in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Date(now.In(loc))
}

// DateRange is a half-open range of calendar dates [checkIn, checkOut).
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in, out := Date(checkIn), Date(checkOut)
	if !in.Before(out) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{checkIn: in, checkOut: out}, nil
}

func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(in, out)
}

// MustDateRange is for fixtures and tests.
func MustDateRange(checkIn, checkOut string) DateRange {
	r, err := ParseDateRange(checkIn, checkOut)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }
func (r DateRange) IsZero() bool        { return r.checkIn.IsZero() && r.checkOut.IsZero() }

func (r DateRange) Nights() int {
	return DaysBetween(r.checkIn, r.checkOut)
}

// Overlaps uses half-open semantics: a checkout equal to the other check-in does not intersect.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.checkIn.Before(o.checkOut) && o.checkIn.Before(r.checkOut)
}

// Touches reports overlap or direct adjacency.
func (r DateRange) Touches(o DateRange) bool {
	return !r.checkIn.After(o.checkOut) && !o.checkIn.After(r.checkOut)
}

func (r DateRange) Union(o DateRange) DateRange {
	in, out := r.checkIn, r.checkOut
	if o.checkIn.Before(in) {
		in = o.checkIn
	}
	if o.checkOut.After(out) {
		out = o.checkOut
	}
	return DateRange{checkIn: in, checkOut: out}
}

// Clip restricts r to the window; ok is false when nothing remains.
func (r DateRange) Clip(window DateRange) (DateRange, bool) {
	if !r.Overlaps(window) {
		return DateRange{}, false
	}
	in, out := r.checkIn, r.checkOut
	if window.checkIn.After(in) {
		in = window.checkIn
	}
	if window.checkOut.Before(out) {
		out = window.checkOut
	}
	return DateRange{checkIn: in, checkOut: out}, true
}

func (r DateRange) Equal(o DateRange) bool {
	return r.checkIn.Equal(o.checkIn) && r.checkOut.Equal(o.checkOut)
}

// String renders the Postgres daterange literal.
func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format(DateLayout), r.checkOut.Format(DateLayout))
}

func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}
