package availability

import (
	"errors"
	"sort"
	"time"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"
)

var (
	ErrNightsOutOfRange  = errs.Mark(errors.New("stay length outside allowed nights"), errs.ErrValidation)
	ErrAdvanceNotice     = errs.Mark(errors.New("check-in is inside the advance notice period"), errs.ErrValidation)
	ErrDatesUnavailable  = errs.Mark(errors.New("dates are not available"), errs.ErrAvailabilityConflict)
	ErrPrepDaysViolation = errs.Mark(errors.New("dates fall inside the preparation buffer of another stay"), errs.ErrAvailabilityConflict)
)

type Source string

const (
	SourceBooking Source = "booking"
	SourceBlock   Source = "block"
)

// UnavailableRange is a derived, never persisted, occupied span of a property calendar.
type UnavailableRange struct {
	Dates  stay.DateRange
	Source Source
}

// Resolve orders and merges occupied ranges. Ranges of the same source that
// overlap or touch are merged; ranges of different sources are kept apart so
// the prep-day rule can still tell bookings from blocks. A block lying wholly
// inside a booking range is dropped, as the booking already covers it. When
// window is set, only ranges intersecting it are returned (unclipped).
func Resolve(occupied []UnavailableRange, window *stay.DateRange) []UnavailableRange {
	filtered := make([]UnavailableRange, 0, len(occupied))
	for _, u := range occupied {
		if u.Dates.IsZero() {
			continue
		}
		if window != nil && !u.Dates.Overlaps(*window) {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Dates.CheckIn().Before(b.Dates.CheckIn())
	})

	merged := make([]UnavailableRange, 0, len(filtered))
	for _, u := range filtered {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Source == u.Source && last.Dates.Touches(u.Dates) {
				last.Dates = last.Dates.Union(u.Dates)
				continue
			}
		}
		merged = append(merged, u)
	}
	merged = dropCoveredBlocks(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].Dates, merged[j].Dates
		if !a.CheckIn().Equal(b.CheckIn()) {
			return a.CheckIn().Before(b.CheckIn())
		}
		if !a.CheckOut().Equal(b.CheckOut()) {
			return a.CheckOut().Before(b.CheckOut())
		}
		return merged[i].Source < merged[j].Source
	})
	return merged
}

func dropCoveredBlocks(ranges []UnavailableRange) []UnavailableRange {
	out := make([]UnavailableRange, 0, len(ranges))
	for _, u := range ranges {
		if u.Source == SourceBlock && coveredByBooking(u.Dates, ranges) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func coveredByBooking(r stay.DateRange, ranges []UnavailableRange) bool {
	for _, b := range ranges {
		if b.Source != SourceBooking {
			continue
		}
		if !b.Dates.CheckIn().After(r.CheckIn()) && !b.Dates.CheckOut().Before(r.CheckOut()) {
			return true
		}
	}
	return false
}

// Check decides whether candidate can be booked. Rule failures on the stay itself
// (length, notice) are validation errors; clashes with the calendar are conflicts.
func Check(candidate stay.DateRange, rc property.RateCard, unavailable []UnavailableRange, now time.Time) error {
	nights := candidate.Nights()
	if nights < rc.MinNights || (rc.MaxNights > 0 && nights > rc.MaxNights) {
		return errs.Wrapf(ErrNightsOutOfRange, "%d nights, allowed %d-%d", nights, rc.MinNights, rc.MaxNights)
	}

	earliest := now.Add(time.Duration(rc.AdvanceNoticeHours) * time.Hour)
	if rc.CheckInAt(candidate.CheckIn()).Before(earliest) {
		return errs.Wrapf(ErrAdvanceNotice, "requires %dh notice", rc.AdvanceNoticeHours)
	}

	return CheckConflicts(candidate, unavailable, rc.PrepDays)
}

// CheckConflicts applies the overlap and prep-day rules only. Prep days separate
// a candidate from booking-sourced ranges in both directions; blocks carry no buffer.
func CheckConflicts(candidate stay.DateRange, unavailable []UnavailableRange, prepDays int) error {
	buffer := time.Duration(prepDays) * 24 * time.Hour
	for _, u := range unavailable {
		if candidate.Overlaps(u.Dates) {
			return errs.Wrapf(ErrDatesUnavailable, "%s overlaps %s %s", candidate, u.Source, u.Dates)
		}
		if u.Source != SourceBooking || prepDays == 0 {
			continue
		}
		// Candidate starts after u.
		if !candidate.CheckIn().Before(u.Dates.CheckOut()) && candidate.CheckIn().Before(u.Dates.CheckOut().Add(buffer)) {
			return errs.Wrapf(ErrPrepDaysViolation, "%s starts within %d prep days of %s", candidate, prepDays, u.Dates)
		}
		// Candidate ends before u.
		if !candidate.CheckOut().After(u.Dates.CheckIn()) && candidate.CheckOut().Add(buffer).After(u.Dates.CheckIn()) {
			return errs.Wrapf(ErrPrepDaysViolation, "%s ends within %d prep days of %s", candidate, prepDays, u.Dates)
		}
	}
	return nil
}

// PaddedWindow widens a lookup window by the prep buffer so neighbouring stays
// that only matter for the prep-day rule are loaded too.
func PaddedWindow(candidate stay.DateRange, prepDays int) stay.DateRange {
	pad := time.Duration(prepDays) * 24 * time.Hour
	r, _ := stay.NewDateRange(candidate.CheckIn().Add(-pad), candidate.CheckOut().Add(pad))
	return r
}
