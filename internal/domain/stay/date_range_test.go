//go:build unit

package stay_test

import (
	"testing"
	"time"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		nights   int
		errIs    error
	}{
		{name: "three nights", checkIn: "2026-03-10", checkOut: "2026-03-13", nights: 3},
		{name: "across month end", checkIn: "2026-02-27", checkOut: "2026-03-02", nights: 3},
		{name: "same day", checkIn: "2026-03-10", checkOut: "2026-03-10", errIs: stay.ErrInvalidRange},
		{name: "reversed", checkIn: "2026-03-13", checkOut: "2026-03-10", errIs: stay.ErrInvalidRange},
		{name: "bad check-in", checkIn: "10/03/2026", checkOut: "2026-03-13", errIs: stay.ErrInvalidDate},
		{name: "bad check-out", checkIn: "2026-03-10", checkOut: "2026-02-30", errIs: stay.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := stay.ParseDateRange(tt.checkIn, tt.checkOut)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.True(t, errs.Is(err, errs.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nights, r.Nights())
			assert.Equal(t, "["+tt.checkIn+","+tt.checkOut+")", r.String())
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	base := stay.MustDateRange("2026-03-10", "2026-03-13")

	tests := []struct {
		name     string
		other    stay.DateRange
		overlaps bool
		touches  bool
	}{
		{name: "starts on checkout", other: stay.MustDateRange("2026-03-13", "2026-03-15"), overlaps: false, touches: true},
		{name: "ends on check-in", other: stay.MustDateRange("2026-03-08", "2026-03-10"), overlaps: false, touches: true},
		{name: "starts before checkout", other: stay.MustDateRange("2026-03-12", "2026-03-15"), overlaps: true, touches: true},
		{name: "contained", other: stay.MustDateRange("2026-03-11", "2026-03-12"), overlaps: true, touches: true},
		{name: "containing", other: stay.MustDateRange("2026-03-01", "2026-03-20"), overlaps: true, touches: true},
		{name: "disjoint", other: stay.MustDateRange("2026-03-14", "2026-03-16"), overlaps: false, touches: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
			assert.Equal(t, tt.touches, base.Touches(tt.other))
		})
	}
}

func TestDateRange_ClipAndUnion(t *testing.T) {
	r := stay.MustDateRange("2026-03-10", "2026-03-20")
	window := stay.MustDateRange("2026-03-15", "2026-03-31")

	clipped, ok := r.Clip(window)
	require.True(t, ok)
	assert.True(t, clipped.Equal(stay.MustDateRange("2026-03-15", "2026-03-20")))

	_, ok = r.Clip(stay.MustDateRange("2026-04-01", "2026-04-02"))
	assert.False(t, ok)

	u := r.Union(window)
	assert.True(t, u.Equal(stay.MustDateRange("2026-03-10", "2026-03-31")))
}

func TestDateHelpers(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)

	t.Run("Date drops the clock and zone", func(t *testing.T) {
		in := time.Date(2026, 3, 10, 23, 30, 0, 0, lagos)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), stay.Date(in))
	})

	t.Run("Today follows the given location", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), stay.Today(now, lagos))
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), stay.Today(now, nil))
	})

	t.Run("At places a wall clock in the location", func(t *testing.T) {
		d, err := stay.ParseDate("2026-03-10")
		require.NoError(t, err)
		at := stay.At(d, 14, 0, lagos)
		assert.True(t, at.Equal(time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)))
	})
}
