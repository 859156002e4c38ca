//go:build unit

package property_test

import (
	"strings"
	"testing"
	"time"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationPolicy_Allows(t *testing.T) {
	checkInAt := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		policy property.CancellationPolicy
		before time.Duration
		want   bool
	}{
		{policy: property.CancellationFlexible, before: 24 * time.Hour, want: true},
		{policy: property.CancellationFlexible, before: 24*time.Hour - time.Second, want: false},
		{policy: property.CancellationModerate, before: 5 * 24 * time.Hour, want: true},
		{policy: property.CancellationModerate, before: 4 * 24 * time.Hour, want: false},
		{policy: property.CancellationStrict, before: 14 * 24 * time.Hour, want: true},
		{policy: property.CancellationStrict, before: 13 * 24 * time.Hour, want: false},
		{policy: "lenient", before: 365 * 24 * time.Hour, want: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+tt.before.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Allows(checkInAt, checkInAt.Add(-tt.before)))
		})
	}
}

func TestParseEnums(t *testing.T) {
	mode, err := property.NewBookingMode("request")
	require.NoError(t, err)
	assert.Equal(t, property.BookingModeRequest, mode)

	_, err = property.NewBookingMode("auto")
	assert.ErrorIs(t, err, property.ErrInvalidBookingMode)

	policy, err := property.NewCancellationPolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, 14*24*time.Hour, policy.Window())

	_, err = property.NewCancellationPolicy("")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestParseClockTime(t *testing.T) {
	c, err := property.ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, property.ClockTime{Hour: 9, Minute: 30}, c)
	assert.Equal(t, "09:30", c.String())

	for _, in := range []string{"", "9", "25:00", "12:60", "noon"} {
		_, err := property.ParseClockTime(in)
		assert.ErrorIs(t, err, property.ErrInvalidClockTime, in)
	}
}

func TestRateCard_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*property.RateCard)
		errIs  error
	}{
		{name: "valid", mutate: func(*property.RateCard) {}},
		{name: "negative fee", mutate: func(rc *property.RateCard) { rc.CleaningFee = -1 }, errIs: property.ErrInvalidRateCard},
		{name: "bad currency", mutate: func(rc *property.RateCard) { rc.Currency = "NG" }, errIs: property.ErrInvalidRateCard},
		{name: "zero min nights", mutate: func(rc *property.RateCard) { rc.MinNights = 0 }, errIs: property.ErrInvalidRateCard},
		{name: "max below min", mutate: func(rc *property.RateCard) { rc.MinNights, rc.MaxNights = 5, 3 }, errIs: property.ErrInvalidRateCard},
		{name: "negative prep", mutate: func(rc *property.RateCard) { rc.PrepDays = -1 }, errIs: property.ErrInvalidRateCard},
		{name: "unknown mode", mutate: func(rc *property.RateCard) { rc.BookingMode = "auto" }, errIs: property.ErrInvalidBookingMode},
		{name: "unknown policy", mutate: func(rc *property.RateCard) { rc.CancellationPolicy = "none" }, errIs: property.ErrInvalidCancellationPolicy},
		{name: "no timezone", mutate: func(rc *property.RateCard) { rc.Location = nil }, errIs: property.ErrInvalidTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := builder.NewPropertyBuilder().WithRateCard(tt.mutate).Build().RateCard()
			err := rc.Validate()
			if tt.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestRateCard_Instants(t *testing.T) {
	rc := builder.NewPropertyBuilder().WithRateCard(func(rc *property.RateCard) {
		rc.Location = time.FixedZone("WAT", 3600)
		rc.CheckInTime = property.ClockTime{Hour: 15, Minute: 30}
	}).Build().RateCard()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), rc.CheckInAt(day).UTC())
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), rc.CheckOutAt(day).UTC())
	assert.Equal(t, "WAT", rc.TimezoneName())

	rc.Location = nil
	assert.Equal(t, "UTC", rc.TimezoneName())
}

func TestLoadLocation(t *testing.T) {
	_, err := property.LoadLocation("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, property.ErrInvalidTimezone)
}

func TestProperty_IsManagedBy(t *testing.T) {
	agent := uuid.New()
	p := builder.NewPropertyBuilder().With(func(pb *builder.PropertyBuilder) { pb.AgentID = &agent }).Build()

	assert.True(t, p.IsManagedBy(p.HostID()))
	assert.True(t, p.IsManagedBy(agent))
	assert.False(t, p.IsManagedBy(uuid.New()))

	solo := builder.NewPropertyBuilder().Build()
	assert.False(t, solo.IsManagedBy(agent))
}

func TestNewBlock(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	dates := stay.MustDateRange("2026-03-20", "2026-03-22")

	b, err := property.NewBlock(uuid.New(), dates, "  repainting  ", uuid.New(), now)
	require.NoError(t, err)
	assert.Equal(t, "repainting", b.Reason())
	assert.True(t, b.Dates().Equal(dates))

	_, err = property.NewBlock(uuid.New(), stay.DateRange{}, "", uuid.New(), now)
	assert.ErrorIs(t, err, stay.ErrInvalidRange)

	_, err = property.NewBlock(uuid.New(), dates, strings.Repeat("r", property.MaxBlockReasonLength+1), uuid.New(), now)
	assert.ErrorIs(t, err, property.ErrBlockReasonTooLong)
}
