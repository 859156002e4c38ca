//go:build unit

package pricing_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/stay"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	t.Run("three nights with cleaning fee", func(t *testing.T) {
		rates := pricing.Rates{NightlyPrice: 5_000_000, CleaningFee: 500_000, Deposit: 2_000_000}

		got, err := pricing.Quote(stay.MustDateRange("2026-03-10", "2026-03-13"), rates)
		require.NoError(t, err)

		want := pricing.Breakdown{
			Nights:       3,
			NightlyPrice: 5_000_000,
			Subtotal:     15_000_000,
			CleaningFee:  500_000,
			Deposit:      2_000_000,
			Total:        15_500_000,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("deposit never enters the total", func(t *testing.T) {
		got, err := pricing.CalculateNights(1, pricing.Rates{NightlyPrice: 100, Deposit: 1_000_000})
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.Total)
	})

	t.Run("total is nights times nightly plus cleaning", func(t *testing.T) {
		r := rand.New(rand.NewPCG(7, 11))
		for range 500 {
			nights := r.IntN(60) + 1
			rates := pricing.Rates{
				NightlyPrice: r.Int64N(10_000_000),
				CleaningFee:  r.Int64N(1_000_000),
			}
			got, err := pricing.CalculateNights(nights, rates)
			require.NoError(t, err)
			assert.Equal(t, int64(nights)*rates.NightlyPrice+rates.CleaningFee, got.Total)
			assert.Equal(t, nights, got.Nights)
		}
	})
}

func TestCalculateNights_Errors(t *testing.T) {
	tests := []struct {
		name   string
		nights int
		rates  pricing.Rates
		errIs  error
	}{
		{name: "zero nights", nights: 0, rates: pricing.Rates{NightlyPrice: 1}, errIs: pricing.ErrInvalidRange},
		{name: "negative nights", nights: -2, rates: pricing.Rates{NightlyPrice: 1}, errIs: pricing.ErrInvalidRange},
		{name: "negative nightly price", nights: 1, rates: pricing.Rates{NightlyPrice: -1}, errIs: pricing.ErrNegativeAmount},
		{name: "negative cleaning fee", nights: 1, rates: pricing.Rates{CleaningFee: -1}, errIs: pricing.ErrNegativeAmount},
		{name: "negative deposit", nights: 1, rates: pricing.Rates{Deposit: -1}, errIs: pricing.ErrNegativeAmount},
		{name: "overflow", nights: 3, rates: pricing.Rates{NightlyPrice: math.MaxInt64 / 2}, errIs: pricing.ErrAmountOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pricing.CalculateNights(tt.nights, tt.rates)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestCalculate_SameDayIsInvalid(t *testing.T) {
	d, err := stay.ParseDate("2026-03-10")
	require.NoError(t, err)

	_, err = pricing.Calculate(d, d, pricing.Rates{NightlyPrice: 1})
	assert.ErrorIs(t, err, pricing.ErrInvalidRange)
}
