package pricing

import (
	"errors"
	"math"
	"time"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"
)

var (
	ErrInvalidRange   = errs.Mark(errors.New("stay must be at least one night"), errs.ErrValidation)
	ErrNegativeAmount = errs.Mark(errors.New("amounts must not be negative"), errs.ErrValidation)
	ErrAmountOverflow = errs.Mark(errors.New("stay total exceeds representable amount"), errs.ErrValidation)
)

// Rates are the rate card amounts, in minor currency units.
type Rates struct {
	NightlyPrice int64
	CleaningFee  int64
	Deposit      int64
}

// Breakdown is the priced stay. Deposit is informational and never part of Total.
type Breakdown struct {
	Nights       int   `json:"nights"`
	NightlyPrice int64 `json:"nightlyPrice"`
	Subtotal     int64 `json:"subtotal"`
	CleaningFee  int64 `json:"cleaningFee"`
	Deposit      int64 `json:"deposit"`
	Total        int64 `json:"total"`
}

// Calculate prices the calendar dates [checkIn, checkOut).
func Calculate(checkIn, checkOut time.Time, rates Rates) (Breakdown, error) {
	return CalculateNights(stay.DaysBetween(checkIn, checkOut), rates)
}

// Quote prices a stay range against rates.
func Quote(r stay.DateRange, rates Rates) (Breakdown, error) {
	return CalculateNights(r.Nights(), rates)
}

func CalculateNights(nights int, rates Rates) (Breakdown, error) {
	if nights <= 0 {
		return Breakdown{}, ErrInvalidRange
	}
	if rates.NightlyPrice < 0 || rates.CleaningFee < 0 || rates.Deposit < 0 {
		return Breakdown{}, ErrNegativeAmount
	}
	if rates.NightlyPrice > 0 && int64(nights) > (math.MaxInt64-rates.CleaningFee)/rates.NightlyPrice {
		return Breakdown{}, ErrAmountOverflow
	}

	subtotal := int64(nights) * rates.NightlyPrice
	return Breakdown{
		Nights:       nights,
		NightlyPrice: rates.NightlyPrice,
		Subtotal:     subtotal,
		CleaningFee:  rates.CleaningFee,
		Deposit:      rates.Deposit,
		Total:        subtotal + rates.CleaningFee,
	}, nil
}
