package converter

import (
	"fmt"
	"math"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
)

func BookingToInfra(b *booking.Booking) sqlc.CreateBookingParams {
	price := b.Price()
	if price.Nights > math.MaxInt32 || b.GuestCount() > math.MaxInt32 {
		panic(fmt.Sprintf("booking counters out of int32 range: nights=%d guests=%d", price.Nights, b.GuestCount()))
	}

	return sqlc.CreateBookingParams{
		ID:                 b.ID(),
		PropertyID:         b.PropertyID(),
		GuestID:            b.GuestID(),
		CheckIn:            pgconv.DateToPgtype(b.Dates().CheckIn()),
		CheckOut:           pgconv.DateToPgtype(b.Dates().CheckOut()),
		GuestCount:         int32(b.GuestCount()), // #nosec G115 -- range checked above
		Nights:             int32(price.Nights),   // #nosec G115 -- range checked above
		NightlyPrice:       price.NightlyPrice,
		Subtotal:           price.Subtotal,
		CleaningFee:        price.CleaningFee,
		Deposit:            price.Deposit,
		TotalAmount:        price.Total,
		Currency:           b.Currency(),
		BookingMode:        b.Mode().String(),
		CancellationPolicy: b.CancellationPolicy().String(),
		Status:             b.Status().String(),
		PaymentStatus:      b.PaymentStatus().String(),
		ExpiresAt:          pgconv.TimeToPgtype(b.ExpiresAt()),
		CreatedAt:          pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:          pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingStateToInfra(b *booking.Booking, expected booking.Status) sqlc.UpdateBookingStateParams {
	return sqlc.UpdateBookingStateParams{
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		PaymentReference: pgconv.StringPtrToPgtype(b.PaymentReference()),
		DecidedAt:        pgconv.TimePtrToPgtype(b.DecidedAt()),
		CancelledAt:      pgconv.TimePtrToPgtype(b.CancelledAt()),
		CancelReason:     b.CancelReason(),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
		ID:               b.ID(),
		ExpectedStatus:   expected.String(),
	}
}

func BookingFromInfra(row sqlc.GetBookingByIDRow) (*booking.Booking, error) {
	dates, err := stay.NewDateRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}

	return booking.Reconstruct(booking.Snapshot{
		ID:         row.ID,
		PropertyID: row.PropertyID,
		GuestID:    row.GuestID,
		Dates:      dates,
		GuestCount: int(row.GuestCount),
		Price: pricing.Breakdown{
			Nights:       int(row.Nights),
			NightlyPrice: row.NightlyPrice,
			Subtotal:     row.Subtotal,
			CleaningFee:  row.CleaningFee,
			Deposit:      row.Deposit,
			Total:        row.TotalAmount,
		},
		Currency:           row.Currency,
		Mode:               property.BookingMode(row.BookingMode),
		CancellationPolicy: property.CancellationPolicy(row.CancellationPolicy),
		Status:             booking.Status(row.Status),
		PaymentStatus:      booking.PaymentStatus(row.PaymentStatus),
		PaymentReference:   pgconv.StringPtrFromPgtype(row.PaymentReference),
		ExpiresAt:          pgconv.TimeFromPgtype(row.ExpiresAt),
		DecidedAt:          pgconv.TimePtrFromPgtype(row.DecidedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancelReason:       row.CancelReason,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}
