//go:build unit || e2e

package builder

import (
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	reqdto "shortlet-booking/internal/handler/dto/request"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	PropertyID       uuid.UUID
	GuestID          uuid.UUID
	Dates            stay.DateRange
	GuestCount       int
	Rates            pricing.Rates
	Currency         string
	Mode             property.BookingMode
	Policy           property.CancellationPolicy
	Status           booking.Status
	PaymentStatus    booking.PaymentStatus
	PaymentReference *string
	ExpiresAt        time.Time
	CreatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:            uuid.New(),
		PropertyID:    uuid.New(),
		GuestID:       uuid.New(),
		Dates:         stay.MustDateRange("2025-03-10", "2025-03-13"),
		GuestCount:    2,
		Rates:         pricing.Rates{NightlyPrice: 50_000, CleaningFee: 10_000, Deposit: 20_000},
		Currency:      "NGN",
		Mode:          property.BookingModeInstant,
		Policy:        property.CancellationFlexible,
		Status:        booking.StatusPendingPayment,
		PaymentStatus: booking.PaymentUnpaid,
		ExpiresAt:     now.Add(30 * time.Minute),
		CreatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// ForProperty copies the property id and the rate card fields a booking freezes.
func (b *BookingBuilder) ForProperty(p *property.Property) *BookingBuilder {
	rc := p.RateCard()
	b.PropertyID = p.ID()
	b.Rates = rc.Rates()
	b.Currency = rc.Currency
	b.Mode = rc.BookingMode
	b.Policy = rc.CancellationPolicy
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	price, err := pricing.Quote(b.Dates, b.Rates)
	if err != nil {
		panic(err)
	}
	return booking.Reconstruct(booking.Snapshot{
		ID:                 b.ID,
		PropertyID:         b.PropertyID,
		GuestID:            b.GuestID,
		Dates:              b.Dates,
		GuestCount:         b.GuestCount,
		Price:              price,
		Currency:           b.Currency,
		Mode:               b.Mode,
		CancellationPolicy: b.Policy,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		PaymentReference:   b.PaymentReference,
		ExpiresAt:          b.ExpiresAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.CreatedAt,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	d := b.BuildDomain()
	price := d.Price()
	return &queries.BookingView{
		ID:               d.ID(),
		PropertyID:       d.PropertyID(),
		PropertyTitle:    "Lekki Phase 1 Studio",
		Timezone:         "Africa/Lagos",
		HostID:           uuid.New(),
		GuestID:          d.GuestID(),
		CheckIn:          d.Dates().CheckIn().Format(stay.DateLayout),
		CheckOut:         d.Dates().CheckOut().Format(stay.DateLayout),
		GuestCount:       int32(d.GuestCount()),
		Nights:           int32(price.Nights),
		NightlyPrice:     price.NightlyPrice,
		Subtotal:         price.Subtotal,
		CleaningFee:      price.CleaningFee,
		Deposit:          price.Deposit,
		Total:            price.Total,
		Currency:         d.Currency(),
		BookingMode:      d.Mode().String(),
		Status:           d.Status().String(),
		PaymentStatus:    d.PaymentStatus().String(),
		PaymentReference: d.PaymentReference(),
		ExpiresAt:        d.ExpiresAt(),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		CheckIn:    b.Dates.CheckIn().Format(stay.DateLayout),
		CheckOut:   b.Dates.CheckOut().Format(stay.DateLayout),
		GuestCount: b.GuestCount,
	}
}
