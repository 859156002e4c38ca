//go:build unit

package commands_test

import (
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/usecase/shared"
	"shortlet-booking/internal/usecase/shared/sharedtest"

	"github.com/google/uuid"
)

var (
	start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	bookingCfg = config.BookingConfig{
		HoldTTL:          30 * time.Minute,
		DefaultTimezone:  "Africa/Lagos",
		IdempotencyTTL:   24 * time.Hour,
		AvailabilitySpan: 730,
	}
	jobsCfg = config.JobsConfig{
		ReconcileSLA:      15 * time.Minute,
		ReconcileLookback: 72 * time.Hour,
		VerifyTimeout:     time.Second,
		NotifyMaxAttempts: 5,
	}
)

// fixture is one property with a host, a guest and an operator, all known to the store.
type fixture struct {
	store    *sharedtest.Store
	clock    *clock.MockClock
	prop     *property.Property
	host     shared.Actor
	guest    shared.Actor
	operator shared.Actor
}

func newFixture(rateCard ...func(*property.RateCard)) *fixture {
	pb := builder.NewPropertyBuilder()
	for _, m := range rateCard {
		pb.WithRateCard(m)
	}
	prop := pb.Build()

	f := &fixture{
		store:    sharedtest.NewStore(),
		clock:    clock.NewMockClock(start),
		prop:     prop,
		host:     shared.Actor{ID: prop.HostID(), Email: "host@example.com", Role: user.RoleHost},
		guest:    shared.Actor{ID: uuid.New(), Email: "guest@example.com", Role: user.RoleGuest},
		operator: shared.Actor{ID: uuid.New(), Email: "ops@example.com", Role: user.RoleOperator},
	}
	f.store.AddProperty(prop)
	f.store.AddUser(f.host.ID, f.host.Email, "Host")
	f.store.AddUser(f.guest.ID, f.guest.Email, "Guest")
	f.store.AddUser(f.operator.ID, f.operator.Email, "Ops")
	return f
}

// seedBooking stores a booking of the fixture guest on the fixture property,
// 2026-03-10 to 2026-03-13, held until start+30m unless mutated.
func (f *fixture) seedBooking(mutate ...func(*builder.BookingBuilder)) *booking.Booking {
	bb := builder.NewBookingBuilder().ForProperty(f.prop).With(func(b *builder.BookingBuilder) {
		b.GuestID = f.guest.ID
		b.Dates = stay.MustDateRange("2026-03-10", "2026-03-13")
		b.ExpiresAt = start.Add(30 * time.Minute)
		b.CreatedAt = start
	})
	for _, m := range mutate {
		bb.With(m)
	}
	b := bb.BuildDomain()
	f.store.PutBooking(b)
	return b
}

func (f *fixture) seedIntent(b *booking.Booking, reference string) *payment.Intent {
	i, err := payment.NewIntent(b.ID(), "paystack", reference, b.Total(), b.Currency(), start)
	if err != nil {
		panic(err)
	}
	f.store.PutIntent(i)
	return i
}

func confirmedPaid(b *builder.BookingBuilder) {
	b.Status = booking.StatusConfirmed
	b.PaymentStatus = booking.PaymentPaid
}

func lapsed(b *builder.BookingBuilder) {
	b.ExpiresAt = start.Add(-time.Minute)
}

func dates(checkIn, checkOut string) stay.DateRange {
	return stay.MustDateRange(checkIn, checkOut)
}

func recipients(jobs []notification.Job) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.RecipientID)
	}
	return out
}

func uuidActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Email: "someone@example.com", Role: user.RoleGuest}
}
