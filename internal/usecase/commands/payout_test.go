//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payout"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PayoutCommandsTestSuite struct {
	suite.Suite
	f  *fixture
	uc commands.PayoutCommands
}

// The property sits at UTC+1, so 23:30 UTC on checkout eve is already checkout day there.
func (s *PayoutCommandsTestSuite) SetupTest() {
	s.f = newFixture(func(rc *property.RateCard) { rc.Location = time.FixedZone("WAT", 3600) })
	s.f.clock.Set(time.Date(2026, 3, 12, 23, 30, 0, 0, time.UTC))
	s.uc = commands.NewPayoutUseCase(s.f.store, s.f.clock)
}

func TestPayoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(PayoutCommandsTestSuite))
}

// ================================================================================
// ResolveEligible
// ================================================================================

func (s *PayoutCommandsTestSuite) TestResolveEligible() {
	done := s.f.seedBooking(confirmedPaid)
	s.f.seedBooking(confirmedPaid, func(bb *builder.BookingBuilder) { bb.Dates = dates("2026-03-12", "2026-03-16") })
	s.f.seedBooking(func(bb *builder.BookingBuilder) {
		bb.Status = booking.StatusCancelled
		bb.PaymentStatus = booking.PaymentRefundRequired
	})

	report, err := s.uc.ResolveEligible(context.Background(), 0)
	s.Require().NoError(err)
	s.Equal(&commands.PayoutReport{Scanned: 1, Created: 1}, report)

	p := s.f.store.PayoutFor(done.ID())
	s.Require().NotNil(p)
	s.Equal(payout.StatusEligible, p.Status())
	s.Equal(done.Total(), p.Amount())
	s.Equal("NGN", p.Currency())
	s.Equal(s.f.host.ID, p.HostID())
	s.Equal([]uuid.UUID{s.f.host.ID}, recipients(s.f.store.JobsFor(p.ID(), notification.TopicPayoutEligible)))

	report, err = s.uc.ResolveEligible(context.Background(), 0)
	s.Require().NoError(err)
	s.Equal(0, report.Scanned)
	s.Len(s.f.store.Payouts(), 1)
}

func (s *PayoutCommandsTestSuite) TestResolveEligible_PropertyTimezone() {
	s.f = newFixture(func(rc *property.RateCard) { rc.Location = time.FixedZone("EST", -5*3600) })
	s.f.clock.Set(time.Date(2026, 3, 13, 2, 0, 0, 0, time.UTC))
	s.uc = commands.NewPayoutUseCase(s.f.store, s.f.clock)
	b := s.f.seedBooking(confirmedPaid)

	// 02:00 UTC is still the evening of the 12th in the property timezone.
	report, err := s.uc.ResolveEligible(context.Background(), 0)
	s.Require().NoError(err)
	s.Equal(&commands.PayoutReport{Scanned: 1}, report)
	s.Nil(s.f.store.PayoutFor(b.ID()))

	s.f.clock.Add(4 * time.Hour)
	report, err = s.uc.ResolveEligible(context.Background(), 0)
	s.Require().NoError(err)
	s.Equal(1, report.Created)
}

func (s *PayoutCommandsTestSuite) TestResolveForBooking() {
	done := s.f.seedBooking(confirmedPaid)

	created, err := s.uc.ResolveForBooking(context.Background(), done.ID())
	s.Require().NoError(err)
	s.True(created)

	created, err = s.uc.ResolveForBooking(context.Background(), done.ID())
	s.Require().NoError(err)
	s.False(created)
	s.Len(s.f.store.JobsFor(s.f.store.PayoutFor(done.ID()).ID(), notification.TopicPayoutEligible), 1)

	future := s.f.seedBooking(confirmedPaid, func(bb *builder.BookingBuilder) { bb.Dates = dates("2026-03-20", "2026-03-22") })
	_, err = s.uc.ResolveForBooking(context.Background(), future.ID())
	s.ErrorIs(err, commands.ErrStayNotCompleted)

	_, err = s.uc.ResolveForBooking(context.Background(), uuid.New())
	s.ErrorIs(err, commands.ErrBookingNotFound)
}

// ================================================================================
// MarkPaid
// ================================================================================

func (s *PayoutCommandsTestSuite) TestMarkPaid() {
	done := s.f.seedBooking(confirmedPaid)
	_, err := s.uc.ResolveForBooking(context.Background(), done.ID())
	s.Require().NoError(err)
	id := s.f.store.PayoutFor(done.ID()).ID()

	in := commands.SettlementInput{Method: "bank_transfer", Reference: "TRF-1", Note: "March batch", Currency: "ngn"}

	s.Run("host cannot settle", func() {
		_, err := s.uc.MarkPaid(context.Background(), s.f.host, id, in)
		s.ErrorIs(err, commands.ErrOperatorOnly)
	})

	s.Run("currency must match", func() {
		other := in
		other.Currency = "USD"
		_, err := s.uc.MarkPaid(context.Background(), s.f.operator, id, other)
		s.ErrorIs(err, commands.ErrSettlementCurrency)
	})

	s.Run("incomplete settlement", func() {
		other := in
		other.Note = " "
		_, err := s.uc.MarkPaid(context.Background(), s.f.operator, id, other)
		s.ErrorIs(err, payout.ErrSettlementIncomplete)
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("operator settles", func() {
		p, err := s.uc.MarkPaid(context.Background(), s.f.operator, id, in)
		s.Require().NoError(err)
		s.Equal(payout.StatusPaid, p.Status())
		s.Equal("TRF-1", p.Settlement().Reference)
		s.Equal(s.f.operator.ID, p.Settlement().Actor)
		s.Equal(payout.StatusPaid, s.f.store.PayoutFor(done.ID()).Status())
		s.Len(s.f.store.JobsFor(id, notification.TopicPayoutPaid), 1)
	})

	s.Run("repeat returns the stored settlement", func() {
		other := in
		other.Reference = "TRF-2"
		p, err := s.uc.MarkPaid(context.Background(), s.f.operator, id, other)
		s.Require().NoError(err)
		s.Equal("TRF-1", p.Settlement().Reference)
		s.Len(s.f.store.JobsFor(id, notification.TopicPayoutPaid), 1)
	})

	s.Run("unknown payout", func() {
		_, err := s.uc.MarkPaid(context.Background(), s.f.operator, uuid.New(), in)
		s.ErrorIs(err, commands.ErrPayoutNotFound)
	})
}
