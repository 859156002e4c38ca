//go:build e2e

package uow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/infra"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/infra/uow"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/testutil/builder"
	"shortlet-booking/internal/testutil/dbtest"
	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type PostgresUoWTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  shared.UnitOfWork
}

func TestPostgresUoWSuite(t *testing.T) {
	suite.Run(t, new(PostgresUoWTestSuite))
}

func (s *PostgresUoWTestSuite) SetupSuite() {
	s.pool, _ = dbtest.NewDatabase(s.T())
	s.uow = uow.NewPostgresUoW(s.pool, sqlc.New())
}

// seed inserts a property with its host, plus a guest.
func (s *PostgresUoWTestSuite) seed() (*builder.PropertyBuilder, uuid.UUID) {
	p := builder.NewPropertyBuilder()
	dbtest.CreateProperty(s.T(), s.pool, p)
	guest := uuid.New()
	dbtest.CreateUser(s.T(), s.pool, guest, user.RoleGuest)
	return p, guest
}

func (s *PostgresUoWTestSuite) hold(p *builder.PropertyBuilder, guest uuid.UUID, checkIn, checkOut string) *booking.Booking {
	return builder.NewBookingBuilder().
		ForProperty(p.Build()).
		With(func(b *builder.BookingBuilder) {
			b.GuestID = guest
			b.Dates = stay.MustDateRange(checkIn, checkOut)
			b.CreatedAt = now
			b.ExpiresAt = now.Add(30 * time.Minute)
		}).
		BuildDomain()
}

func (s *PostgresUoWTestSuite) insert(b *booking.Booking) error {
	return s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
}

func (s *PostgresUoWTestSuite) TestOverlapConstraint() {
	s.Run("overlapping active booking is a conflict", func() {
		p, guest := s.seed()
		s.Require().NoError(s.insert(s.hold(p, guest, "2026-03-10", "2026-03-13")))

		err := s.insert(s.hold(p, guest, "2026-03-12", "2026-03-14"))

		s.True(infra.IsKind(err, infra.KindConflict), "got %v", err)
	})

	s.Run("checkout day can be the next check-in", func() {
		p, guest := s.seed()
		s.Require().NoError(s.insert(s.hold(p, guest, "2026-03-10", "2026-03-13")))

		s.NoError(s.insert(s.hold(p, guest, "2026-03-13", "2026-03-15")))
	})

	s.Run("other properties are independent", func() {
		p1, guest := s.seed()
		p2, _ := s.seed()
		s.Require().NoError(s.insert(s.hold(p1, guest, "2026-03-10", "2026-03-13")))

		s.NoError(s.insert(s.hold(p2, guest, "2026-03-10", "2026-03-13")))
	})

	s.Run("expired bookings release their nights", func() {
		p, guest := s.seed()
		first := s.hold(p, guest, "2026-03-10", "2026-03-13")
		s.Require().NoError(s.insert(first))

		later := now.Add(31 * time.Minute)
		err := s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			b, err := tx.Bookings().LockByID(ctx, first.ID())
			if err != nil {
				return err
			}
			if err := b.Expire(later); err != nil {
				return err
			}
			ok, err := tx.Bookings().UpdateState(ctx, b, booking.StatusPendingPayment)
			s.True(ok)
			return err
		})
		s.Require().NoError(err)

		s.NoError(s.insert(s.hold(p, guest, "2026-03-11", "2026-03-12")))
	})
}

func (s *PostgresUoWTestSuite) TestOneSucceededIntentPerBooking() {
	p, guest := s.seed()
	b := s.hold(p, guest, "2026-04-01", "2026-04-03")
	s.Require().NoError(s.insert(b))

	succeed := func() error {
		return s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			intent, err := payment.NewIntent(b.ID(), "paystack", payment.NewReference(b.ID()), b.Total(), b.Currency(), now)
			if err != nil {
				return err
			}
			if _, err := tx.PaymentIntents().InsertIfAbsent(ctx, intent); err != nil {
				return err
			}
			if err := intent.MarkSucceeded([]byte(`{"status":"success"}`), now.Add(time.Minute)); err != nil {
				return err
			}
			return tx.PaymentIntents().Update(ctx, intent)
		})
	}

	s.Require().NoError(succeed())
	err := succeed()

	s.True(infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
	s.Require().NoError(s.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.PaymentIntents().CountSucceeded(ctx, b.ID())
		s.Equal(int64(1), n)
		return err
	}))
}

func (s *PostgresUoWTestSuite) TestTouchMovesIntentBehindStaleSet() {
	p, guest := s.seed()
	b := s.hold(p, guest, "2026-04-05", "2026-04-07")
	s.Require().NoError(s.insert(b))

	first, err := payment.NewIntent(b.ID(), "paystack", "SL-FIRST", b.Total(), b.Currency(), now)
	s.Require().NoError(err)
	second, err := payment.NewIntent(b.ID(), "paystack", "SL-SECOND", b.Total(), b.Currency(), now.Add(time.Minute))
	s.Require().NoError(err)
	s.Require().NoError(s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for _, i := range []*payment.Intent{first, second} {
			if _, err := tx.PaymentIntents().InsertIfAbsent(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}))

	head := func() string {
		var ref string
		s.Require().NoError(s.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			stale, err := tx.PaymentIntents().ListStalePending(ctx, now.Add(time.Hour), now.Add(-time.Hour), 1)
			if err != nil {
				return err
			}
			s.Require().Len(stale, 1)
			ref = stale[0].Reference
			return nil
		}))
		return ref
	}

	s.Equal("SL-FIRST", head())
	s.Require().NoError(s.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		touched, err := tx.PaymentIntents().Touch(ctx, "SL-FIRST", now.Add(2*time.Minute))
		s.True(touched)
		return err
	}))
	s.Equal("SL-SECOND", head())
}

func (s *PostgresUoWTestSuite) TestConcurrentCreateBooking() {
	p, _ := s.seed()
	cfg := config.BookingConfig{HoldTTL: 30 * time.Minute, IdempotencyTTL: 24 * time.Hour, AvailabilitySpan: 730}
	uc := commands.NewBookingUseCase(s.uow, cfg, clock.NewMockClock(now))

	const guests = 8
	actors := make([]shared.Actor, guests)
	for i := range actors {
		actors[i] = shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
		dbtest.CreateUser(s.T(), s.pool, actors[i].ID, user.RoleGuest)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
		others    []error
	)
	for _, actor := range actors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateBooking(context.Background(), actor, commands.CreateBookingInput{
				PropertyID: p.ID,
				Dates:      stay.MustDateRange("2026-05-01", "2026-05-04"),
				GuestCount: 2,
			}, nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errs.Is(err, errs.ErrAvailabilityConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	s.Empty(others)
	s.Equal(1, created)
	s.Equal(guests-1, conflicts)
}

func (s *PostgresUoWTestSuite) TestLapsedHoldIsExpiredByNewBooking() {
	p, guest := s.seed()
	lapsed := s.hold(p, guest, "2026-06-01", "2026-06-05")
	s.Require().NoError(s.insert(lapsed))

	later := clock.NewMockClock(now.Add(2 * time.Hour))
	uc := commands.NewBookingUseCase(s.uow, config.BookingConfig{HoldTTL: 30 * time.Minute, IdempotencyTTL: time.Hour}, later)
	other := shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
	dbtest.CreateUser(s.T(), s.pool, other.ID, user.RoleGuest)

	res, err := uc.CreateBooking(context.Background(), other, commands.CreateBookingInput{
		PropertyID: p.ID,
		Dates:      stay.MustDateRange("2026-06-03", "2026-06-06"),
		GuestCount: 1,
	}, nil)

	s.Require().NoError(err)
	s.Equal(booking.StatusPendingPayment, res.Booking.Status())
	s.Require().NoError(s.uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		old, err := tx.Bookings().FindByID(ctx, lapsed.ID())
		if err != nil {
			return err
		}
		s.Equal(booking.StatusExpired, old.Status())
		return nil
	}))
}
