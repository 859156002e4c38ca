package shared

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payment"
	"shortlet-booking/internal/domain/payout"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Bookings() BookingRepository
	Properties() PropertyRepository
	Blocks() BlockRepository
	PaymentIntents() PaymentIntentRepository
	Payouts() PayoutRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateState writes the mutable lifecycle fields only while the stored status
	// still equals expected. false means another writer moved the booking first.
	UpdateState(ctx context.Context, b *booking.Booking, expected booking.Status) (bool, error)
	ListOccupying(ctx context.Context, q OccupancyQuery) ([]OccupiedStay, error)
	LockLapsedHoldsOverlapping(ctx context.Context, propertyID uuid.UUID, dates stay.DateRange, now time.Time) ([]uuid.UUID, error)
	ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	ListPayoutCandidates(ctx context.Context, checkOutBefore time.Time, limit int) ([]uuid.UUID, error)
}

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	// LockByID serialises calendar writers of one property.
	LockByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

type BlockRepository interface {
	Create(ctx context.Context, b *property.Block) error
	FindByID(ctx context.Context, id uuid.UUID) (*property.Block, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListInWindow(ctx context.Context, propertyID uuid.UUID, window *stay.DateRange) ([]*property.Block, error)
}

type PaymentIntentRepository interface {
	// InsertIfAbsent returns false when the reference already exists.
	InsertIfAbsent(ctx context.Context, i *payment.Intent) (bool, error)
	LockByReference(ctx context.Context, reference string) (*payment.Intent, error)
	Update(ctx context.Context, i *payment.Intent) error
	CountSucceeded(ctx context.Context, bookingID uuid.UUID) (int64, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*payment.Intent, error)
	ListStalePending(ctx context.Context, staleBefore, createdAfter time.Time, limit int) ([]StaleIntent, error)
	// Touch bumps updated_at of a pending intent; false when it is no longer pending.
	Touch(ctx context.Context, reference string, checkedAt time.Time) (bool, error)
}

type PayoutRepository interface {
	// InsertIfAbsent returns false when the booking already has a payout.
	InsertIfAbsent(ctx context.Context, p *payout.Payout) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error)
	LockByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error)
	MarkPaid(ctx context.Context, p *payout.Payout) (bool, error)
}

type NotificationRepository interface {
	// Enqueue returns false when a job with the same dedupe key exists.
	Enqueue(ctx context.Context, job notification.Job) (bool, error)
	ClaimQueued(ctx context.Context, now time.Time, limit int) ([]ClaimedJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status notification.JobStatus, attempts int32, lastError *string, runAt time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert returns false when the key is already taken for the user.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key, userID uuid.UUID, responseHash string, bookingID uuid.UUID) error
	// ClaimExpired takes over a key whose previous use has expired.
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, newExpiresAt, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
