package booking

import (
	"errors"
	"strings"
	"time"

	"shortlet-booking/internal/domain/pricing"
	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxGuestCount         = 50
	MaxCancelReasonLength = 500
)

var (
	ErrInvalidGuestCount        = errs.Mark(errors.New("guest count must be between 1 and 50"), errs.ErrValidation)
	ErrInvalidHoldTTL           = errs.Mark(errors.New("hold ttl must be positive"), errs.ErrConfiguration)
	ErrCancelReasonTooLong      = errs.Mark(errors.New("cancel reason too long"), errs.ErrValidation)
	ErrHoldNotLapsed            = errs.Mark(errors.New("hold has not lapsed"), errs.ErrInvalidTransition)
	ErrAlreadyPaid              = errs.Mark(errors.New("booking already has a captured payment"), errs.ErrInvalidTransition)
	ErrCancellationWindowClosed = errs.Mark(errors.New("cancellation window has closed"), errs.ErrInvalidTransition)
)

type NewParams struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	Dates      stay.DateRange
	GuestCount int
	RateCard   property.RateCard
	HoldTTL    time.Duration
	Now        time.Time
}

// Booking is the lifecycle aggregate. Price and mode are copied from the rate
// card at creation and never recomputed.
type Booking struct {
	id                 uuid.UUID
	propertyID         uuid.UUID
	guestID            uuid.UUID
	dates              stay.DateRange
	guestCount         int
	price              pricing.Breakdown
	currency           string
	mode               property.BookingMode
	cancellationPolicy property.CancellationPolicy
	status             Status
	paymentStatus      PaymentStatus
	paymentReference   *string
	expiresAt          time.Time
	decidedAt          *time.Time
	cancelledAt        *time.Time
	cancelReason       string
	createdAt          time.Time
	updatedAt          time.Time
}

func NewBooking(p NewParams) (*Booking, error) {
	if p.Dates.IsZero() {
		return nil, stay.ErrInvalidRange
	}
	if p.GuestCount < 1 || p.GuestCount > MaxGuestCount {
		return nil, ErrInvalidGuestCount
	}
	if p.HoldTTL <= 0 {
		return nil, ErrInvalidHoldTTL
	}
	if err := p.RateCard.Validate(); err != nil {
		return nil, err
	}

	price, err := pricing.Quote(p.Dates, p.RateCard.Rates())
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:                 uuid.New(),
		propertyID:         p.PropertyID,
		guestID:            p.GuestID,
		dates:              p.Dates,
		guestCount:         p.GuestCount,
		price:              price,
		currency:           strings.ToUpper(p.RateCard.Currency),
		mode:               p.RateCard.BookingMode,
		cancellationPolicy: p.RateCard.CancellationPolicy,
		status:             StatusPendingPayment,
		paymentStatus:      PaymentUnpaid,
		expiresAt:          p.Now.Add(p.HoldTTL),
		createdAt:          p.Now,
		updatedAt:          p.Now,
	}, nil
}

type Snapshot struct {
	ID                 uuid.UUID
	PropertyID         uuid.UUID
	GuestID            uuid.UUID
	Dates              stay.DateRange
	GuestCount         int
	Price              pricing.Breakdown
	Currency           string
	Mode               property.BookingMode
	CancellationPolicy property.CancellationPolicy
	Status             Status
	PaymentStatus      PaymentStatus
	PaymentReference   *string
	ExpiresAt          time.Time
	DecidedAt          *time.Time
	CancelledAt        *time.Time
	CancelReason       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                 s.ID,
		propertyID:         s.PropertyID,
		guestID:            s.GuestID,
		dates:              s.Dates,
		guestCount:         s.GuestCount,
		price:              s.Price,
		currency:           s.Currency,
		mode:               s.Mode,
		cancellationPolicy: s.CancellationPolicy,
		status:             s.Status,
		paymentStatus:      s.PaymentStatus,
		paymentReference:   s.PaymentReference,
		expiresAt:          s.ExpiresAt,
		decidedAt:          s.DecidedAt,
		cancelledAt:        s.CancelledAt,
		cancelReason:       s.CancelReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		PropertyID:         b.propertyID,
		GuestID:            b.guestID,
		Dates:              b.dates,
		GuestCount:         b.guestCount,
		Price:              b.price,
		Currency:           b.currency,
		Mode:               b.mode,
		CancellationPolicy: b.cancellationPolicy,
		Status:             b.status,
		PaymentStatus:      b.paymentStatus,
		PaymentReference:   b.paymentReference,
		ExpiresAt:          b.expiresAt,
		DecidedAt:          b.decidedAt,
		CancelledAt:        b.cancelledAt,
		CancelReason:       b.cancelReason,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                                   { return b.id }
func (b *Booking) PropertyID() uuid.UUID                           { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID                              { return b.guestID }
func (b *Booking) Dates() stay.DateRange                           { return b.dates }
func (b *Booking) GuestCount() int                                 { return b.guestCount }
func (b *Booking) Nights() int                                     { return b.price.Nights }
func (b *Booking) Price() pricing.Breakdown                        { return b.price }
func (b *Booking) Total() int64                                    { return b.price.Total }
func (b *Booking) Currency() string                                { return b.currency }
func (b *Booking) Mode() property.BookingMode                      { return b.mode }
func (b *Booking) CancellationPolicy() property.CancellationPolicy { return b.cancellationPolicy }
func (b *Booking) Status() Status                                  { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus                    { return b.paymentStatus }
func (b *Booking) PaymentReference() *string                       { return b.paymentReference }
func (b *Booking) ExpiresAt() time.Time                            { return b.expiresAt }
func (b *Booking) DecidedAt() *time.Time                           { return b.decidedAt }
func (b *Booking) CancelledAt() *time.Time                         { return b.cancelledAt }
func (b *Booking) CancelReason() string                            { return b.cancelReason }
func (b *Booking) CreatedAt() time.Time                            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                            { return b.updatedAt }

// HoldLapsed reports whether an unpaid hold has run past its deadline.
func (b *Booking) HoldLapsed(now time.Time) bool {
	return b.status == StatusPendingPayment && now.After(b.expiresAt)
}

// IsActiveAt reports whether the booking occupies its dates at now.
func (b *Booking) IsActiveAt(now time.Time) bool {
	if !b.status.HoldsDates() {
		return false
	}
	return !b.HoldLapsed(now) || b.paymentStatus == PaymentPaid
}

// IsPayoutEligible reports a completed stay: confirmed and checked out by today.
func (b *Booking) IsPayoutEligible(today time.Time) bool {
	return b.status == StatusConfirmed && !b.dates.CheckOut().After(stay.Date(today))
}

// AttachPaymentReference records the provider reference of the latest intent.
func (b *Booking) AttachPaymentReference(ref string, now time.Time) error {
	if b.status != StatusPendingPayment {
		return errs.Wrapf(ErrInvalidTransition, "attach payment while %s", b.status)
	}
	if b.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	b.paymentReference = &ref
	b.updatedAt = now
	return nil
}

// ApplyPayment moves a held booking forward after a captured payment.
func (b *Booking) ApplyPayment(ref string, now time.Time) error {
	if b.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	if err := b.apply(EventPaymentSucceeded, now); err != nil {
		return err
	}
	b.paymentStatus = PaymentPaid
	b.paymentReference = &ref
	if b.status == StatusConfirmed {
		b.decidedAt = &now
	}
	return nil
}

// Expire lapses an unpaid hold.
func (b *Booking) Expire(now time.Time) error {
	if b.status == StatusPendingPayment && !now.After(b.expiresAt) {
		return ErrHoldNotLapsed
	}
	if b.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	return b.apply(EventHoldExpired, now)
}

func (b *Booking) Approve(now time.Time) error {
	if err := b.apply(EventHostApproved, now); err != nil {
		return err
	}
	b.decidedAt = &now
	return nil
}

// Decline rejects a paid request-mode booking; the captured payment needs refunding.
func (b *Booking) Decline(now time.Time) error {
	if err := b.apply(EventHostDeclined, now); err != nil {
		return err
	}
	b.decidedAt = &now
	b.flagRefund()
	return nil
}

// Cancel ends a confirmed stay. The booking's cancellation policy is evaluated
// against checkInAt unless override is set (operators).
func (b *Booking) Cancel(checkInAt, now time.Time, reason string, override bool) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxCancelReasonLength {
		return ErrCancelReasonTooLong
	}
	if b.status == StatusConfirmed && !override && !b.cancellationPolicy.Allows(checkInAt, now) {
		return errs.Wrapf(ErrCancellationWindowClosed, "%s policy", b.cancellationPolicy)
	}
	if err := b.apply(EventCancelled, now); err != nil {
		return err
	}
	b.cancelledAt = &now
	b.cancelReason = reason
	b.flagRefund()
	return nil
}

// RequireRefund marks captured money that could not be applied to the booking.
// The lifecycle status is left untouched.
func (b *Booking) RequireRefund(now time.Time) {
	b.paymentStatus = PaymentRefundRequired
	b.updatedAt = now
}

func (b *Booking) flagRefund() {
	if b.paymentStatus == PaymentPaid {
		b.paymentStatus = PaymentRefundRequired
	}
}

func (b *Booking) apply(event Event, now time.Time) error {
	next, err := Transition(b.status, event, b.mode)
	if err != nil {
		return err
	}
	b.status = next
	b.updatedAt = now
	return nil
}
