package payout

import (
	"errors"
	"strings"
	"time"

	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSettlementIncomplete = errs.Mark(errors.New("method, reference, note and actor are required"), errs.ErrValidation)
	ErrNotEligible          = errs.Mark(errors.New("payout is not eligible for settlement"), errs.ErrInvalidTransition)
)

type Status string

const (
	StatusEligible Status = "eligible"
	StatusPaid     Status = "paid"
)

func (s Status) String() string {
	return string(s)
}

type Settlement struct {
	Method    string
	Reference string
	Note      string
	Actor     uuid.UUID
}

func (s Settlement) normalize() (Settlement, error) {
	s.Method = strings.TrimSpace(s.Method)
	s.Reference = strings.TrimSpace(s.Reference)
	s.Note = strings.TrimSpace(s.Note)
	if s.Method == "" || s.Reference == "" || s.Note == "" || s.Actor == uuid.Nil {
		return Settlement{}, ErrSettlementIncomplete
	}
	return s, nil
}

type Payout struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	hostID     uuid.UUID
	amount     int64
	currency   string
	status     Status
	settlement *Settlement
	eligibleAt time.Time
	paidAt     *time.Time
}

// NewEligible creates the payout for a completed stay. The amount is the booking total.
func NewEligible(bookingID, hostID uuid.UUID, amount int64, currency string, now time.Time) *Payout {
	return &Payout{
		id:         uuid.New(),
		bookingID:  bookingID,
		hostID:     hostID,
		amount:     amount,
		currency:   currency,
		status:     StatusEligible,
		eligibleAt: now,
	}
}

func Reconstruct(id, bookingID, hostID uuid.UUID, amount int64, currency string, status Status, settlement *Settlement, eligibleAt time.Time, paidAt *time.Time) *Payout {
	return &Payout{
		id:         id,
		bookingID:  bookingID,
		hostID:     hostID,
		amount:     amount,
		currency:   currency,
		status:     status,
		settlement: settlement,
		eligibleAt: eligibleAt,
		paidAt:     paidAt,
	}
}

func (p *Payout) ID() uuid.UUID           { return p.id }
func (p *Payout) BookingID() uuid.UUID    { return p.bookingID }
func (p *Payout) HostID() uuid.UUID       { return p.hostID }
func (p *Payout) Amount() int64           { return p.amount }
func (p *Payout) Currency() string        { return p.currency }
func (p *Payout) Status() Status          { return p.status }
func (p *Payout) Settlement() *Settlement { return p.settlement }
func (p *Payout) EligibleAt() time.Time   { return p.eligibleAt }
func (p *Payout) PaidAt() *time.Time      { return p.paidAt }

// MarkPaid settles an eligible payout. changed is false when the payout was
// already paid, in which case the existing record stands.
func (p *Payout) MarkPaid(s Settlement, now time.Time) (changed bool, err error) {
	s, err = s.normalize()
	if err != nil {
		return false, err
	}
	switch p.status {
	case StatusPaid:
		return false, nil
	case StatusEligible:
		p.status = StatusPaid
		p.settlement = &s
		p.paidAt = &now
		return true, nil
	default:
		return false, errs.Wrapf(ErrNotEligible, "status %s", p.status)
	}
}
