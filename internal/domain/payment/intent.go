package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAlreadySucceeded = errs.Mark(errors.New("payment intent already succeeded"), errs.ErrDuplicateEvent)
	ErrEmptyReference   = errs.Mark(errors.New("provider reference is required"), errs.ErrValidation)
	ErrAmountMismatch   = errs.Mark(errors.New("paid amount does not match booking total"), errs.ErrValidation)
	ErrUnknownOutcome   = errs.Mark(errors.New("unknown provider outcome"), errs.ErrValidation)
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsFinal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Outcome is what the provider reported for a reference.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomePending   Outcome = "pending"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSucceeded, OutcomeFailed, OutcomeAbandoned, OutcomePending:
		return true
	default:
		return false
	}
}

// ProviderEvent is a verified provider report, from a webhook or a verify call.
type ProviderEvent struct {
	Provider  string
	Reference string
	BookingID uuid.UUID
	Outcome   Outcome
	Amount    int64
	Currency  string
	Raw       []byte
}

func (e ProviderEvent) Validate() error {
	if strings.TrimSpace(e.Reference) == "" {
		return ErrEmptyReference
	}
	if !e.Outcome.IsValid() {
		return errs.Wrapf(ErrUnknownOutcome, "%q", e.Outcome)
	}
	return nil
}

// Matches reports whether the reported money equals what the booking charges.
func (e ProviderEvent) Matches(amount int64, currency string) bool {
	return e.Amount == amount && strings.EqualFold(e.Currency, currency)
}

type Intent struct {
	id               uuid.UUID
	bookingID        uuid.UUID
	provider         string
	reference        string
	amount           int64
	currency         string
	status           Status
	authorizationURL string
	rawPayload       []byte
	createdAt        time.Time
	updatedAt        time.Time
}

func NewIntent(bookingID uuid.UUID, provider, reference string, amount int64, currency string, now time.Time) (*Intent, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, ErrEmptyReference
	}
	return &Intent{
		id:        uuid.New(),
		bookingID: bookingID,
		provider:  provider,
		reference: reference,
		amount:    amount,
		currency:  strings.ToUpper(currency),
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// FromEvent builds the intent row for a reference first seen through a provider event.
func FromEvent(e ProviderEvent, now time.Time) (*Intent, error) {
	i, err := NewIntent(e.BookingID, e.Provider, e.Reference, e.Amount, e.Currency, now)
	if err != nil {
		return nil, err
	}
	i.rawPayload = e.Raw
	return i, nil
}

type Snapshot struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	Provider         string
	Reference        string
	Amount           int64
	Currency         string
	Status           Status
	AuthorizationURL string
	RawPayload       []byte
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Intent {
	return &Intent{
		id:               s.ID,
		bookingID:        s.BookingID,
		provider:         s.Provider,
		reference:        s.Reference,
		amount:           s.Amount,
		currency:         s.Currency,
		status:           s.Status,
		authorizationURL: s.AuthorizationURL,
		rawPayload:       s.RawPayload,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (i *Intent) ID() uuid.UUID            { return i.id }
func (i *Intent) BookingID() uuid.UUID     { return i.bookingID }
func (i *Intent) Provider() string         { return i.provider }
func (i *Intent) Reference() string        { return i.reference }
func (i *Intent) Amount() int64            { return i.amount }
func (i *Intent) Currency() string         { return i.currency }
func (i *Intent) Status() Status           { return i.status }
func (i *Intent) AuthorizationURL() string { return i.authorizationURL }
func (i *Intent) RawPayload() []byte       { return i.rawPayload }
func (i *Intent) CreatedAt() time.Time     { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time     { return i.updatedAt }

func (i *Intent) SetAuthorizationURL(url string) {
	i.authorizationURL = url
}

// MarkSucceeded is valid from pending or failed; a provider may report success
// for a reference it earlier reported as failed.
func (i *Intent) MarkSucceeded(raw []byte, now time.Time) error {
	if i.status == StatusSucceeded {
		return ErrAlreadySucceeded
	}
	i.status = StatusSucceeded
	i.touch(raw, now)
	return nil
}

func (i *Intent) MarkFailed(raw []byte, now time.Time) error {
	if i.status == StatusSucceeded {
		return ErrAlreadySucceeded
	}
	i.status = StatusFailed
	i.touch(raw, now)
	return nil
}

func (i *Intent) touch(raw []byte, now time.Time) {
	if len(raw) > 0 {
		i.rawPayload = raw
	}
	i.updatedAt = now
}

// NewReference returns a provider reference unique per attempt.
func NewReference(bookingID uuid.UUID) string {
	return fmt.Sprintf("SL-%s-%s", strings.ToUpper(bookingID.String()[:8]), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
