package property

import (
	"errors"
	"strings"
	"time"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxBlockReasonLength = 500

var ErrBlockReasonTooLong = errs.Mark(errors.New("block reason too long"), errs.ErrValidation)

// Block is a host-declared unavailable range with no guest attached.
type Block struct {
	id         uuid.UUID
	propertyID uuid.UUID
	dates      stay.DateRange
	reason     string
	createdBy  uuid.UUID
	createdAt  time.Time
}

func NewBlock(propertyID uuid.UUID, dates stay.DateRange, reason string, createdBy uuid.UUID, now time.Time) (*Block, error) {
	if dates.IsZero() {
		return nil, stay.ErrInvalidRange
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxBlockReasonLength {
		return nil, ErrBlockReasonTooLong
	}
	return &Block{
		id:         uuid.New(),
		propertyID: propertyID,
		dates:      dates,
		reason:     reason,
		createdBy:  createdBy,
		createdAt:  now,
	}, nil
}

func ReconstructBlock(id, propertyID uuid.UUID, dates stay.DateRange, reason string, createdBy uuid.UUID, createdAt time.Time) *Block {
	return &Block{
		id:         id,
		propertyID: propertyID,
		dates:      dates,
		reason:     reason,
		createdBy:  createdBy,
		createdAt:  createdAt,
	}
}

func (b *Block) ID() uuid.UUID         { return b.id }
func (b *Block) PropertyID() uuid.UUID { return b.propertyID }
func (b *Block) Dates() stay.DateRange { return b.dates }
func (b *Block) Reason() string        { return b.reason }
func (b *Block) CreatedBy() uuid.UUID  { return b.createdBy }
func (b *Block) CreatedAt() time.Time  { return b.createdAt }
