package response

import (
	"time"

	"shortlet-booking/internal/domain/property"
	"shortlet-booking/internal/domain/stay"

	"github.com/google/uuid"
)

type BlockResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Reason     string    `json:"reason,omitempty"`
	CreatedBy  uuid.UUID `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromBlock(b *property.Block) *BlockResponse {
	return &BlockResponse{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		StartDate:  b.Dates().CheckIn().Format(stay.DateLayout),
		EndDate:    b.Dates().CheckOut().Format(stay.DateLayout),
		Reason:     b.Reason(),
		CreatedBy:  b.CreatedBy(),
		CreatedAt:  b.CreatedAt(),
	}
}
