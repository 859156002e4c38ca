package request

import (
	"strings"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	StartDate  string    `json:"startDate" binding:"required,isodate"`
	EndDate    string    `json:"endDate" binding:"required,isodate"`
	Reason     string    `json:"reason" binding:"max=200"`
}

func (r CreateBlockRequest) ToInput() (commands.CreateBlockInput, error) {
	dates, err := stay.ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateBlockInput{}, err
	}
	return commands.CreateBlockInput{
		PropertyID: r.PropertyID,
		Dates:      dates,
		Reason:     strings.TrimSpace(r.Reason),
	}, nil
}
