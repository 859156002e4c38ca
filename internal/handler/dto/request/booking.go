package request

import (
	"strings"

	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required,isodate"`
	CheckOut   string    `json:"checkOut" binding:"required,isodate"`
	GuestCount int       `json:"guestCount" binding:"required,min=1,max=50"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	dates, err := stay.ParseDateRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		PropertyID: r.PropertyID,
		Dates:      dates,
		GuestCount: r.GuestCount,
	}, nil
}

type BookingDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve decline"`
}

func (r BookingDecisionRequest) Approve() bool {
	return r.Decision == "approve"
}

type CancelBookingRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

func (r CancelBookingRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}
