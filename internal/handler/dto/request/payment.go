package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreatePaymentIntentRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

type PaymentStatusQuery struct {
	BookingID string `form:"bookingId" binding:"required,uuid"`
}

func (q PaymentStatusQuery) Booking() (uuid.UUID, error) {
	return uuid.Parse(q.BookingID)
}

type VerifyPaymentRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Reference string    `json:"reference" binding:"required,max=100"`
}

func (r VerifyPaymentRequest) GetReference() string {
	return strings.TrimSpace(r.Reference)
}
