package response

import (
	"time"

	"shortlet-booking/internal/domain/booking"
	"shortlet-booking/internal/domain/stay"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"propertyId"`
	PropertyTitle    string     `json:"propertyTitle"`
	Timezone         string     `json:"timezone"`
	GuestID          uuid.UUID  `json:"guestId"`
	CheckIn          string     `json:"checkIn"`
	CheckOut         string     `json:"checkOut"`
	GuestCount       int32      `json:"guestCount"`
	Nights           int32      `json:"nights"`
	NightlyPrice     int64      `json:"nightlyPrice"`
	Subtotal         int64      `json:"subtotal"`
	CleaningFee      int64      `json:"cleaningFee"`
	Deposit          int64      `json:"deposit"`
	Total            int64      `json:"total"`
	Currency         string     `json:"currency"`
	BookingMode      string     `json:"bookingMode"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	ExpiresAt        time.Time  `json:"expiresAt"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BookingStateResponse is returned by commands that move a booking.
type BookingStateResponse struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"propertyId"`
	CheckIn          string     `json:"checkIn"`
	CheckOut         string     `json:"checkOut"`
	Nights           int        `json:"nights"`
	Total            int64      `json:"total"`
	Currency         string     `json:"currency"`
	BookingMode      string     `json:"bookingMode"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	ExpiresAt        time.Time  `json:"expiresAt"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CancelReason     string     `json:"cancelReason,omitempty"`
	// Replayed is set when an idempotent create returned an earlier booking.
	Replayed bool `json:"replayed,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingStateResponse {
	return &BookingStateResponse{
		ID:               b.ID(),
		PropertyID:       b.PropertyID(),
		CheckIn:          b.Dates().CheckIn().Format(stay.DateLayout),
		CheckOut:         b.Dates().CheckOut().Format(stay.DateLayout),
		Nights:           b.Nights(),
		Total:            b.Total(),
		Currency:         b.Currency(),
		BookingMode:      b.Mode().String(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		PaymentReference: b.PaymentReference(),
		ExpiresAt:        b.ExpiresAt(),
		DecidedAt:        b.DecidedAt(),
		CancelledAt:      b.CancelledAt(),
		CancelReason:     b.CancelReason(),
	}
}
