package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is the read-optimized booking with its property context.
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	PropertyID       uuid.UUID  `json:"propertyId"`
	PropertyTitle    string     `json:"propertyTitle"`
	Timezone         string     `json:"timezone"`
	HostID           uuid.UUID  `json:"hostId"`
	AgentID          *uuid.UUID `json:"agentId,omitempty"`
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

type PaymentIntentView struct {
	ID               uuid.UUID `json:"id"`
	Provider         string    `json:"provider"`
	Reference        string    `json:"reference"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	AuthorizationURL string    `json:"authorizationUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type PaymentStatusView struct {
	Booking *BookingView         `json:"booking"`
	Intents []*PaymentIntentView `json:"intents"`
}

type UnavailableRangeView struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Source   string `json:"source"`
}

type RateCardView struct {
	NightlyPrice       int64  `json:"nightlyPrice"`
	CleaningFee        int64  `json:"cleaningFee"`
	Deposit            int64  `json:"deposit"`
	Currency           string `json:"currency"`
	MinNights          int    `json:"minNights"`
	MaxNights          int    `json:"maxNights"`
	AdvanceNoticeHours int    `json:"advanceNoticeHours"`
	PrepDays           int    `json:"prepDays"`
	CheckInTime        string `json:"checkInTime"`
	CheckOutTime       string `json:"checkOutTime"`
	CancellationPolicy string `json:"cancellationPolicy"`
	Timezone           string `json:"timezone"`
}

type AvailabilityView struct {
	PropertyID  uuid.UUID              `json:"propertyId"`
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Unavailable []UnavailableRangeView `json:"unavailable"`
	RateCard    RateCardView           `json:"rateCard"`
	BookingMode string                 `json:"bookingMode"`
}

type QuoteView struct {
	PropertyID   uuid.UUID `json:"propertyId"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	Nights       int       `json:"nights"`
	NightlyPrice int64     `json:"nightlyPrice"`
	Subtotal     int64     `json:"subtotal"`
	CleaningFee  int64     `json:"cleaningFee"`
	Deposit      int64     `json:"deposit"`
	Total        int64     `json:"total"`
	Currency     string    `json:"currency"`
	BookingMode  string    `json:"bookingMode"`
	Available    bool      `json:"available"`
	// Reason explains an unavailable verdict.
	Reason string `json:"reason,omitempty"`
}
