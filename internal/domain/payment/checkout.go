package payment

import "github.com/google/uuid"

// CheckoutRequest asks a provider to open a hosted payment page for one intent.
type CheckoutRequest struct {
	Reference string
	BookingID uuid.UUID
	Email     string
	Amount    int64
	Currency  string
}

type CheckoutSession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}
