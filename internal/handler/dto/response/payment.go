package response

import (
	"time"

	"shortlet-booking/internal/usecase/commands"
	"shortlet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentIntentResponse struct {
	BookingID        uuid.UUID `json:"bookingId"`
	Reference        string    `json:"reference"`
	AuthorizationURL string    `json:"authorizationUrl"`
	AccessCode       string    `json:"accessCode,omitempty"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

func FromIntentResult(r *commands.IntentResult) (*PaymentIntentResponse, error) {
	var resp PaymentIntentResponse
	if err := copier.Copy(&resp, r); err != nil {
		return nil, err
	}
	return &resp, nil
}

type PaymentOutcomeResponse struct {
	Reference        string    `json:"reference"`
	BookingID        uuid.UUID `json:"bookingId"`
	IntentStatus     string    `json:"intentStatus"`
	BookingStatus    string    `json:"bookingStatus"`
	PaymentStatus    string    `json:"paymentStatus"`
	AlreadyProcessed bool      `json:"alreadyProcessed"`
	Activated        bool      `json:"activated"`
}

func FromReconcileOutcome(o *commands.ReconcileOutcome) *PaymentOutcomeResponse {
	return &PaymentOutcomeResponse{
		Reference:        o.Reference,
		BookingID:        o.BookingID,
		IntentStatus:     string(o.IntentStatus),
		BookingStatus:    string(o.BookingStatus),
		PaymentStatus:    string(o.PaymentStatus),
		AlreadyProcessed: o.AlreadyProcessed,
		Activated:        o.Activated,
	}
}

type PaymentStatusResponse struct {
	Booking *BookingResponse             `json:"booking"`
	Intents []*queries.PaymentIntentView `json:"intents"`
}

func FromPaymentStatusView(v *queries.PaymentStatusView) (*PaymentStatusResponse, error) {
	b, err := FromBookingView(v.Booking)
	if err != nil {
		return nil, err
	}
	intents := v.Intents
	if intents == nil {
		intents = []*queries.PaymentIntentView{}
	}
	return &PaymentStatusResponse{Booking: b, Intents: intents}, nil
}
