package commands

import (
	"context"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/payment"
)

//go:generate mockgen -source=ports.go -destination=../../mock/commands/ports_mock.go -package=commandsmock

// PaymentProvider is the hosted-checkout provider (Paystack in production).
type PaymentProvider interface {
	Name() string
	Initialize(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	Verify(ctx context.Context, reference string) (payment.ProviderEvent, error)
	// ParseWebhook authenticates and decodes a provider callback. ok is false for
	// events that carry no payment outcome.
	ParseWebhook(signature string, body []byte) (event payment.ProviderEvent, ok bool, err error)
}

// Notifier delivers one outbox message. Message format is the notifier's concern.
type Notifier interface {
	Notify(ctx context.Context, msg notification.Message) error
}
