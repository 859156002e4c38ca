package components

import (
	"log/slog"

	"shortlet-booking/internal/infra/mailer"
	"shortlet-booking/internal/infra/paystack"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

// ProviderModule wires the outbound integrations: the payment provider and the mail relay.
var ProviderModule = fx.Module("provider",
	fx.Provide(
		fx.Annotate(
			NewPaymentProvider,
			fx.As(new(commands.PaymentProvider)),
		),
		fx.Annotate(
			mailer.NewSMTPNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)

func NewPaymentProvider(cfg config.PaymentConfig) *paystack.Client {
	if cfg.Provider != paystack.ProviderName {
		slog.Warn("unsupported payment provider, falling back to paystack", "provider", cfg.Provider)
	}
	if cfg.SecretKey == "" {
		slog.Warn("PAYSTACK_SECRET_KEY is not set; payment endpoints will answer 503")
	}
	return paystack.NewClient(cfg)
}
