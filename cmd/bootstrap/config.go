package bootstrap

import (
	"shortlet-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		splitConfig,
	),
)

// sectionsOut lets constructors depend on the section they use instead of the whole Config.
type sectionsOut struct {
	fx.Out

	Log     config.LogConfig
	JWT     config.JWTConfig
	Booking config.BookingConfig
	Payment config.PaymentConfig
	Jobs    config.JobsConfig
	Mail    config.MailConfig
}

func splitConfig(cfg config.Config) sectionsOut {
	return sectionsOut{
		Log:     cfg.Log,
		JWT:     cfg.JWT,
		Booking: cfg.Booking,
		Payment: cfg.Payment,
		Jobs:    cfg.Jobs,
		Mail:    cfg.Mail,
	}
}
