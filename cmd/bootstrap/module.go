package bootstrap

import (
	"shortlet-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.ProviderModule,
	components.UseCaseModule,
	components.HandlerModule,
)
