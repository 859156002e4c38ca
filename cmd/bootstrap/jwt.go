package bootstrap

import (
	"time"

	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

// Tokens are issued by the marketplace identity service; this lifetime only
// applies to tokens minted locally by tooling.
const localTokenLifetime = time.Hour

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.JWTConfig) *jwt.Service {
	return jwt.NewService(cfg.Secret, localTokenLifetime)
}
