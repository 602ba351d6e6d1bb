package bootstrap

import (
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService ties token lifetime to the session TTL so the cookie, the
// token and the stored session expire together.
func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Session.TTL <= 0 {
		panic("invalid SESSION_TTL: must be positive")
	}
	return jwt.NewService(cfg.Session.Secret, cfg.Session.TTL)
}
