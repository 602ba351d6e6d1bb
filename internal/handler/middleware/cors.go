package middleware

import (
	"log/slog"
	"slices"

	"arenahub-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always exposes X-Request-ID so the browser can quote it
// when a booking fails.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	exposed := slices.Clone(cfg.ExposeHeaders)
	if !slices.Contains(exposed, requestIDHeader) {
		exposed = append(exposed, requestIDHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials,
	)
	return cors.New(corsCfg)
}
