package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards operator endpoints with a static bearer token.
// Session tokens are never accepted here.
type AdminMiddleware struct {
	token string
}

func NewAdminMiddleware(cfg config.Config) *AdminMiddleware {
	if cfg.Admin.Token == "" {
		slog.Warn("ADMIN_TOKEN is empty; operator endpoints will reject every request")
	}
	return &AdminMiddleware{token: cfg.Admin.Token}
}

func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if m.token == "" || token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrAdminRequired, "Admin token required", nil)
			return
		}
		c.Next()
	}
}
