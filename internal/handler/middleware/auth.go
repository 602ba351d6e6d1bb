package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"arenahub-booking/internal/handler/httperr"
	"arenahub-booking/internal/pkg/cookie"
	"arenahub-booking/internal/pkg/errs"
	"arenahub-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxSessionIDKey = "session_id"

func NewSessionMiddleware(tokenValidator usecase.TokenValidator) *SessionMiddleware {
	return &SessionMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireSession accepts the session cookie or an Authorization bearer token.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrInvalidSession, "Session token required", nil)
			return
		}

		sessionID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in session middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errs.ErrInvalidSession), "Invalid or expired session", nil)
			return
		}

		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	return bearerToken(c)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := sessionID.(uuid.UUID)
	return id, ok
}
