//go:build unit || e2e

package sessiontest

import (
	"testing"
	"time"

	"arenahub-booking/internal/pkg/config"
	"arenahub-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type TokenHelper struct {
	cfg config.SessionConfig
}

func NewTokenHelper(cfg config.SessionConfig) *TokenHelper {
	return &TokenHelper{cfg: cfg}
}

func (h *TokenHelper) GenerateToken(t *testing.T, sessionID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.TTL).GenerateToken(sessionID)
	require.NoError(t, err)
	return token
}

func (h *TokenHelper) CreateExpiredToken(t *testing.T, sessionID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(sessionID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
