//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

const tokenTTL = 15 * time.Minute

// JWTHelper signs tokens the way the identity service does, with the app's secret.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, p user.Principal) string {
	t.Helper()
	token, err := h.service.GenerateToken(p, tokenTTL)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, p user.Principal) string {
	t.Helper()
	token, err := h.service.GenerateToken(p, -time.Minute)
	require.NoError(t, err)
	return token
}
