package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/pkg/cookie"
	"car-rental-platform/internal/pkg/errs"
	"car-rental-platform/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxPrincipalKey = "principal"
	ctxClaimsKey    = "jwt_claims"
)

var (
	errTokenRequired = errs.New("access token required")
	errNoPrincipal   = errs.New("principal missing from context")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth resolves the bearer token (or access_token cookie) into a request-scoped principal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
			return
		}

		if !slices.Contains(roles, principal.Role) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrForbidden, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(authHeader[len("Bearer "):]); token != "" {
			return token
		}
	}
	return cookie.GetAccessToken(c)
}

func setPrincipal(c *gin.Context, p user.Principal) {
	c.Set(ctxPrincipalKey, p)

	claims := map[string]any{
		"user_id": p.UserID.String(),
		"role":    p.Role.String(),
	}
	if p.AgencyID != nil {
		claims["agency_id"] = p.AgencyID.String()
	}
	c.Set(ctxClaimsKey, claims)
}

func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return user.Principal{}, false
	}

	p, ok := v.(user.Principal)
	return p, ok
}

// SetPrincipalForTest lets handler tests skip token validation.
func SetPrincipalForTest(p user.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		setPrincipal(c, p)
		c.Next()
	}
}
