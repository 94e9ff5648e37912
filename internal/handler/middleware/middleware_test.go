//go:build unit

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/handler/middleware"
	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/pkg/cookie"
	"car-rental-platform/tests/common/builder"
	usecasemock "car-rental-platform/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.Response {
	t.Helper()
	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestRequireAuth(t *testing.T) {
	client := builder.ClientPrincipal()

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		validate   func(m *usecasemock.MockTokenValidator)
		wantStatus int
	}{
		{
			name:       "no token",
			prepare:    func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
			},
			validate: func(m *usecasemock.MockTokenValidator) {
				m.EXPECT().ValidateToken("good").Return(client, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "access token cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: "from-cookie"})
			},
			validate: func(m *usecasemock.MockTokenValidator) {
				m.EXPECT().ValidateToken("from-cookie").Return(client, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "rejected token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer stale")
			},
			validate: func(m *usecasemock.MockTokenValidator) {
				m.EXPECT().ValidateToken("stale").Return(user.Principal{}, assert.AnError)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			validator := usecasemock.NewMockTokenValidator(ctrl)
			if tt.validate != nil {
				tt.validate(validator)
			}
			auth := middleware.NewAuthMiddleware(validator)

			var seen user.Principal
			r := gin.New()
			r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
				seen, _ = middleware.GetPrincipal(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, client, seen)
				return
			}
			assert.Equal(t, "unauthorized", decodeError(t, w).Error.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := middleware.NewAuthMiddleware(usecasemock.NewMockTokenValidator(ctrl))

	tests := []struct {
		name       string
		principal  user.Principal
		wantStatus int
	}{
		{name: "manager allowed", principal: builder.ManagerPrincipal(uuid.New()), wantStatus: http.StatusOK},
		{name: "admin allowed", principal: builder.AdminPrincipal(), wantStatus: http.StatusOK},
		{name: "client forbidden", principal: builder.ClientPrincipal(), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.PATCH("/status",
				middleware.SetPrincipalForTest(tt.principal),
				auth.RequireRole(user.RoleManager, user.RoleAdmin),
				func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/status", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCORS_AlwaysAllowsIdempotencyHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins: []string{"https://app.example.com"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       time.Hour,
	}))
	r.POST("/api/reservations", func(c *gin.Context) {
		c.Header("Idempotent-Replayed", "true")
		c.Status(http.StatusOK)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/reservations", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("actual request exposes replay header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Idempotent-Replayed")
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("renders a recorded public error", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.ErrorHandler())
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(gin.Error{
				Err:  assert.AnError,
				Type: gin.ErrorTypePublic,
				Meta: httperr.NewResponse(http.StatusConflict, "Vehicle is being booked by another request", nil),
			})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		require.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "conflict", resp.Error.Code)
		assert.Equal(t, "Vehicle is being booked by another request", resp.Error.Message)
	})

	t.Run("handler that writes nothing is a 500", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.ErrorHandler())
		r.GET("/x", func(*gin.Context) {})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal", decodeError(t, w).Error.Code)
	})
}

func TestCustomRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CustomRecovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "internal", resp.Error.Code)
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
