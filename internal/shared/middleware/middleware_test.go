package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cineops/internal/shared/config"
	"cineops/internal/users"
	"cineops/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig(authEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.Auth.Enabled = authEnabled
	return cfg
}

func signToken(t *testing.T, tokenType, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"employee_id": "1f0b8e9a-3b7c-4f4e-9a55-0c2d9e8f6a11",
		"email":       "cashier@cineops.local",
		"role":        role,
		"type":        tokenType,
		"exp":         time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(EmployeeRoleKey))
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newEngine(JWTAuthWithConfig(testConfig(true)))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + signToken(t, "refresh", "CASHIER", time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, "access", "CASHIER", -time.Minute), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, "access", "CASHIER", time.Hour), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(r, tt.header).Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	cfg := testConfig(true)
	r := newEngine(JWTAuthWithConfig(cfg), RequireRoles(users.RoleAdmin))

	w := get(r, "Bearer "+signToken(t, "access", "CASHIER", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "Bearer "+signToken(t, "access", "ADMIN", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ADMIN", w.Body.String())
}

func TestStaffGuardDisabled(t *testing.T) {
	r := newEngine(StaffGuard(testConfig(false)))

	assert.Equal(t, http.StatusOK, get(r, "").Code)
}

func TestStaffGuardEnabled(t *testing.T) {
	r := newEngine(StaffGuard(testConfig(true)))

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(logger.RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(2 * time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		if ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
