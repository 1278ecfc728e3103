package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestLimiter(cfg *Config) (*RateLimiter, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	rl := NewRateLimiter(db, cfg)
	rl.now = func() time.Time { return testNow }
	rl.member = func(time.Time) string { return "m" }
	return rl, mock
}

func expectEval(mock redismock.ClientMock, key string, limit int) *redismock.ExpectedCmd {
	return mock.ExpectEval(slidingWindowScript, []string{key},
		testNow.Add(-time.Minute).UnixMicro(), testNow.UnixMicro(), limit, 60, "m")
}

func enabledConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 60,
		AuthRequests:    2,
		BookingRequests: 30,
		SalesRequests:   40,
		WhitelistedIPs:  []string{"10.0.0.1"},
	}
}

func TestIsAllowedUnderLimit(t *testing.T) {
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:1.2.3.4:booking", 30).SetVal([]interface{}{int64(1), int64(1), int64(29)})

	res, err := rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeBooking)

	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 30, res.Limit)
	assert.Equal(t, 29, res.Remaining)
	assert.Equal(t, testNow.Add(time.Minute).Unix(), res.ResetTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAllowedOverLimit(t *testing.T) {
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:1.2.3.4:auth", 2).SetVal([]interface{}{int64(0), int64(2), int64(0)})

	res, err := rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeAuth)

	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)
}

func TestIsAllowedRedisFailure(t *testing.T) {
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:1.2.3.4:sales", 40).SetErr(errors.New("connection refused"))

	_, err := rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeSales)

	assert.ErrorContains(t, err, "redis eval failed")
}

func TestIsAllowedUnexpectedReply(t *testing.T) {
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:1.2.3.4:sales", 40).SetVal([]interface{}{"yes", int64(1), int64(3)})

	_, err := rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeSales)

	assert.Error(t, err)
}

func TestWhitelistAndDisabledSkipRedis(t *testing.T) {
	rl, mock := newTestLimiter(enabledConfig())

	res, err := rl.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)

	cfg := enabledConfig()
	cfg.Enabled = false
	rl, mock = newTestLimiter(cfg)
	res, err = rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method, path string
		want         RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodPost, "/api/v1/auth/login", RateLimitTypeAuth},
		{http.MethodPut, "/api/v1/bookings/:id/confirm", RateLimitTypeBooking},
		{http.MethodPost, "/api/v1/tickets", RateLimitTypeSales},
		{http.MethodGet, "/api/v1/films/active", RateLimitTypePublic},
		{http.MethodPost, "/api/v1/films", RateLimitTypeDefault},
		{http.MethodGet, "/api/v1/customers", RateLimitTypeDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getRateLimitType(tt.method, tt.path), tt.method+" "+tt.path)
	}
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:192.0.2.1:auth", 2).SetVal([]interface{}{int64(0), int64(2), int64(0)})

	r := gin.New()
	r.Use(Middleware(rl))
	r.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "192.0.2.1, 10.1.1.1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestMiddlewareStorageFailureIs503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, mock := newTestLimiter(enabledConfig())
	expectEval(mock, "cineops:ratelimit:192.0.2.1:default", 60).SetErr(errors.New("i/o timeout"))

	r := gin.New()
	r.Use(Middleware(rl))
	r.GET("/api/v1/customers", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
