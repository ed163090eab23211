package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoubre/employee-manager/internal/config"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func rateLimitedRequest(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/employees")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, mw(next)(c))
	return rec
}

func TestRateLimit_BlocksAfterCapacity(t *testing.T) {
	rdb := newTestRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
	mw := RateLimit(cfg, rdb)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, mw).Code)
	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, mw).Code)

	rec := rateLimitedRequest(t, mw)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	mw := RateLimit(config.RateLimitConfig{Enabled: false}, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, rateLimitedRequest(t, mw).Code)
	}
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	// Client pointed at nothing: script errors, requests pass.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
	mw := RateLimit(cfg, rdb)
	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, mw).Code)
	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, mw).Code)
}
