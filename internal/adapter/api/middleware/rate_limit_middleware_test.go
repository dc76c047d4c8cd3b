package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestRateLimiterIsPerIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimiterRefillsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.allow("10.0.0.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.RateLimitMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/verification", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusOK, run().Code)
	rec := run()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "retry_after")
}
