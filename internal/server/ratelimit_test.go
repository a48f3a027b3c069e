package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atscreen/internal/config"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 2, nil)
	defer rl.Close()

	// Burst capacity of two allows two immediate requests, the third is
	// rejected until tokens refill.
	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))

	// Separate keys get separate buckets.
	assert.True(t, rl.Allow("client-b"))
}

func TestRateLimiterStats(t *testing.T) {
	rl := NewRateLimiter(120, time.Minute, 5, nil)
	defer rl.Close()

	rl.Allow("a")
	rl.Allow("b")

	stats := rl.GetStats()
	assert.Equal(t, 2, stats["active_limiters"])
	assert.Equal(t, 2.0, stats["rate_per_second"])
	assert.Equal(t, 120.0, stats["rate_per_minute"])
	assert.Equal(t, 5, stats["burst_capacity"])
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 1, nil)
	defer rl.Close()

	rl.Allow("stale")
	rl.mu.Lock()
	rl.lastSeen["stale"] = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanup(30 * time.Minute)

	rl.mu.Lock()
	_, exists := rl.limiters["stale"]
	rl.mu.Unlock()
	assert.False(t, exists)
}

func TestRateLimitMiddleware(t *testing.T) {
	srv, om := newTestServer(t)
	srv.RateLimit = &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  2,
		ByIP:           true,
	}
	srv.RateLimiter = NewRateLimiter(srv.RateLimit.RequestsPerMin, time.Minute, srv.RateLimit.BurstCapacity, srv.Logger)
	defer srv.RateLimiter.Close()

	mux := srv.setupRoutes(om)

	get := func() int {
		req := httptest.NewRequest(http.MethodPost, "/detect", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	// The first two requests consume the burst. They fail JSON validation
	// but get past the limiter.
	assert.Equal(t, http.StatusBadRequest, get())
	assert.Equal(t, http.StatusBadRequest, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	req.RemoteAddr = "198.51.100.4:55000"

	assert.Equal(t, "ip:198.51.100.4", getRateLimitKey(req, false, true))
	assert.Equal(t, "", getRateLimitKey(req, false, false))

	req.Header.Set("X-API-Key", "key-1")
	assert.Equal(t, "api:key-1", getRateLimitKey(req, true, true))

	req.Header.Del("X-API-Key")
	req.Header.Set("Authorization", "Bearer key-2")
	assert.Equal(t, "api:key-2", getRateLimitKey(req, true, false))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	assert.Equal(t, "192.0.2.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "invalid, 203.0.113.1")
	assert.Equal(t, "203.0.113.1", getClientIP(req))
}

func TestParseFirstIP(t *testing.T) {
	assert.Equal(t, "203.0.113.1", parseFirstIP("203.0.113.1, 198.51.100.2"))
	assert.Equal(t, "198.51.100.2", parseFirstIP("garbage, 198.51.100.2"))
	assert.Equal(t, "", parseFirstIP("not-an-ip"))
}

func TestRateLimitDisabledPassThrough(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Nil(t, srv.RateLimiter)

	middleware := srv.rateLimitMiddleware()
	called := false
	handler := middleware(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	handler(httptest.NewRecorder(), req)
	assert.True(t, called)
}
