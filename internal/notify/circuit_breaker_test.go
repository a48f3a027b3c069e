package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atscreen/internal/config"
)

func enabledBreakerConfig() *config.CircuitBreakerConfig {
	return &config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
}

func TestNewMailCircuitBreakerDisabled(t *testing.T) {
	cb := NewMailCircuitBreaker(&config.CircuitBreakerConfig{Enabled: false}, testLogger(t))
	assert.Nil(t, cb)

	// A nil breaker executes directly and reports healthy.
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, cb.IsHealthy())
	assert.Equal(t, map[string]any{"enabled": false}, cb.GetStats())
}

func TestMailCircuitBreakerExecute(t *testing.T) {
	cb := NewMailCircuitBreaker(enabledBreakerConfig(), testLogger(t))
	require.NotNil(t, cb)

	require.NoError(t, cb.Execute(func() error { return nil }))

	sendErr := errors.New("smtp unavailable")
	err := cb.Execute(func() error { return sendErr })
	assert.ErrorIs(t, err, sendErr)
	assert.True(t, cb.IsHealthy())
}

func TestMailCircuitBreakerTripsAfterFailures(t *testing.T) {
	cb := NewMailCircuitBreaker(enabledBreakerConfig(), testLogger(t))
	require.NotNil(t, cb)

	sendErr := errors.New("smtp unavailable")
	for range 2 {
		_ = cb.Execute(func() error { return sendErr })
	}

	// MinRequests reached with a 100% failure ratio, so the breaker opens
	// and rejects calls without invoking the function.
	assert.False(t, cb.IsHealthy())
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)

	stats := cb.GetStats()
	assert.Equal(t, "SMTP-Delivery", stats["name"])
	assert.Equal(t, "open", stats["state"])
	assert.Equal(t, true, stats["enabled"])
}
