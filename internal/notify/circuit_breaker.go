package notify

import (
	"atscreen/internal/config"
	"atscreen/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// MailCircuitBreaker wraps SMTP delivery with circuit breaker pattern
type MailCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

// NewMailCircuitBreaker creates a circuit breaker for outbound mail delivery
func NewMailCircuitBreaker(cfg *config.CircuitBreakerConfig, logger *errors.Logger) *MailCircuitBreaker {
	// If circuit breaker is disabled, return nil to indicate no circuit breaker
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "SMTP-Delivery",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &MailCircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Execute executes the provided function with circuit breaker protection
func (cb *MailCircuitBreaker) Execute(fn func() error) error {
	if cb == nil || cb.cb == nil {
		// If breaker is disabled/nil, just execute the function directly
		return fn()
	}
	_, err := cb.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// GetStats returns circuit breaker statistics
func (cb *MailCircuitBreaker) GetStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    cb.cb.Name(),
		"state":   cb.cb.State().String(),
		"counts":  cb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (cb *MailCircuitBreaker) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true // If no circuit breaker, consider it healthy
	}
	return cb.cb.State() == gobreaker.StateClosed
}
