package resilience

import "time"

// CircuitBreakerConfig describes a breaker. Non-positive limits take the defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Build returns nil when the breaker is disabled. A nil breaker allows every call.
func (c CircuitBreakerConfig) Build() *CircuitBreaker {
	if !c.Enabled {
		return nil
	}
	d := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = d.HalfOpenMaxReq
	}
	return NewCircuitBreaker(c.FailureThreshold, c.OpenTimeout, c.HalfOpenMaxReq)
}
