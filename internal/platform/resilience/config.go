package resilience

import "time"

// Breaker thresholds used when NHLE_CIRCUIT_* leaves a value unset.
const (
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 15 * time.Second
	DefaultHalfOpenMaxReq   = 2
)

// CircuitBreakerConfig guards the schedule upstream. A disabled breaker still
// carries thresholds so it can be switched on without reconfiguring.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// WithDefaults replaces non-positive thresholds; Enabled is kept as given.
func (c CircuitBreakerConfig) WithDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = DefaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = DefaultHalfOpenMaxReq
	}
	return c
}
