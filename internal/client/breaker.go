package client

import (
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerRegistry holds one circuit breaker per remote operation name. It is
// created once at startup and shared by every caller for the life of the
// process.
type BreakerRegistry struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker

	failureThreshold uint32
	cooldown         time.Duration
}

func NewBreakerRegistry(failureThreshold int, cooldown time.Duration) *BreakerRegistry {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if cooldown <= 0 {
		cooldown = 10 * time.Second
	}
	return &BreakerRegistry{
		breakers:         make(map[string]*gobreaker.CircuitBreaker),
		failureThreshold: uint32(failureThreshold),
		cooldown:         cooldown,
	}
}

func (r *BreakerRegistry) Get(name string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[name]; ok {
		return cb
	}

	threshold := r.failureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     r.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Business rejections are valid answers from a healthy service and
		// must not open the circuit.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
		},
	})
	r.breakers[name] = cb
	return cb
}
