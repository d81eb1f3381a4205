package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/vide/internal/translation"
)

// BreakerBackend wraps a backend with a circuit breaker. While the circuit
// is open, calls fail fast with ErrBackendRequest.
type BreakerBackend struct {
	next translation.Backend
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerBackend opens the circuit after failures consecutive failures
// and probes again after timeout
func NewBreakerBackend(next translation.Backend, name string, failures uint32, timeout time.Duration, logger *zap.Logger) *BreakerBackend {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up says nothing about backend health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Backend circuit state changed",
				zap.String("backend", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BreakerBackend{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Invoke forwards to the wrapped backend unless the circuit is open
func (b *BreakerBackend) Invoke(ctx context.Context, instructions string, schema *translation.Schema) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Invoke(ctx, instructions, schema)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %s: %w", translation.ErrBackendRequest, b.cb.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the current circuit state
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}
