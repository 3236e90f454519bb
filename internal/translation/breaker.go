package translation

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultBreakerOpenTimeout is how long an open breaker rejects calls before
// letting a single trial call through
const DefaultBreakerOpenTimeout = 5 * time.Second

// BreakerTranslator stops calling a provider after repeated failures.
// While the breaker is open every call fails immediately with
// gobreaker.ErrOpenState. After openTimeout one trial call is let through;
// its success closes the breaker again. Calls are never retried.
type BreakerTranslator struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerTranslator wraps next. The breaker opens after maxFailures
// consecutive failures and stays open for openTimeout, or
// DefaultBreakerOpenTimeout when openTimeout is not positive.
func NewBreakerTranslator(next Translator, maxFailures uint32, openTimeout time.Duration, logger *zap.Logger) *BreakerTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxFailures == 0 {
		maxFailures = 1
	}
	if openTimeout <= 0 {
		openTimeout = DefaultBreakerOpenTimeout
	}

	settings := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A canceled run says nothing about the provider.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("translation circuit breaker changed state",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BreakerTranslator{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *BreakerTranslator) Name() string {
	return b.next.Name()
}

// Translate calls the wrapped provider through the breaker
func (b *BreakerTranslator) Translate(ctx context.Context, word, targetLang string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, word, targetLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State returns the current breaker state
func (b *BreakerTranslator) State() gobreaker.State {
	return b.cb.State()
}
