package breaker

import (
	"context"
	"errors"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/sony/gobreaker/v2"
)

// Provider fails fast while the upstream model is known to be down. It never
// retries: a failed call is returned to the caller as is.
type Provider struct {
	next llm.Provider
	cb   *gobreaker.CircuitBreaker[string]
}

func Wrap(name string, next llm.Provider) *Provider {
	return WrapWithThreshold(name, next, config.BreakerFailureThreshold)
}

func WrapWithThreshold(name string, next llm.Provider, threshold uint32) *Provider {
	logger := logger_i.NewLogger("llm_breaker")
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     config.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			//a caller hanging up says nothing about the provider
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "provider", name, "from", from.String(), "to", to.String())
		},
	}
	return &Provider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.cb.Execute(func() (string, error) {
		return p.next.Generate(ctx, prompt)
	})
}

func (p *Provider) State() gobreaker.State {
	return p.cb.State()
}

func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
