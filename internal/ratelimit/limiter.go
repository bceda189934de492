package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests to a provider
type Limiter interface {
	// Wait blocks until a request may be sent or ctx is done
	Wait(ctx context.Context) error
}

// Config holds the request budget of a provider
type Config struct {
	// RequestsPerSecond is the sustained rate; zero or less disables throttling
	RequestsPerSecond float64
	// Burst is the number of requests allowed at once; zero means 1
	Burst int
}

type limiter struct {
	name  string
	local *rate.Limiter
}

// NewLimiter creates a process-local token bucket for the named provider
func NewLimiter(name string, cfg Config) Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return &limiter{name: name, local: rate.NewLimiter(rate.Inf, 0)}
	}
	burst := max(cfg.Burst, 1)
	return &limiter{name: name, local: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)}
}

func (l *limiter) Wait(ctx context.Context) error {
	if err := l.local.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}
