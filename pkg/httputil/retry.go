package httputil

import (
	"context"
	"time"
)

// Default retry policy.
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = time.Second
)

// Policy controls how often and how patiently a request is retried.
//
// A rate-limited attempt (HTTP 429) waits BaseDelay * 2^attempt, where the
// first attempt is attempt 0. Any other failed attempt waits a flat BaseDelay.
// There is no jitter.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy returns 5 attempts with a one second base delay.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

// WithDefaults fills zero fields with the defaults.
func (p Policy) WithDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.BaseDelay == 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// RateLimitDelay returns the wait after a 429 on the given attempt.
func (p Policy) RateLimitDelay(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

// ErrorDelay returns the wait after any other failed attempt.
func (p Policy) ErrorDelay() time.Duration {
	return p.BaseDelay
}

// MaxWait is the longest a single fetch can spend sleeping: every attempt
// rate limited.
func (p Policy) MaxWait() time.Duration {
	var total time.Duration
	for i := range p.MaxAttempts {
		total += p.RateLimitDelay(i)
	}
	return total
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default [SleepFunc] backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
