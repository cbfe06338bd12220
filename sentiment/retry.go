package sentiment

import (
	"context"
	"time"
)

// RetryPolicy bounds how often the remote classifier is retried before the
// adapter falls back to the keyword-only verdict.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the production behavior: 3 attempts total with
// a fixed 5s pause between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second}
}

// sleep waits for the configured delay, returning early if ctx is done.
func (p RetryPolicy) sleep(ctx context.Context) {
	if p.Delay <= 0 {
		return
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
