package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultDelay = 100 * time.Millisecond

// Backoff maps an attempt number (starting at 1) to a wait duration.
type Backoff func(attempt int) time.Duration

type Policy struct {
	MaxAttempts int
	Backoff     Backoff
	Retryable   func(error) bool
}

func (p *Policy) normalize() {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = 1
	}
	if p.Backoff == nil {
		p.Backoff = Exponential(defaultDelay)
	}
	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}
}

// Exponential doubles the delay per attempt with up to 50% jitter.
func Exponential(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		base := 1 << attempt * delay
		jitter := time.Duration(rand.IntN(int(base/2)) + 1)
		return base + jitter
	}
}

func Constant(delay time.Duration) Backoff {
	return func(int) time.Duration {
		return delay
	}
}

func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := DoWithResult(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult runs fn until it succeeds, returns a non-retryable
// error, or the attempt budget is spent. Waiting respects ctx.
func DoWithResult[T any](
	ctx context.Context, p Policy, fn func() (T, error),
) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	p.normalize()
	timer := time.NewTimer(0)
	defer timer.Stop()

	var (
		result T
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !p.Retryable(err) || attempt == p.MaxAttempts {
			return zero, err
		}

		timer.Reset(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}
