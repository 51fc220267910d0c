// Package retry provides the two waiting primitives shared by all
// provider adapters: a constant-delay retry for operations that may
// legitimately need several attempts (dataset fetches), and a bounded
// poll for watching an asynchronous run reach a terminal state.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrExhausted is returned by Poll when the condition never became
// terminal within the attempt budget.
var ErrExhausted = errors.New("retry: attempts exhausted")

// Permanent marks err as non-retryable; Fixed stops immediately and
// returns it instead of consuming further attempts.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Fixed runs fn up to attempts times with a constant delay between
// attempts, stopping early on success, a Permanent error, or context
// cancellation. The last error is returned when attempts run out.
func Fixed(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)
	return backoff.Retry(fn, bo)
}

// Poll invokes fn once per interval until fn reports done, fn returns a
// terminal error, the context ends, or attempts are exhausted. Callers
// signal a transient probe failure by returning (false, nil), which
// keeps the loop going; any non-nil error stops it immediately.
func Poll(ctx context.Context, interval time.Duration, attempts int, fn func(context.Context) (bool, error)) error {
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		done, err := fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return ErrExhausted
}
