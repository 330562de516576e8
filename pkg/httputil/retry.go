package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a fetch failure as transient. The asset loader wraps
// network timeouts and 5xx responses from template and logo hosts with this
// type so that [Retry] attempts the download again instead of giving up.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay after each failure.
// Only errors wrapped in [RetryableError] are retried; a permanent failure
// (a 404 for a missing template, a malformed URL) is returned immediately.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled
// while waiting between attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is the policy used for remote asset fetches: 3 attempts
// with a 1 second initial delay, doubling each retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
