// Package httputil provides HTTP utilities for remote asset fetching.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap transient errors in [RetryableError] so Retry knows to attempt the
// operation again; permanent failures (404s, decode errors) return
// immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    // ...
//	})
//
// Defaults: 3 attempts with 1 second initial delay, doubling each retry.
package httputil
