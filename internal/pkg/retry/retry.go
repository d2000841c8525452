// Package retry wraps sethvargo/go-retry with a typed, attempt-counting
// policy so callers get the operation result and a terminal error that
// reports how many attempts were made.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy controls how many times an operation runs and how long to wait
// between attempts.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Delay returns the wait before the next attempt; its argument is the
	// attempt that just failed (1-based). Nil means no delay.
	Delay func(attempt int) time.Duration
}

// Linear returns a delay function growing linearly with the attempt number:
// base after attempt 1, 2*base after attempt 2, and so on.
func Linear(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// ExhaustedError reports that every attempt of an operation failed. It wraps
// the error from the final attempt.
type ExhaustedError struct {
	// Attempts is the number of attempts made.
	Attempts int
	// Last is the error returned by the final attempt.
	Last error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Last)
}

// Unwrap returns the error from the final attempt.
func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do runs op until it succeeds, the policy is exhausted, or ctx is done.
// Every failure consumes an attempt; on exhaustion the returned error is an
// *ExhaustedError carrying the attempt count and the last cause. Context
// cancellation is returned as-is.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	attempt := 0
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= p.MaxAttempts {
			return 0, true
		}
		if p.Delay == nil {
			return 0, false
		}
		return p.Delay(attempt), false
	})

	var out T
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		var opErr error
		out, opErr = op(ctx)
		if opErr != nil {
			return retry.RetryableError(opErr)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return zero, err
		}
		return zero, &ExhaustedError{Attempts: attempt, Last: err}
	}

	return out, nil
}
