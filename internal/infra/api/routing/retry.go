// Package routing decides how failed backend calls are handled: retried with
// backoff, or returned to the caller untouched.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vietddude/newscatcher/internal/infra/api/transport"
)

// RetryConfig defines retry behavior.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries   int
	InitialDelay time.Duration
	// MaxDelay caps a single wait. Zero disables the cap.
	MaxDelay time.Duration
}

// DefaultRetryConfig gives 3 attempts in total, waiting 1s then 2s.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:   2,
	InitialDelay: 1 * time.Second,
	MaxDelay:     30 * time.Second,
}

// WithDefaults fills a non-positive InitialDelay and a zero MaxDelay from
// DefaultRetryConfig and clamps a negative MaxRetries to zero.
func (c RetryConfig) WithDefaults() RetryConfig {
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultRetryConfig.InitialDelay
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = DefaultRetryConfig.MaxDelay
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ClassifyError determines the action for a given error. Only network-class
// failures are retried; application errors, caller cancellation and local
// encoding problems are returned as is.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionRetry // Should not happen
	}
	if errors.Is(err, context.Canceled) {
		return ActionFatal
	}
	if transport.IsNetworkError(err) {
		return ActionRetry
	}
	return ActionFatal
}

// RetryHook observes a failed attempt that is about to be retried after delay.
type RetryHook func(attempt int, delay time.Duration, err error)

// CallWithRetry runs fn until it succeeds, fails with a non-retryable error, or
// the retry budget is spent. Attempts are strictly sequential. It returns the
// number of attempts made alongside the result.
func CallWithRetry[T any](
	ctx context.Context,
	config RetryConfig,
	fn func(ctx context.Context, attempt int) (T, error),
	onRetry RetryHook,
) (T, int, error) {
	var (
		result  T
		attempt int
		lastErr error
	)

	initial := config.InitialDelay
	if initial <= 0 {
		initial = DefaultRetryConfig.InitialDelay
	}
	base := retry.NewExponential(initial)
	if config.MaxDelay > 0 {
		base = retry.WithCappedDuration(config.MaxDelay, base)
	}
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := retry.WithMaxRetries(uint64(maxRetries), retry.BackoffFunc(func() (time.Duration, bool) {
		delay, stop := base.Next()
		if !stop && onRetry != nil {
			onRetry(attempt, delay, lastErr)
		}
		return delay, stop
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, err := fn(ctx, attempt)
		if err == nil {
			result = res
			return nil
		}
		lastErr = err
		if ClassifyError(err) == ActionFatal {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		var zero T
		return zero, attempt, err
	}
	return result, attempt, nil
}
