package routing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/newscatcher/internal/infra/api/transport"
)

func networkErr() error {
	return &transport.NetworkError{Method: "GET", Path: "/news", Err: errors.New("connection refused")}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err    error
		expect ErrorAction
	}{
		{networkErr(), ActionRetry},
		{fmt.Errorf("wrapped: %w", networkErr()), ActionRetry},
		{&transport.StatusError{StatusCode: 404}, ActionFatal},
		{&transport.StatusError{StatusCode: 503}, ActionFatal},
		{context.Canceled, ActionFatal},
		{errors.New("marshal request: bad"), ActionFatal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, ClassifyError(tt.err), "ClassifyError(%v)", tt.err)
	}
}

func TestRetryConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, RetryConfig{MaxRetries: 0, InitialDelay: time.Second, MaxDelay: 30 * time.Second},
		RetryConfig{}.WithDefaults())
	assert.Equal(t, RetryConfig{MaxRetries: 2, InitialDelay: time.Second, MaxDelay: 30 * time.Second},
		RetryConfig{MaxRetries: 2, InitialDelay: -time.Second}.WithDefaults())
	assert.Equal(t, RetryConfig{MaxRetries: 0, InitialDelay: time.Millisecond, MaxDelay: time.Second},
		RetryConfig{MaxRetries: -3, InitialDelay: time.Millisecond, MaxDelay: time.Second}.WithDefaults())
}

func TestCallWithRetry_NetworkErrorExhausts(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2, InitialDelay: 5 * time.Millisecond}

	calls := 0
	var delays []time.Duration
	var stamps []time.Time

	_, attempts, err := CallWithRetry(context.Background(), cfg,
		func(ctx context.Context, attempt int) (string, error) {
			calls++
			stamps = append(stamps, time.Now())
			assert.Equal(t, calls, attempt)
			return "", networkErr()
		},
		func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
			assert.True(t, transport.IsNetworkError(err))
		},
	)

	require.Error(t, err)
	assert.True(t, transport.IsNetworkError(err))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{5 * time.Millisecond, 10 * time.Millisecond}, delays)

	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 5*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 10*time.Millisecond)
}

func TestCallWithRetry_ApplicationErrorNotRetried(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond}
	appErr := &transport.StatusError{Method: "GET", Path: "/news/search", StatusCode: 404}

	calls := 0
	_, attempts, err := CallWithRetry(context.Background(), cfg,
		func(ctx context.Context, attempt int) (int, error) {
			calls++
			return 0, appErr
		},
		func(int, time.Duration, error) { t.Fatal("unexpected retry") },
	)

	assert.Same(t, appErr, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
}

func TestCallWithRetry_RecoversAfterTransientFailure(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond}

	result, attempts, err := CallWithRetry(context.Background(), cfg,
		func(ctx context.Context, attempt int) (string, error) {
			if attempt < 2 {
				return "", networkErr()
			}
			return "ok", nil
		},
		nil,
	)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
}

func TestCallWithRetry_ZeroRetries(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 0, InitialDelay: time.Millisecond}

	_, attempts, err := CallWithRetry(context.Background(), cfg,
		func(ctx context.Context, attempt int) (string, error) { return "", networkErr() },
		nil,
	)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCallWithRetry_ZeroInitialDelayUsesDefault(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 2}

	var delays []time.Duration
	result, attempts, err := CallWithRetry(context.Background(), cfg,
		func(ctx context.Context, attempt int) (string, error) {
			if attempt < 2 {
				return "", networkErr()
			}
			return "ok", nil
		},
		func(attempt int, delay time.Duration, err error) { delays = append(delays, delay) },
	)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{DefaultRetryConfig.InitialDelay}, delays)
}
