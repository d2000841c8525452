package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), Policy{MaxAttempts: 3}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), Policy{MaxAttempts: 3}, func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, out)
	require.Equal(t, 2, calls)
}

func TestDo_Exhausted(t *testing.T) {
	cause := errors.New("still broken")
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 3}, func(context.Context) (string, error) {
		calls++
		return "", cause
	})
	require.Equal(t, 3, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "after 3 attempts")
}

func TestDo_DelaysGrowLinearly(t *testing.T) {
	delay := Linear(time.Second)
	require.Equal(t, time.Second, delay(1))
	require.Equal(t, 2*time.Second, delay(2))

	var waits []time.Duration
	p := Policy{
		MaxAttempts: 3,
		Delay: func(attempt int) time.Duration {
			waits = append(waits, time.Duration(attempt))
			return 0
		},
	}
	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		return 0, errors.New("nope")
	})
	require.Error(t, err)
	require.Equal(t, []time.Duration{1, 2}, waits)
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	p := Policy{MaxAttempts: 3, Delay: func(int) time.Duration { return time.Minute }}
	_, err := Do(ctx, p, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestDo_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("nope")
	})
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 1, exhausted.Attempts)
	require.Equal(t, 1, calls)
}
