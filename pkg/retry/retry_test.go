package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("rate limited")

func transientOnly(err error) bool {
	return errors.Is(err, errTransient)
}

func TestDoWithResult(t *testing.T) {
	t.Run("SuccessFirstTry", func(t *testing.T) {
		calls := 0
		got, err := DoWithResult(context.Background(), Config{MaxAttempts: 3}, func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("TwoTransientFailuresThenSuccess", func(t *testing.T) {
		calls := 0
		start := time.Now()
		cfg := Config{
			MaxAttempts: 5,
			Backoff:     ExponentialBackoff(10 * time.Millisecond),
			ShouldRetry: transientOnly,
		}

		got, err := DoWithResult(context.Background(), cfg, func() (string, error) {
			calls++
			if calls <= 2 {
				return "", errTransient
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		// deux attentes: 10ms + 20ms
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("NonRetryableFailsImmediately", func(t *testing.T) {
		calls := 0
		start := time.Now()
		cfg := Config{
			MaxAttempts: 5,
			Backoff:     ExponentialBackoff(time.Second),
			ShouldRetry: transientOnly,
		}

		permanent := errors.New("bad request")
		_, err := DoWithResult(context.Background(), cfg, func() (int, error) {
			calls++
			return 0, permanent
		})

		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("ExhaustionReturnsLastError", func(t *testing.T) {
		calls := 0
		cfg := Config{
			MaxAttempts: 3,
			Backoff:     ConstantBackoff(time.Millisecond),
			ShouldRetry: transientOnly,
		}

		_, err := DoWithResult(context.Background(), cfg, func() (int, error) {
			calls++
			return 0, errTransient
		})

		require.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, calls)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := DoWithResult(ctx, Config{MaxAttempts: 3}, func() (int, error) {
			t.Fatal("fn ne doit pas être appelée avec un contexte annulé")
			return 0, nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, b(1))
	assert.Equal(t, 200*time.Millisecond, b(2))
	assert.Equal(t, 400*time.Millisecond, b(3))
}
