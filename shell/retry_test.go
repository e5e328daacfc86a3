package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
)

func Test_RetryOnConcurrencyConflict_Success_NoRetries(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return nil // Success on the first attempt
	}

	err := RetryOnConcurrencyConflict(ctx, fn)

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
}

func Test_RetryOnConcurrencyConflict_RetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return entitystore.ErrConcurrencyConflict // Fail twice
		}
		return nil // Success on the third attempt
	}

	err := RetryOnConcurrencyConflict(ctx, fn, WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func Test_RetryOnConcurrencyConflict_FailsFastOnPermanentError(t *testing.T) {
	ctx := context.Background()
	callCount := 0
	permanentErr := errors.New("permanent failure")

	fn := func(_ context.Context) error {
		callCount++
		return permanentErr
	}

	err := RetryOnConcurrencyConflict(ctx, fn)

	assert.ErrorIs(t, err, permanentErr)
	assert.Equal(t, 1, callCount, "Permanent errors must not be retried")
}

func Test_RetryOnConcurrencyConflict_ExhaustionWrapsInTransient(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return entitystore.ErrConcurrencyConflict
	}

	err := RetryOnConcurrencyConflict(ctx, fn,
		WithMaxAttempts(3),
		WithBaseDelay(time.Millisecond),
		WithJitterFactor(0.1),
	)

	assert.ErrorIs(t, err, core.ErrTransient)
	assert.ErrorIs(t, err, entitystore.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
}

func Test_RetryOnConcurrencyConflict_AbortsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		cancel() // Cancel while the backoff for the next attempt is pending
		return entitystore.ErrConcurrencyConflict
	}

	err := RetryOnConcurrencyConflict(ctx, fn, WithBaseDelay(50*time.Millisecond))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func Test_RetryOnConcurrencyConflict_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	// Test invalid max attempts
	err := RetryOnConcurrencyConflict(ctx, fn, WithMaxAttempts(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	// Test negative base delay
	err = RetryOnConcurrencyConflict(ctx, fn, WithBaseDelay(-1*time.Second))
	assert.ErrorIs(t, err, ErrNegativeBaseDelay)

	// Test invalid jitter factor
	err = RetryOnConcurrencyConflict(ctx, fn, WithJitterFactor(1.5))
	assert.ErrorIs(t, err, ErrInvalidJitterFactor)
}
