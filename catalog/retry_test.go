package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name         string
		maxAttempts  int
		failures     int
		wantAttempts int
		wantErr      bool
	}{
		{name: "first try", maxAttempts: 3, failures: 0, wantAttempts: 1},
		{name: "eventual success", maxAttempts: 5, failures: 2, wantAttempts: 3},
		{name: "all attempts fail", maxAttempts: 3, failures: 10, wantAttempts: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := RetryWithBackoff(context.Background(), nil, tt.maxAttempts, time.Millisecond, func() error {
				attempts++
				if attempts <= tt.failures {
					return errors.New("temporary error")
				}
				return nil
			})

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	expected := errors.New("persistent error")
	err := RetryWithBackoff(context.Background(), nil, 2, time.Millisecond, func() error {
		return expected
	})
	assert.Equal(t, expected, err)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	for _, n := range []int{0, -1} {
		attempts := 0
		err := RetryWithBackoff(context.Background(), nil, n, time.Millisecond, func() error {
			attempts++
			return nil
		})
		require.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.Zero(t, attempts)
	}
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, nil, 10, 10*time.Millisecond, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2)
}

func TestRetryWithBackoff_DelaysGrow(t *testing.T) {
	var stamps []time.Time
	err := RetryWithBackoff(context.Background(), nil, 4, 10*time.Millisecond, func() error {
		stamps = append(stamps, time.Now())
		if len(stamps) < 4 {
			return errors.New("error")
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, stamps, 4)

	first := stamps[1].Sub(stamps[0])
	third := stamps[3].Sub(stamps[2])
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.GreaterOrEqual(t, third, 40*time.Millisecond)
}

func TestRetryWithBackoff_StopsOnClientInitError(t *testing.T) {
	initErr := fmt.Errorf("%w: create embedding client: dial tcp: connection refused", ai.ErrClientInit)

	tests := []struct {
		name         string
		errs         []error
		wantAttempts int
		wantErr      error
	}{
		{name: "init error on first attempt", errs: []error{initErr}, wantAttempts: 1, wantErr: ai.ErrClientInit},
		{name: "init error after transient", errs: []error{errors.New("timeout"), initErr}, wantAttempts: 2, wantErr: ai.ErrClientInit},
		{name: "transient errors retried", errs: []error{errors.New("timeout"), errors.New("timeout")}, wantAttempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := RetryWithBackoff(context.Background(), nil, 5, time.Millisecond, func() error {
				attempts++
				if attempts <= len(tt.errs) {
					return tt.errs[attempts-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
