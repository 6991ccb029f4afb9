package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
)

// RetryWithBackoff runs operation up to maxAttempts times, waiting
// baseDelay, 2*baseDelay, 4*baseDelay... between failures.
// The last error is returned when every attempt fails. A client that
// failed to initialize is not retried.
func RetryWithBackoff(ctx context.Context, logger *slog.Logger, maxAttempts int, baseDelay time.Duration, operation func() error) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	delay := baseDelay
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		if errors.Is(lastErr, ai.ErrClientInit) {
			logger.Debug("not retrying", "attempt", attempt, "error", lastErr)
			break
		}

		logger.Debug("attempt failed, backing off", "attempt", attempt, "max_attempts", maxAttempts, "delay", delay, "error", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}
