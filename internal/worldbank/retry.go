package worldbank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// permanentError marks a failure retrying cannot fix, such as a client-side
// HTTP status. withBackoff returns it immediately.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// withBackoff runs fn up to maxRetries+1 times with exponential backoff between
// attempts. A maxRetries of zero means a single attempt with no retrying;
// errors wrapped in permanentError are never retried.
func withBackoff(ctx context.Context, maxRetries int, delay time.Duration, logger *zap.Logger, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled: %w", operation, ctx.Err())
		default:
		}

		lastErr = fn()
		if lastErr == nil {
			if attempt > 0 {
				logger.Info("operation succeeded after retries",
					zap.String("operation", operation),
					zap.Int("attempts", attempt+1))
			}
			return nil
		}
		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}
		if attempt >= maxRetries {
			if maxRetries > 0 {
				return fmt.Errorf("%s failed after %d attempts: %w", operation, attempt+1, lastErr)
			}
			return lastErr
		}

		logger.Warn("operation failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled: %w", operation, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
	}
}
