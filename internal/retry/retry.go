// Package retry provides a small retry helper for transient failures.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls how often and how quickly an operation is retried.
type Config struct {
	// Attempts is the total number of attempts, including the first.
	Attempts int

	// Delay is the wait between attempts.
	Delay time.Duration

	// Multiplier grows the delay between attempts when greater than 1.
	// Zero or one keeps the delay fixed.
	Multiplier float64

	// MaxDelay caps the grown delay. Zero means no cap.
	MaxDelay time.Duration

	// Retryable decides whether an error is worth another attempt. Nil
	// means every error is retried.
	Retryable func(error) bool
}

// Do runs fn up to cfg.Attempts times, sleeping cfg.Delay between attempts.
// It returns nil on the first success, the last error once attempts are
// exhausted, and stops early on context cancellation or a non-retryable
// error.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	delay := cfg.Delay
	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if cfg.Retryable != nil && !cfg.Retryable(lastErr) {
			return lastErr
		}

		if attempt == cfg.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		if cfg.Multiplier > 1 {
			delay = time.Duration(float64(delay) * cfg.Multiplier)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.Attempts, lastErr)
}
