package window

import (
	"context"
	"time"

	"github.com/matzehuels/screengod/pkg/errors"
)

// Defaults for retrying window commands. Freshly mapped or just unmaximized
// windows sometimes reject geometry requests for a few milliseconds.
const (
	defaultAttempts   = 3
	defaultRetryDelay = 50 * time.Millisecond
)

// retry executes fn up to attempts times, doubling delay after each failure.
// Only COMMAND_FAILED errors are retried; anything else is returned at once.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.Is(err, errors.ErrCodeCommandFailed) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
