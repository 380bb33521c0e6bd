package window

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/screengod/pkg/errors"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New(errors.ErrCodeCommandFailed, "busy")
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("retry = %v after %d calls", err, calls)
		}
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 2, time.Millisecond, func() error {
			calls++
			return errors.New(errors.ErrCodeCommandFailed, "busy")
		})
		if !errors.Is(err, errors.ErrCodeCommandFailed) || calls != 2 {
			t.Errorf("retry = %v after %d calls", err, calls)
		}
	})

	t.Run("other codes are not retried", func(t *testing.T) {
		calls := 0
		err := retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return errors.New(errors.ErrCodeWindowNotFound, "gone")
		})
		if !errors.Is(err, errors.ErrCodeWindowNotFound) || calls != 1 {
			t.Errorf("retry = %v after %d calls", err, calls)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		err := retry(ctx, 3, time.Hour, func() error {
			return errors.New(errors.ErrCodeCommandFailed, "busy")
		})
		if err != context.Canceled {
			t.Errorf("retry = %v, want context.Canceled", err)
		}
	})
}
