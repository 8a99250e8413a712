package concurrency

import (
	"context"
	"errors"
	"fmt"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// DefaultMaxAttempts bounds optimistic-concurrency retries on a single
// cart-line mutation. There is no backoff: conflicts come from another
// request racing on the same row and resolve immediately or not at all.
const DefaultMaxAttempts = 3

// Retry runs fn up to maxAttempts times, retrying only when fn fails with
// domain.ErrWriteConflict. Any other error aborts immediately. When the
// bound is exhausted the last conflict error is returned wrapped with the
// attempt count.
func Retry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrWriteConflict) {
			return err
		}
		if attempt < maxAttempts {
			logger.FromContext(ctx).Warn("Write conflict, retrying", "attempt", attempt, "max_attempts", maxAttempts)
		}
	}

	return fmt.Errorf("retry bound exhausted after %d attempts: %w", maxAttempts, err)
}
