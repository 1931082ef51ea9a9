package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// pingWithRetry calls ping with exponential backoff so the service survives
// dependencies that start slower than it does.
func pingWithRetry(ctx context.Context, name string, attempts uint64, ping func(context.Context) error) error {
	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			slog.WarnContext(ctx, "dependency not ready, retrying", "name", name, "error", err)
			return retry.RetryableError(err)
		}

		return nil
	})
}
