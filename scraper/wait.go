package scraper

import (
	"context"
	"time"
)

// pollUntil evaluates pred every interval until it reports true, the
// deadline passes, or ctx is canceled. A pred error aborts the poll and is
// returned as-is; on deadline the context error is returned.
func pollUntil(ctx context.Context, interval, deadline time.Duration, pred func(context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := pred(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
