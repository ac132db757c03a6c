package tracer

import (
	"context"
	"time"
)

// sleep blocks for delayNanos, or until ctx is cancelled, whichever
// comes first.
func sleep(ctx context.Context, delayNanos int64) {
	timer := time.NewTimer(time.Duration(delayNanos))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
