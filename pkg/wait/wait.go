package wait

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done, whichever comes first. Settle
// intervals and verification delays all wait through this so a cancelled
// run does not hang in a fixed sleep.
func Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
