package wait

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep_WaitsFullDuration(t *testing.T) {
	d := 50 * time.Millisecond

	start := time.Now()
	Sleep(context.Background(), d)

	assert.GreaterOrEqual(t, time.Since(start), d)
}

func TestSleep_ReturnsEarlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	Sleep(ctx, 10*time.Second)

	assert.Less(t, time.Since(start), time.Second)
}
