package terminate

import (
	"context"
	"time"

	"github.com/exaima/redeploy/pkg/discovery"
	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/logging"
	"github.com/exaima/redeploy/pkg/wait"
)

const (
	// DefaultSettleInterval is how long to wait after the kill batch for
	// sockets and file descriptors to be released. A constant, not
	// adaptive: long enough for typical cleanup, short enough to keep the
	// run bounded.
	DefaultSettleInterval = 3 * time.Second
)

// Terminator forcefully ends every member of a candidate set. Failures to
// signal individual PIDs (already exited, recycled by the OS) are collected
// as warnings and never abort the batch.
type Terminator struct {
	inspector host.Inspector
	settle    time.Duration
	logger    logging.Logger
}

func NewTerminator(inspector host.Inspector, settle time.Duration, logger logging.Logger) *Terminator {
	if settle <= 0 {
		settle = DefaultSettleInterval
	}
	return &Terminator{
		inspector: inspector,
		settle:    settle,
		logger:    logger,
	}
}

// TerminateAll kills every candidate and then blocks for the settle
// interval. Returns the per-PID failures as warnings.
func (t *Terminator) TerminateAll(ctx context.Context, set *discovery.CandidateSet) *errors.ErrorCollection {
	warnings := errors.NewErrorCollection()
	if set.IsEmpty() {
		return warnings
	}

	for _, pid := range set.PIDs() {
		if err := t.inspector.Kill(pid); err != nil {
			t.logger.Warnf("Failed to kill PID %d (possibly already exited): %v", pid, err)
			warnings.Add(errors.NewTerminationError("failed to kill process", err).WithContext("pid", pid))
			continue
		}
		t.logger.Infof("Killed stale instance, PID: %d", pid)
	}

	t.logger.Debugf("Waiting %v for resources to settle", t.settle)
	wait.Sleep(ctx, t.settle)
	return warnings
}
