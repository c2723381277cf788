package terminate

import (
	"context"
	"time"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/logging"
	"github.com/exaima/redeploy/pkg/wait"
)

const (
	// DefaultReclaimSettle follows the escalated port kill; shorter than
	// the termination settle since at most one process is affected.
	DefaultReclaimSettle = 1 * time.Second
)

// PortReclaimer frees the target port after termination. It escalates at
// most once: if the port is still bound after the kill batch, it kills
// whatever holds the port now (which may be a process that grabbed it
// between discovery and termination), waits briefly, and stops. Residual
// binding is reported as a warning for the verifier, not retried.
type PortReclaimer struct {
	inspector host.Inspector
	settle    time.Duration
	logger    logging.Logger
}

func NewPortReclaimer(inspector host.Inspector, settle time.Duration, logger logging.Logger) *PortReclaimer {
	if settle <= 0 {
		settle = DefaultReclaimSettle
	}
	return &PortReclaimer{
		inspector: inspector,
		settle:    settle,
		logger:    logger,
	}
}

// Reclaim re-checks port ownership and escalates once if needed. The
// returned collection carries a PortError when the port could not be
// confirmed free.
func (r *PortReclaimer) Reclaim(ctx context.Context, port int) *errors.ErrorCollection {
	warnings := errors.NewErrorCollection()

	pid, bound, err := r.inspector.PortOwner(ctx, port)
	if err != nil {
		warnings.Add(errors.NewPortError("post-termination port check failed", err).WithContext("port", port))
		return warnings
	}
	if !bound {
		r.logger.Debugf("Port %d already free", port)
		return warnings
	}

	r.logger.Warnf("Port %d still bound after termination (owner PID %d), escalating", port, pid)
	if err := r.inspector.KillPortOwner(ctx, port); err != nil {
		warnings.Add(errors.NewPortError("escalated port kill failed", err).WithContext("port", port))
		return warnings
	}
	wait.Sleep(ctx, r.settle)

	if _, bound, err := r.inspector.PortOwner(ctx, port); err == nil && bound {
		warnings.Add(errors.NewPortError("port still bound after escalation", nil).WithContext("port", port))
	}
	return warnings
}
