package discovery

import (
	"context"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/logging"
)

// Target describes what to look for: a command-line pattern and the TCP port
// the service listens on.
type Target struct {
	Pattern string
	Port    int
}

// Discoverer finds running instances of the managed service by three
// independent probes and unions the results. A failing probe degrades the
// result instead of failing discovery; an empty union means no instance is
// running, which is a valid answer, not a fault.
type Discoverer struct {
	inspector host.Inspector
	logger    logging.Logger
}

func NewDiscoverer(inspector host.Inspector, logger logging.Logger) *Discoverer {
	return &Discoverer{
		inspector: inspector,
		logger:    logger,
	}
}

// Discover returns the union of the pattern probe, the process-table scan
// and the port-ownership lookup, plus any per-probe errors downgraded to
// warnings. portBound reports whether a listener was observed on the target
// port even when its owner PID is not visible and therefore yields no
// candidate; callers deciding whether the port needs reclaiming must not
// rely on the candidate set alone.
func (d *Discoverer) Discover(ctx context.Context, target Target) (set *CandidateSet, portBound bool, warnings *errors.ErrorCollection) {
	warnings = errors.NewErrorCollection()
	set = NewCandidateSet()

	pids, err := d.inspector.FindByPattern(ctx, target.Pattern)
	if err != nil {
		d.logger.Warnf("Pattern probe failed, pattern: %s, error: %v", target.Pattern, err)
		warnings.Add(errors.NewDiscoveryError("pattern probe failed", err))
	} else {
		set.Add(pids...)
	}

	pids, err = d.inspector.ScanTable(ctx, target.Pattern)
	if err != nil {
		d.logger.Warnf("Process-table scan failed, pattern: %s, error: %v", target.Pattern, err)
		warnings.Add(errors.NewDiscoveryError("process-table scan failed", err))
	} else {
		set.Add(pids...)
	}

	pid, bound, err := d.inspector.PortOwner(ctx, target.Port)
	if err != nil {
		d.logger.Warnf("Port-owner probe failed, port: %d, error: %v", target.Port, err)
		warnings.Add(errors.NewDiscoveryError("port-owner probe failed", err))
	} else if bound {
		portBound = true
		if pid > 0 {
			set.Add(pid)
		} else {
			d.logger.Warnf("Port %d is bound but its owner PID is not visible", target.Port)
		}
	}

	if set.IsEmpty() {
		d.logger.Infof("No running instance found, pattern: %s, port: %d", target.Pattern, target.Port)
	} else {
		d.logger.Infof("Found %d candidate process(es): %v", set.Len(), set.PIDs())
	}
	return set, portBound, warnings
}
