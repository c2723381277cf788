package host

import (
	"context"
	"os"
	"strings"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/logging"

	gopsutilnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemInspector implements Inspector against the real host.
type SystemInspector struct {
	logger logging.Logger
}

func NewSystemInspector(logger logging.Logger) *SystemInspector {
	return &SystemInspector{
		logger: logger,
	}
}

func (s *SystemInspector) FindByPattern(ctx context.Context, pattern string) ([]int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.NewDiscoveryError("failed to enumerate processes", err)
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		pid := int(p.Pid)
		if pid == self {
			continue
		}
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			// Process may have exited between enumeration and inspection.
			continue
		}
		if cmdline != "" && strings.Contains(cmdline, pattern) {
			pids = append(pids, pid)
		}
	}

	s.logger.Debugf("Pattern probe found %d process(es), pattern: %s", len(pids), pattern)
	return pids, nil
}

func (s *SystemInspector) PortOwner(ctx context.Context, port int) (int, bool, error) {
	conns, err := gopsutilnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return 0, false, errors.NewPortError("failed to enumerate TCP connections", err).WithContext("port", port)
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" || int(conn.Laddr.Port) != port {
			continue
		}
		// Pid is 0 when the socket owner is not visible to this user;
		// the port is still bound.
		return int(conn.Pid), true, nil
	}
	return 0, false, nil
}

func (s *SystemInspector) KillPortOwner(ctx context.Context, port int) error {
	pid, bound, err := s.PortOwner(ctx, port)
	if err != nil {
		return err
	}
	if !bound {
		s.logger.Debugf("No listener on port %d, nothing to kill", port)
		return nil
	}
	if pid == 0 {
		return s.killPortOwnerFallback(ctx, port)
	}

	s.logger.Infof("Killing port owner, port: %d, PID: %d", port, pid)
	if err := s.Kill(pid); err != nil {
		return errors.NewPortError("failed to kill port owner", err).WithContext("port", port).WithContext("pid", pid)
	}
	return nil
}
