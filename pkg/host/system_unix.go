//go:build !windows

package host

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/exaima/redeploy/pkg/errors"
)

// Kill sends SIGKILL so the target cannot catch or ignore it.
func (s *SystemInspector) Kill(pid int) error {
	if pid <= 0 {
		return errors.NewValidationError("invalid PID", nil).WithContext("pid", pid)
	}
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil {
		return errors.NewProcessError("failed to signal process", err).WithContext("pid", pid)
	}
	return nil
}

// killPortOwnerFallback covers listeners whose PID is not visible through
// the connection table (e.g. owned by another user). fuser resolves and
// kills the socket holder with elevated semantics in one step, which is
// the same escalation the deploy tooling historically used.
func (s *SystemInspector) killPortOwnerFallback(ctx context.Context, port int) error {
	cmd := exec.CommandContext(ctx, "fuser", "-k", fmt.Sprintf("%d/tcp", port))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.NewPortError("fuser port kill failed", err).
			WithContext("port", port).
			WithContext("output", string(out))
	}
	s.logger.Infof("Killed port owner via fuser, port: %d", port)
	return nil
}
