//go:build windows

package host

import (
	"context"
	"fmt"
	"os"

	"github.com/exaima/redeploy/pkg/errors"
)

func (s *SystemInspector) Kill(pid int) error {
	if pid <= 0 {
		return errors.NewValidationError("invalid PID", nil).WithContext("pid", pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return errors.NewProcessError("failed to find process", err).WithContext("pid", pid)
	}
	if err := proc.Kill(); err != nil {
		return errors.NewProcessError("failed to kill process", err).WithContext("pid", pid)
	}
	return nil
}

func (s *SystemInspector) killPortOwnerFallback(_ context.Context, port int) error {
	// No fuser equivalent; taskkill needs a PID, which we do not have here.
	return errors.NewPortError(fmt.Sprintf("port %d owner not identifiable", port), nil)
}
