//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// setupDetachedAttributes puts the child in its own session. A plain
// process group is not enough here: the child must survive the controlling
// terminal and the orchestrator's session going away.
func setupDetachedAttributes(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
