//go:build windows

package host

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/exaima/redeploy/pkg/errors"
)

func (s *SystemInspector) ScanTable(ctx context.Context, pattern string) ([]int, error) {
	cmd := exec.CommandContext(ctx, "wmic", "process", "get", "ProcessId,CommandLine", "/format:csv")
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.NewDiscoveryError("wmic enumeration failed", err)
	}

	self := os.Getpid()
	var pids []int
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		// Node,CommandLine,ProcessId
		fields := strings.Split(strings.TrimSpace(scanner.Text()), ",")
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil || pid == self {
			continue
		}
		cmdline := strings.Join(fields[1:len(fields)-1], ",")
		if strings.Contains(cmdline, pattern) {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
