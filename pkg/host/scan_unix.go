//go:build !windows

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

// ScanTable enumerates the process table through ps rather than the kernel
// interface FindByPattern walks, so the two probes cannot share a blind spot.
func (s *SystemInspector) ScanTable(ctx context.Context, pattern string) ([]int, error) {
	cmd := exec.CommandContext(ctx, "ps", "-eo", "pid=,args=")
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.NewDiscoveryError("ps enumeration failed", err)
	}
	return parseTable(out, pattern, os.Getpid()), nil
}

func parseTable(out []byte, pattern string, selfPID int) []int {
	var pids []int
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		pidField, args, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(pidField)
		if err != nil || pid == selfPID {
			continue
		}
		if strings.Contains(strings.TrimSpace(args), pattern) {
			pids = append(pids, pid)
		}
	}
	return pids
}
