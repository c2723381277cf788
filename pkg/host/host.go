package host

import "context"

// Inspector is the orchestrator's only OS-facing surface: three read
// operations over host process/port state and two write (kill) operations.
// It exists as an interface so tests can substitute a fake host.
type Inspector interface {
	// FindByPattern enumerates processes whose command line contains
	// pattern. The calling process itself is never reported.
	FindByPattern(ctx context.Context, pattern string) ([]int, error)

	// ScanTable applies the same predicate against an independent
	// enumeration of the process table. It exists as a redundant check
	// against FindByPattern missing entries; the two must not share an
	// enumeration mechanism.
	ScanTable(ctx context.Context, pattern string) ([]int, error)

	// PortOwner reports the process holding the listening TCP socket on
	// port. bound is true whenever a listener exists, even if the owning
	// PID cannot be determined (pid 0 in that case).
	PortOwner(ctx context.Context, port int) (pid int, bound bool, err error)

	// Kill forcefully terminates one process. The signal is not catchable
	// by the target.
	Kill(pid int) error

	// KillPortOwner forcefully terminates whatever currently holds the
	// listening socket on port, re-resolving ownership at call time.
	KillPortOwner(ctx context.Context, port int) error
}
