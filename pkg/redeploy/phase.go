package redeploy

// Phase names the stage a run is in. One run is a single forward pass; no
// transition re-enters an earlier phase.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseDiscovering    Phase = "discovering"
	PhaseTerminating    Phase = "terminating"
	PhaseReclaimingPort Phase = "reclaiming-port"
	PhaseBootstrapping  Phase = "bootstrapping"
	PhaseLaunching      Phase = "launching"
	PhaseVerifying      Phase = "verifying"
	PhaseDone           Phase = "done"
)

// Outcome is the single exit signal a run reports to its invoker.
type Outcome string

const (
	// OutcomeSucceeded: the new instance is running and listening.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeSucceededWithWarning: the new instance is running but the port
	// was not yet observed bound. Likely transient; invokers may treat it
	// as success.
	OutcomeSucceededWithWarning Outcome = "succeeded-with-warning"
	// OutcomeFailed: the run aborted or the new instance never appeared.
	OutcomeFailed Outcome = "failed"
)

// Result is the terminal value of one orchestration run.
type Result struct {
	Outcome Outcome
	// Phase the run ended in; PhaseDone unless the run aborted early.
	Phase Phase
	// Warnings collects every non-fatal error downgraded during the run
	// (failed probes, already-exited kill targets, residual port binding).
	Warnings []error
	// Err is set when the run aborted on a fatal error (bootstrap, launch).
	Err error
	// LogTail carries the final lines of the log sink on failure.
	LogTail []string
}
