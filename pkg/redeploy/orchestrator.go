package redeploy

import (
	"context"

	"github.com/exaima/redeploy/pkg/bootstrap"
	"github.com/exaima/redeploy/pkg/discovery"
	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/launch"
	"github.com/exaima/redeploy/pkg/logging"
	"github.com/exaima/redeploy/pkg/terminate"
	"github.com/exaima/redeploy/pkg/verify"
)

// Orchestrator ensures exactly one instance of the managed service is bound
// to its port: it discovers prior instances, kills them, reclaims the port,
// bootstraps the working directory, launches a fresh instance detached, and
// verifies the launch.
//
// One Run is a single sequential forward pass and keeps no state between
// invocations. There is no locking against a second concurrent run on the
// same host/port; the invoker is expected to serialize runs.
type Orchestrator struct {
	config     *Config
	discoverer *discovery.Discoverer
	terminator *terminate.Terminator
	reclaimer  *terminate.PortReclaimer
	preparer   bootstrap.Preparer
	launcher   *launch.Launcher
	verifier   *verify.Verifier
	logger     logging.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators. inspector
// and preparer are injected so tests can substitute fakes.
func NewOrchestrator(config *Config, inspector host.Inspector, preparer bootstrap.Preparer, logger logging.Logger) (*Orchestrator, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	discoverer := discovery.NewDiscoverer(inspector, logger)
	return &Orchestrator{
		config:     config,
		discoverer: discoverer,
		terminator: terminate.NewTerminator(inspector, config.Termination.Settle, logger),
		reclaimer:  terminate.NewPortReclaimer(inspector, config.Termination.ReclaimSettle, logger),
		preparer:   preparer,
		launcher:   launch.NewLauncher(logger),
		verifier:   verify.NewVerifier(discoverer, inspector, config.Verify, logger),
		logger:     logger,
	}, nil
}

func (o *Orchestrator) target() discovery.Target {
	return discovery.Target{
		Pattern: o.config.Service.Pattern,
		Port:    o.config.Service.Port,
	}
}

// Run executes one orchestration pass and reports exactly one outcome.
func (o *Orchestrator) Run(ctx context.Context) Result {
	warnings := errors.NewErrorCollection()
	target := o.target()

	o.logger.Infof("Starting orchestration, pattern: %s, port: %d, dir: %s",
		target.Pattern, target.Port, o.config.Service.WorkingDirectory)

	o.enter(PhaseDiscovering)
	prior, portBound, discoveryWarnings := o.discoverer.Discover(ctx, target)
	warnings.Errors = append(warnings.Errors, discoveryWarnings.Errors...)

	if prior.IsEmpty() && !portBound {
		// No matching process and nothing owns the port; go straight to
		// bootstrap.
		o.logger.Infof("No prior instance, skipping termination")
	} else {
		if !prior.IsEmpty() {
			o.enter(PhaseTerminating)
			terminationWarnings := o.terminator.TerminateAll(ctx, prior)
			warnings.Errors = append(warnings.Errors, terminationWarnings.Errors...)
		}

		// The reclaimer targets whatever holds the port now, so it also
		// covers a listener whose owner PID was not visible to discovery.
		o.enter(PhaseReclaimingPort)
		reclaimWarnings := o.reclaimer.Reclaim(ctx, target.Port)
		warnings.Errors = append(warnings.Errors, reclaimWarnings.Errors...)
	}

	o.enter(PhaseBootstrapping)
	if err := o.preparer.Prepare(ctx, o.config.Service.WorkingDirectory); err != nil {
		o.logger.Errorf("Bootstrap failed, aborting before launch: %v", err)
		return Result{
			Outcome:  OutcomeFailed,
			Phase:    PhaseBootstrapping,
			Warnings: warnings.Errors,
			Err:      errors.NewBootstrapError("environment bootstrap failed", err),
		}
	}

	o.enter(PhaseLaunching)
	attempt, err := o.launcher.Launch(ctx, o.config.Launch)
	if err != nil {
		o.logger.Errorf("Launch failed: %v", err)
		return Result{
			Outcome:  OutcomeFailed,
			Phase:    PhaseLaunching,
			Warnings: warnings.Errors,
			Err:      err,
		}
	}

	o.enter(PhaseVerifying)
	outcome := o.verifier.Verify(ctx, target, attempt, prior)

	result := Result{
		Phase:    PhaseDone,
		Warnings: warnings.Errors,
	}
	switch outcome.Status {
	case verify.StatusRunning:
		result.Outcome = OutcomeSucceeded
	case verify.StatusStartedNotListening:
		result.Outcome = OutcomeSucceededWithWarning
		message := "service started but port not yet observed bound"
		if outcome.PortBound {
			message = "service is listening but not yet healthy"
		}
		result.Warnings = append(result.Warnings,
			errors.NewVerificationError(message, nil).WithContext("port", target.Port))
	default:
		result.Outcome = OutcomeFailed
		result.Err = errors.NewVerificationError("service process did not appear within the check window", nil)
		result.LogTail = outcome.LogTail
	}

	o.logger.Infof("Orchestration finished, outcome: %s, warnings: %d", result.Outcome, len(result.Warnings))
	return result
}

func (o *Orchestrator) enter(phase Phase) {
	o.logger.Debugf("Entering phase: %s", phase)
}
