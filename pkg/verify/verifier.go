package verify

import (
	"context"
	"net/http"
	"time"

	"github.com/exaima/redeploy/pkg/discovery"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/launch"
	"github.com/exaima/redeploy/pkg/logging"
	"github.com/exaima/redeploy/pkg/wait"
)

// Status classifies one startup verification.
type Status string

const (
	// StatusRunning: a freshly launched process exists and the port is bound.
	StatusRunning Status = "running"
	// StatusStartedNotListening: the process exists but the port is not yet
	// bound. A warning, not a failure; the service may bind after the check
	// window closes.
	StatusStartedNotListening Status = "started-not-listening"
	// StatusFailed: no new process exists. The outcome carries the log tail.
	StatusFailed Status = "failed"
)

// Outcome is the terminal value of a verification, discarded after the run.
type Outcome struct {
	Status    Status
	PIDs      []int
	PortBound bool
	LogTail   []string
}

// Config bounds the verification window. All waits are fixed-duration so the
// total run time stays deterministic.
type Config struct {
	InitialDelay    time.Duration `yaml:"initial_delay,omitempty"`
	Rechecks        int           `yaml:"rechecks,omitempty"`
	RecheckInterval time.Duration `yaml:"recheck_interval,omitempty"`
	TailLines       int           `yaml:"tail_lines,omitempty"`
	HealthURL       string        `yaml:"health_url,omitempty"`
	HealthTimeout   time.Duration `yaml:"health_timeout,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 5 * time.Second
	}
	if c.Rechecks <= 0 {
		c.Rechecks = 2
	}
	if c.RecheckInterval <= 0 {
		c.RecheckInterval = 2 * time.Second
	}
	if c.TailLines <= 0 {
		c.TailLines = 20
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = 3 * time.Second
	}
}

// Verifier probes, after a fixed delay, whether the launched service came up:
// re-runs discovery filtered to processes that did not exist before launch,
// then checks port occupancy.
type Verifier struct {
	discoverer *discovery.Discoverer
	inspector  host.Inspector
	config     Config
	logger     logging.Logger
}

func NewVerifier(discoverer *discovery.Discoverer, inspector host.Inspector, config Config, logger logging.Logger) *Verifier {
	config.applyDefaults()
	return &Verifier{
		discoverer: discoverer,
		inspector:  inspector,
		config:     config,
		logger:     logger,
	}
}

// Verify classifies the launch attempt. prior holds the candidates observed
// before launch; any of them still alive do not count as the new instance.
func (v *Verifier) Verify(ctx context.Context, target discovery.Target, attempt *launch.Attempt, prior *discovery.CandidateSet) Outcome {
	v.logger.Debugf("Waiting %v before verification", v.config.InitialDelay)
	wait.Sleep(ctx, v.config.InitialDelay)

	fresh := v.findFresh(ctx, target, prior)
	for attempts := 1; fresh.IsEmpty() && attempts < v.config.Rechecks; attempts++ {
		v.logger.Debugf("No new process yet, re-checking in %v (%d/%d)",
			v.config.RecheckInterval, attempts+1, v.config.Rechecks)
		wait.Sleep(ctx, v.config.RecheckInterval)
		fresh = v.findFresh(ctx, target, prior)
	}

	if fresh.IsEmpty() {
		v.logger.Errorf("Service process did not appear within the check window, PID at launch: %d", attempt.PID)
		tail, err := TailLines(attempt.LogPath, v.config.TailLines)
		if err != nil {
			v.logger.Warnf("Failed to read log tail, path: %s, error: %v", attempt.LogPath, err)
		}
		return Outcome{Status: StatusFailed, LogTail: tail}
	}

	_, bound, err := v.inspector.PortOwner(ctx, target.Port)
	if err != nil {
		v.logger.Warnf("Port check failed during verification, port: %d, error: %v", target.Port, err)
	}
	if !bound {
		v.logger.Warnf("Service started but port %d is not bound yet, PIDs: %v", target.Port, fresh.PIDs())
		return Outcome{Status: StatusStartedNotListening, PIDs: fresh.PIDs()}
	}

	if v.config.HealthURL != "" && !v.probeHealth(ctx) {
		v.logger.Warnf("Service is listening but health probe failed, url: %s", v.config.HealthURL)
		return Outcome{Status: StatusStartedNotListening, PIDs: fresh.PIDs(), PortBound: true}
	}

	v.logger.Infof("Service is running, PIDs: %v, port: %d", fresh.PIDs(), target.Port)
	return Outcome{Status: StatusRunning, PIDs: fresh.PIDs(), PortBound: true}
}

// findFresh re-runs discovery and drops every PID already seen before launch.
func (v *Verifier) findFresh(ctx context.Context, target discovery.Target, prior *discovery.CandidateSet) *discovery.CandidateSet {
	current, _, _ := v.discoverer.Discover(ctx, target)
	fresh := discovery.NewCandidateSet()
	for _, pid := range current.PIDs() {
		if !prior.Contains(pid) {
			fresh.Add(pid)
		}
	}
	return fresh
}

func (v *Verifier) probeHealth(ctx context.Context) bool {
	reqCtx, cancel := context.WithTimeout(ctx, v.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, v.config.HealthURL, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
