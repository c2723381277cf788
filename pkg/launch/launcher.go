package launch

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/logging"
)

// Config describes how to start the service process.
type Config struct {
	Command          string   `yaml:"command"`
	Args             []string `yaml:"args,omitempty"`
	Environment      []string `yaml:"environment,omitempty"`
	WorkingDirectory string   `yaml:"working_directory"`
	LogPath          string   `yaml:"log_path"`
}

// Attempt is the record of one launch: the observed PID, when the process
// was started, and where its output goes. It is consumed by the verifier
// and discarded after the run.
type Attempt struct {
	PID       int
	StartedAt time.Time
	LogPath   string
}

// Launcher starts the service detached from the orchestrator's session so
// it survives the orchestrator's exit. Stdout and stderr are appended to
// the log sink; the launcher never truncates it.
type Launcher struct {
	logger logging.Logger
}

func NewLauncher(logger logging.Logger) *Launcher {
	return &Launcher{
		logger: logger,
	}
}

// Launch starts the process and releases it. An exec refusal from the OS is
// fatal; whether the service actually becomes ready is the verifier's
// concern, not checked here.
func (l *Launcher) Launch(ctx context.Context, config Config) (*Attempt, error) {
	if config.Command == "" {
		return nil, errors.NewValidationError("launch command is required", nil)
	}

	sink, err := os.OpenFile(config.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.NewIOError("failed to open log sink", err).WithContext("log_path", config.LogPath)
	}
	defer sink.Close()

	env := os.Environ()
	env = append(env, config.Environment...)

	cmd := exec.Command(config.Command, config.Args...)
	cmd.Dir = config.WorkingDirectory
	cmd.Env = env
	cmd.Stdout = sink
	cmd.Stderr = sink
	setupDetachedAttributes(cmd)

	l.logger.Infof("Launching service, command: %s, args: %v, dir: %s, log: %s",
		config.Command, config.Args, config.WorkingDirectory, config.LogPath)

	if err := cmd.Start(); err != nil {
		return nil, errors.NewLaunchError("OS refused to start the process", err).
			WithContext("command", config.Command).
			WithContext("dir", config.WorkingDirectory)
	}

	attempt := &Attempt{
		PID:       cmd.Process.Pid,
		StartedAt: time.Now(),
		LogPath:   config.LogPath,
	}

	// Release the child so its lifetime is independent of ours. Without
	// this the OS keeps the parent/child relationship and the process
	// would be reaped with the orchestrator.
	if err := cmd.Process.Release(); err != nil {
		l.logger.Warnf("Failed to release launched process handle, PID: %d, error: %v", attempt.PID, err)
	}

	l.logger.Infof("Launched service, PID: %d", attempt.PID)
	return attempt, nil
}
