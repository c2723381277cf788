package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/logging"
)

const (
	venvDir          = ".venv"
	requirementsFile = "requirements.txt"
)

// GitPythonPreparer prepares a Python service checkout: pull the latest
// source, materialize a virtual environment if one does not exist, and
// install the declared dependencies into it. Each step is a no-op when the
// directory is already current, so repeated runs converge.
type GitPythonPreparer struct {
	logger logging.Logger
}

func NewGitPythonPreparer(logger logging.Logger) *GitPythonPreparer {
	return &GitPythonPreparer{
		logger: logger,
	}
}

func (p *GitPythonPreparer) Prepare(ctx context.Context, workingDirectory string) error {
	if info, err := os.Stat(workingDirectory); err != nil || !info.IsDir() {
		return errors.NewBootstrapError("working directory is not accessible", err).WithContext("dir", workingDirectory)
	}

	p.logger.Infof("Updating source, dir: %s", workingDirectory)
	if err := p.run(ctx, workingDirectory, "git", "pull", "--ff-only"); err != nil {
		return errors.NewBootstrapError("source update failed", err).WithContext("dir", workingDirectory)
	}

	venvPath := filepath.Join(workingDirectory, venvDir)
	if _, err := os.Stat(venvPath); os.IsNotExist(err) {
		p.logger.Infof("Creating virtual environment, path: %s", venvPath)
		if err := p.run(ctx, workingDirectory, "python3", "-m", "venv", venvDir); err != nil {
			return errors.NewBootstrapError("virtual environment creation failed", err).WithContext("path", venvPath)
		}
	}

	reqPath := filepath.Join(workingDirectory, requirementsFile)
	if _, err := os.Stat(reqPath); err == nil {
		p.logger.Infof("Installing dependencies, file: %s", reqPath)
		pip := filepath.Join(venvPath, "bin", "pip")
		if err := p.run(ctx, workingDirectory, pip, "install", "-r", requirementsFile); err != nil {
			return errors.NewBootstrapError("dependency install failed", err).WithContext("file", reqPath)
		}
	}

	return nil
}

func (p *GitPythonPreparer) run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.NewProcessError("command failed", err).
			WithContext("command", name).
			WithContext("output", string(out))
	}
	p.logger.Debugf("Command succeeded: %s %v", name, args)
	return nil
}
