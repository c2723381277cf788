package redeploy

import (
	"os"
	"time"

	"github.com/exaima/redeploy/pkg/errors"
	"github.com/exaima/redeploy/pkg/launch"
	"github.com/exaima/redeploy/pkg/verify"

	"gopkg.in/yaml.v3"
)

// ServiceTarget is the static description of the managed service: how its
// process is recognized, which port it owns, and where it runs. Immutable
// for the duration of one orchestration run.
type ServiceTarget struct {
	Pattern          string `yaml:"pattern"`
	Port             int    `yaml:"port"`
	WorkingDirectory string `yaml:"working_directory"`
}

// TerminationConfig holds the fixed settle intervals.
type TerminationConfig struct {
	Settle        time.Duration `yaml:"settle,omitempty"`
	ReclaimSettle time.Duration `yaml:"reclaim_settle,omitempty"`
}

// Config is the top-level configuration file structure. The same config
// serves both triggers (source update and dependency update); the
// triggering policy lives outside this module.
type Config struct {
	Service     ServiceTarget     `yaml:"service"`
	Launch      launch.Config     `yaml:"launch"`
	Termination TerminationConfig `yaml:"termination,omitempty"`
	Verify      verify.Config     `yaml:"verify,omitempty"`
}

// LoadConfigFromFile loads orchestrator configuration from a YAML file and
// applies defaults.
func LoadConfigFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("filename", filename)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewValidationError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	setConfigDefaults(&config)
	return &config, nil
}

func setConfigDefaults(config *Config) {
	if config.Launch.WorkingDirectory == "" {
		config.Launch.WorkingDirectory = config.Service.WorkingDirectory
	}
}

// ValidateConfig validates the configuration structure before a run.
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}
	if config.Service.Pattern == "" {
		return errors.NewValidationError("service pattern is required", nil)
	}
	if config.Service.Port <= 0 || config.Service.Port > 65535 {
		return errors.NewValidationError("service port must be in range 1-65535", nil).WithContext("port", config.Service.Port)
	}
	if config.Service.WorkingDirectory == "" {
		return errors.NewValidationError("service working directory is required", nil)
	}
	if config.Launch.Command == "" {
		return errors.NewValidationError("launch command is required", nil)
	}
	if config.Launch.LogPath == "" {
		return errors.NewValidationError("launch log path is required", nil)
	}
	return nil
}
