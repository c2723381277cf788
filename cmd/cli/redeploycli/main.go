package main

import (
	"context"
	"fmt"
	"os"

	"github.com/exaima/redeploy/pkg/bootstrap"
	"github.com/exaima/redeploy/pkg/host"
	"github.com/exaima/redeploy/pkg/logging"
	"github.com/exaima/redeploy/pkg/logging/zaplog"
	"github.com/exaima/redeploy/pkg/redeploy"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	Config   string `long:"config" description:"path to YAML configuration file"`
	Pattern  string `long:"pattern" description:"command-line pattern identifying the service process"`
	Port     int    `long:"port" description:"TCP port the service listens on"`
	WorkDir  string `long:"workdir" description:"service working directory"`
	LogLevel string `long:"log-level" description:"orchestrator log level" default:"info"`
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s , ", module)
}

func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	var parser = flags.NewParser(&opts, flags.HelpFlag)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		fmt.Printf("Command line flags parsing failed: %v", err)
		os.Exit(1)
	}

	logger, err := zaplog.NewLogger(zaplog.Config{Level: opts.LogLevel})
	if err != nil {
		fmt.Printf("Logger setup failed: %v", err)
		os.Exit(1)
	}

	config, err := loadConfig(opts)
	if err != nil {
		logger.Errorf("Configuration failed: %v", err)
		os.Exit(1)
	}

	redeployLogger := logging.NewLogger(logPrefix("redeploy"), logging.LogFuncs{
		Debugf: logger.Debugf,
		Infof:  logger.Infof,
		Warnf:  logger.Warnf,
		Errorf: logger.Errorf,
	})

	inspector := host.NewSystemInspector(redeployLogger)
	preparer := bootstrap.NewGitPythonPreparer(redeployLogger)

	orchestrator, err := redeploy.NewOrchestrator(config, inspector, preparer, redeployLogger)
	if err != nil {
		logger.Errorf("Failed to create orchestrator: %v", err)
		os.Exit(1)
	}

	result := orchestrator.Run(context.Background())
	for _, warning := range result.Warnings {
		logger.Warnf("Run warning: %v", warning)
	}

	switch result.Outcome {
	case redeploy.OutcomeSucceeded:
		logger.Infof("Deployment succeeded")
	case redeploy.OutcomeSucceededWithWarning:
		logger.Warnf("Deployment succeeded, but the port was not yet observed bound")
	default:
		logger.Errorf("Deployment failed in phase %s: %v", result.Phase, result.Err)
		for _, line := range result.LogTail {
			fmt.Fprintln(os.Stderr, line)
		}
		os.Exit(1)
	}
}

func loadConfig(opts flagOptions) (*redeploy.Config, error) {
	var config *redeploy.Config
	if opts.Config != "" {
		loaded, err := redeploy.LoadConfigFromFile(opts.Config)
		if err != nil {
			return nil, err
		}
		config = loaded
	} else {
		config = &redeploy.Config{}
	}

	// Flags override file values.
	if opts.Pattern != "" {
		config.Service.Pattern = opts.Pattern
	}
	if opts.Port != 0 {
		config.Service.Port = opts.Port
	}
	if opts.WorkDir != "" {
		config.Service.WorkingDirectory = opts.WorkDir
		if config.Launch.WorkingDirectory == "" {
			config.Launch.WorkingDirectory = opts.WorkDir
		}
	}

	if err := redeploy.ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
