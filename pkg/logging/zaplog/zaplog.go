package zaplog

import (
	"github.com/exaima/redeploy/pkg/logging"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the zap backend construction.
type Config struct {
	Level       string `yaml:"level,omitempty"`       // "debug", "info", "warn", "error"
	Development bool   `yaml:"development,omitempty"` // console encoder, caller info
}

// NewLogger creates a zap-backed Logger. The zap types never leak to callers.
func NewLogger(config Config) (logging.Logger, error) {
	zapLogger, err := buildZapLogger(config)
	if err != nil {
		return nil, err
	}
	sugar := zapLogger.Sugar()
	return logging.NewLogger("", logging.LogFuncs{
		Debugf: sugar.Debugf,
		Infof:  sugar.Infof,
		Warnf:  sugar.Warnf,
		Errorf: sugar.Errorf,
	}), nil
}

func buildZapLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(config.Level))
	return zapConfig.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
