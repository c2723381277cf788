package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_AppliesPrefix(t *testing.T) {
	var captured []string
	record := func(format string, args ...interface{}) {
		captured = append(captured, fmt.Sprintf(format, args...))
	}

	logger := NewLogger("module: redeploy , ", LogFuncs{
		Infof:  record,
		Errorf: record,
	})

	logger.Infof("killed PID %d", 42)
	logger.Errorf("launch failed")

	assert.Equal(t, []string{
		"module: redeploy , killed PID 42",
		"module: redeploy , launch failed",
	}, captured)
}

func TestLogger_NilFuncsAreSafe(t *testing.T) {
	logger := NewLogger("prefix", LogFuncs{})

	assert.NotPanics(t, func() {
		logger.Debugf("dropped")
		logger.Infof("dropped")
		logger.Warnf("dropped")
		logger.Errorf("dropped")
	})
}
