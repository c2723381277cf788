package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/exaima/redeploy/pkg/errors"

	"github.com/stretchr/testify/assert"
)

type BootstrapMockLogger struct{}

func (m *BootstrapMockLogger) Debugf(format string, args ...interface{}) {}
func (m *BootstrapMockLogger) Infof(format string, args ...interface{})  {}
func (m *BootstrapMockLogger) Warnf(format string, args ...interface{})  {}
func (m *BootstrapMockLogger) Errorf(format string, args ...interface{}) {}

func TestPrepareFunc_Adapts(t *testing.T) {
	var seen string
	preparer := PrepareFunc(func(ctx context.Context, dir string) error {
		seen = dir
		return nil
	})

	err := preparer.Prepare(context.Background(), "/srv/backend")

	assert.NoError(t, err)
	assert.Equal(t, "/srv/backend", seen)
}

func TestGitPythonPreparer_MissingDirectoryIsFatal(t *testing.T) {
	preparer := NewGitPythonPreparer(&BootstrapMockLogger{})

	err := preparer.Prepare(context.Background(), filepath.Join(t.TempDir(), "absent"))

	assert.True(t, errors.IsBootstrapError(err))
}

func TestGitPythonPreparer_NonRepositoryDirectoryIsFatal(t *testing.T) {
	// A plain directory has no git metadata, so the source update step
	// fails before anything else runs.
	preparer := NewGitPythonPreparer(&BootstrapMockLogger{})

	err := preparer.Prepare(context.Background(), t.TempDir())

	assert.True(t, errors.IsBootstrapError(err))
}
