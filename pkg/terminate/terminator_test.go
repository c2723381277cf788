package terminate

import (
	"context"
	"testing"
	"time"

	"github.com/exaima/redeploy/pkg/discovery"
	"github.com/exaima/redeploy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TerminateMockLogger struct{}

func (m *TerminateMockLogger) Debugf(format string, args ...interface{}) {}
func (m *TerminateMockLogger) Infof(format string, args ...interface{})  {}
func (m *TerminateMockLogger) Warnf(format string, args ...interface{})  {}
func (m *TerminateMockLogger) Errorf(format string, args ...interface{}) {}

// killRecorder records kill attempts and fails the scripted PIDs
type killRecorder struct {
	killed    []int
	failPIDs  map[int]bool
	portPID   int
	portBound bool
	portErr   error
	portKills int
}

func (k *killRecorder) FindByPattern(ctx context.Context, pattern string) ([]int, error) {
	return nil, nil
}

func (k *killRecorder) ScanTable(ctx context.Context, pattern string) ([]int, error) {
	return nil, nil
}

func (k *killRecorder) PortOwner(ctx context.Context, port int) (int, bool, error) {
	return k.portPID, k.portBound, k.portErr
}

func (k *killRecorder) Kill(pid int) error {
	k.killed = append(k.killed, pid)
	if k.failPIDs[pid] {
		return errors.NewProcessError("no such process", nil)
	}
	return nil
}

func (k *killRecorder) KillPortOwner(ctx context.Context, port int) error {
	k.portKills++
	k.portBound = false
	return nil
}

func TestTerminateAll_ToleratesDeadHandles(t *testing.T) {
	recorder := &killRecorder{failPIDs: map[int]bool{100: true}}
	terminator := NewTerminator(recorder, time.Millisecond, &TerminateMockLogger{})

	set := discovery.NewCandidateSet(100, 200)
	warnings := terminator.TerminateAll(context.Background(), set)

	// The dead handle is a warning; the live handle is still signaled.
	assert.Equal(t, []int{100, 200}, recorder.killed)
	require.Len(t, warnings.Errors, 1)
	assert.True(t, errors.IsTerminationError(warnings.Errors[0]))
}

func TestTerminateAll_EmptySetIsNoOp(t *testing.T) {
	recorder := &killRecorder{}
	terminator := NewTerminator(recorder, time.Millisecond, &TerminateMockLogger{})

	warnings := terminator.TerminateAll(context.Background(), discovery.NewCandidateSet())

	assert.Empty(t, recorder.killed)
	assert.False(t, warnings.HasErrors())
}

func TestTerminateAll_WaitsForSettle(t *testing.T) {
	settle := 50 * time.Millisecond
	terminator := NewTerminator(&killRecorder{}, settle, &TerminateMockLogger{})

	start := time.Now()
	terminator.TerminateAll(context.Background(), discovery.NewCandidateSet(1))

	assert.GreaterOrEqual(t, time.Since(start), settle)
}
