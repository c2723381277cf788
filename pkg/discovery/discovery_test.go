package discovery

import (
	"context"
	"testing"

	"github.com/exaima/redeploy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DiscoveryMockLogger is a no-op Logger for tests
type DiscoveryMockLogger struct{}

func (m *DiscoveryMockLogger) Debugf(format string, args ...interface{}) {}
func (m *DiscoveryMockLogger) Infof(format string, args ...interface{})  {}
func (m *DiscoveryMockLogger) Warnf(format string, args ...interface{})  {}
func (m *DiscoveryMockLogger) Errorf(format string, args ...interface{}) {}

// fakeInspector scripts the five host operations for a test
type fakeInspector struct {
	patternPIDs []int
	patternErr  error
	tablePIDs   []int
	tableErr    error
	portPID     int
	portBound   bool
	portErr     error
}

func (f *fakeInspector) FindByPattern(ctx context.Context, pattern string) ([]int, error) {
	return f.patternPIDs, f.patternErr
}

func (f *fakeInspector) ScanTable(ctx context.Context, pattern string) ([]int, error) {
	return f.tablePIDs, f.tableErr
}

func (f *fakeInspector) PortOwner(ctx context.Context, port int) (int, bool, error) {
	return f.portPID, f.portBound, f.portErr
}

func (f *fakeInspector) Kill(pid int) error {
	return nil
}

func (f *fakeInspector) KillPortOwner(ctx context.Context, port int) error {
	return nil
}

func TestDiscover_UnionDeduplicates(t *testing.T) {
	inspector := &fakeInspector{
		patternPIDs: []int{100, 200},
		tablePIDs:   []int{200, 300},
		portPID:     100,
		portBound:   true,
	}
	discoverer := NewDiscoverer(inspector, &DiscoveryMockLogger{})

	set, portBound, warnings := discoverer.Discover(context.Background(), Target{Pattern: "uvicorn", Port: 8000})

	assert.False(t, warnings.HasErrors())
	assert.True(t, portBound)
	assert.Equal(t, []int{100, 200, 300}, set.PIDs())
}

func TestDiscover_EmptyProbesAreValid(t *testing.T) {
	discoverer := NewDiscoverer(&fakeInspector{}, &DiscoveryMockLogger{})

	set, portBound, warnings := discoverer.Discover(context.Background(), Target{Pattern: "uvicorn", Port: 8000})

	assert.False(t, warnings.HasErrors())
	assert.False(t, portBound)
	assert.True(t, set.IsEmpty())
}

func TestDiscover_ProbeErrorDegradesResult(t *testing.T) {
	inspector := &fakeInspector{
		patternErr: assert.AnError,
		tablePIDs:  []int{42},
	}
	discoverer := NewDiscoverer(inspector, &DiscoveryMockLogger{})

	set, _, warnings := discoverer.Discover(context.Background(), Target{Pattern: "uvicorn", Port: 8000})

	require.True(t, warnings.HasErrors())
	assert.Len(t, warnings.Errors, 1)
	assert.True(t, errors.IsDiscoveryError(warnings.Errors[0]))
	assert.Equal(t, []int{42}, set.PIDs())
}

func TestDiscover_PortOwnerWithoutPIDIsNotACandidate(t *testing.T) {
	// The port is bound but the owner PID is not visible; there is no
	// handle to add, but the binding itself must still be reported so the
	// reclaimer can target the port.
	inspector := &fakeInspector{portBound: true, portPID: 0}
	discoverer := NewDiscoverer(inspector, &DiscoveryMockLogger{})

	set, portBound, warnings := discoverer.Discover(context.Background(), Target{Pattern: "uvicorn", Port: 8000})

	assert.False(t, warnings.HasErrors())
	assert.True(t, set.IsEmpty())
	assert.True(t, portBound)
}

func TestDiscover_IdempotentWithoutStateChange(t *testing.T) {
	inspector := &fakeInspector{
		patternPIDs: []int{10, 20},
		tablePIDs:   []int{20},
		portPID:     30,
		portBound:   true,
	}
	discoverer := NewDiscoverer(inspector, &DiscoveryMockLogger{})
	target := Target{Pattern: "uvicorn", Port: 8000}

	first, _, _ := discoverer.Discover(context.Background(), target)
	second, _, _ := discoverer.Discover(context.Background(), target)

	assert.Equal(t, first.PIDs(), second.PIDs())
}
