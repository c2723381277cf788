package terminate

import (
	"context"
	"testing"
	"time"

	"github.com/exaima/redeploy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReclaim_FreePortNeverEscalates(t *testing.T) {
	recorder := &killRecorder{portBound: false}
	reclaimer := NewPortReclaimer(recorder, time.Millisecond, &TerminateMockLogger{})

	warnings := reclaimer.Reclaim(context.Background(), 8000)

	assert.Zero(t, recorder.portKills)
	assert.False(t, warnings.HasErrors())
}

func TestReclaim_EscalatesOnceWhenStillBound(t *testing.T) {
	recorder := &killRecorder{portBound: true, portPID: 999}
	reclaimer := NewPortReclaimer(recorder, time.Millisecond, &TerminateMockLogger{})

	warnings := reclaimer.Reclaim(context.Background(), 8000)

	assert.Equal(t, 1, recorder.portKills)
	assert.False(t, warnings.HasErrors())
}

func TestReclaim_ResidualBindingIsAWarningNotARetry(t *testing.T) {
	recorder := &stubbornPort{}
	reclaimer := NewPortReclaimer(recorder, time.Millisecond, &TerminateMockLogger{})

	warnings := reclaimer.Reclaim(context.Background(), 8000)

	assert.Equal(t, 1, recorder.portKills)
	require.True(t, warnings.HasErrors())
	assert.True(t, errors.IsPortError(warnings.Errors[0]))
}

func TestReclaim_PortCheckErrorIsAWarning(t *testing.T) {
	recorder := &killRecorder{portErr: assert.AnError}
	reclaimer := NewPortReclaimer(recorder, time.Millisecond, &TerminateMockLogger{})

	warnings := reclaimer.Reclaim(context.Background(), 8000)

	assert.Zero(t, recorder.portKills)
	require.True(t, warnings.HasErrors())
	assert.True(t, errors.IsPortError(warnings.Errors[0]))
}

// stubbornPort stays bound even after the escalated kill
type stubbornPort struct {
	killRecorder
}

func (s *stubbornPort) PortOwner(ctx context.Context, port int) (int, bool, error) {
	return 999, true, nil
}

func (s *stubbornPort) KillPortOwner(ctx context.Context, port int) error {
	s.portKills++
	return nil
}
