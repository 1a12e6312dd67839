package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-go/estimate"
	"tracker-go/sensor"
)

type stubSource struct {
	sample estimate.Sample
	err    error
}

func (s *stubSource) Sample() (estimate.Sample, error) { return s.sample, s.err }
func (s *stubSource) Close() error                     { return nil }

func newTestRunner(src sensor.Source) *Runner {
	p := estimate.NewPipeline(estimate.DefaultStep,
		estimate.Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1},
		[estimate.NumAxes]estimate.AxisState{})
	return NewRunner(p, src, 100*time.Millisecond)
}

func TestRunnerCycle(t *testing.T) {
	src := &stubSource{sample: estimate.Sample{Ax: 1, Ay: -2, Az: 9.81}}
	r := newTestRunner(src)

	now := time.UnixMilli(1700000000000)
	r.cycle(now)
	r.cycle(now.Add(100 * time.Millisecond))

	state, ok := r.Last().(wsState)
	require.True(t, ok)
	assert.Equal(t, uint64(2), state.Seq)
	assert.Equal(t, estimate.FlagUpdated, state.Flag)
	assert.Equal(t, now.Add(100*time.Millisecond).UnixMilli(), state.TS)
	assert.NotZero(t, state.PX)
}

func TestRunnerHoldsOnSourceError(t *testing.T) {
	src := &stubSource{err: sensor.ErrNoSample}
	r := newTestRunner(src)

	now := time.Now()
	r.cycle(now)

	state := r.Last().(wsState)
	assert.Equal(t, estimate.FlagHeld, state.Flag)
	assert.Equal(t, uint64(1), state.Seq)
	assert.Zero(t, state.PX)

	// Source recovers; the next cycle resumes updating.
	src.err = nil
	src.sample = estimate.Sample{Ax: 2}
	r.cycle(now.Add(time.Second))

	state = r.Last().(wsState)
	assert.Equal(t, estimate.FlagUpdated, state.Flag)
	assert.Equal(t, uint64(2), state.Seq)
}
