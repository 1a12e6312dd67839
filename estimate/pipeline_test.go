package estimate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineProcess(t *testing.T) {
	p := NewPipeline(5.0, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}, [NumAxes]AxisState{})

	est := p.Process(Sample{Ax: 4, Ay: 0, Az: 0})
	assert.Equal(t, uint64(1), est.Seq)
	assert.Equal(t, FlagUpdated, est.Flag)

	// Integrator: vel=(4+0)/2*5=10, pos=(10+0)/2*5=25. Tracker on zero
	// baseline with m=25: pos=12.5, vel=0.4*25/5=2, acc=0.1*25/12.5=0.2.
	assert.Equal(t, 12.5, est.X.Pos)
	assert.Equal(t, 2.0, est.X.Vel)
	assert.Equal(t, 0.2, est.X.Acc)
}

func TestPipelineAxisIndependence(t *testing.T) {
	gains := Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}
	quiet := NewPipeline(1.0, gains, [NumAxes]AxisState{})
	noisy := NewPipeline(1.0, gains, [NumAxes]AxisState{})

	samples := []float64{1.5, -0.5, 2.25, 0, -3}
	for i, ax := range samples {
		a := quiet.Process(Sample{Ax: ax})
		// Same x input, arbitrary y/z activity.
		b := noisy.Process(Sample{Ax: ax, Ay: float64(i) * 7, Az: -float64(i)})
		if diff := cmp.Diff(a.X, b.X); diff != "" {
			t.Fatalf("x axis diverged at cycle %d (-quiet +noisy):\n%s", i, diff)
		}
	}
}

func TestPipelineHoldsOnInvalidSample(t *testing.T) {
	p := NewPipeline(1.0, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}, [NumAxes]AxisState{})

	first := p.Process(Sample{Ax: 1, Ay: 2, Az: 3})
	require.Equal(t, FlagUpdated, first.Flag)

	for _, bad := range []Sample{
		{Ax: math.NaN()},
		{Ay: math.Inf(1)},
		{Az: -math.Inf(1)},
		{Ax: MaxAccel * 2},
	} {
		held := p.Process(bad)
		assert.Equal(t, FlagHeld, held.Flag)
		assert.Equal(t, first.X, held.X)
		assert.Equal(t, first.Y, held.Y)
		assert.Equal(t, first.Z, held.Z)
	}
	assert.Equal(t, uint64(4), p.HeldRuns())

	// The held cycles must not have disturbed either stage: resuming gives
	// the same result as an uninterrupted run.
	reference := NewPipeline(1.0, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}, [NumAxes]AxisState{})
	reference.Process(Sample{Ax: 1, Ay: 2, Az: 3})
	want := reference.Process(Sample{Ax: 2, Ay: 1, Az: 0})

	got := p.Process(Sample{Ax: 2, Ay: 1, Az: 0})
	assert.Equal(t, uint64(0), p.HeldRuns())
	assert.Equal(t, want.X, got.X)
	assert.Equal(t, want.Y, got.Y)
	assert.Equal(t, want.Z, got.Z)
}

func TestPipelineSequenceAdvances(t *testing.T) {
	p := NewPipeline(0.1, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}, [NumAxes]AxisState{})

	var prev uint64
	for i := 0; i < 5; i++ {
		est := p.Process(Sample{Ax: 0.5})
		assert.Equal(t, prev+1, est.Seq)
		prev = est.Seq
	}
	held := p.Hold()
	assert.Equal(t, prev+1, held.Seq)
	assert.Equal(t, held, p.Last())
}
