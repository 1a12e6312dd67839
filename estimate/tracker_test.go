package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerStepScenario(t *testing.T) {
	// t=5, a=0.5, b=0.4, y=0.1, zero baseline, m=10:
	// estPos=0, newPos=5.0, newVel=0.4*(10/5)=0.8, newAcc=0.1*(10/12.5)=0.08.
	tr := NewTracker(5.0, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1})

	next := tr.Step(AxisState{}, 10)
	assert.Equal(t, 5.0, next.Pos)
	assert.Equal(t, 0.8, next.Vel)
	assert.Equal(t, 0.08, next.Acc)
}

func TestTrackerZeroResidual(t *testing.T) {
	// If the measurement equals the prediction, the corrections vanish and
	// the blended state is exactly the extrapolation.
	tr := NewTracker(0.25, Gains{Alpha: 0.3, Beta: 0.1, Gamma: 0.05})
	prior := AxisState{Pos: 4.5, Vel: -1.25, Acc: 2.0}

	est := tr.Extrapolate(prior)
	next := tr.Step(prior, est.Pos)

	assert.Equal(t, est.Vel, next.Vel)
	assert.Equal(t, est.Acc, next.Acc)
}

func TestTrackerConstantAccelerationExact(t *testing.T) {
	// Feeding the noiseless analytic position keeps the filter on the
	// analytic trajectory exactly: with measurement == prediction the gain
	// blending degenerates to the true value.
	const g = 9.81
	const step = 0.5
	tr := NewTracker(step, Gains{Alpha: 0.5, Beta: 0.005, Gamma: 0.0002})

	state := AxisState{Pos: 0, Vel: 0, Acc: g}
	elapsed := 0.0
	for i := 0; i < 10; i++ {
		truth := tr.Extrapolate(state)
		state = tr.Step(state, truth.Pos)
		elapsed += step

		assert.Equal(t, truth, state, "cycle %d", i)
		assert.InDelta(t, 0.5*g*elapsed*elapsed, state.Pos, 1e-9)
		assert.InDelta(t, g*elapsed, state.Vel, 1e-9)
	}
}

func TestTrackerStepIsPure(t *testing.T) {
	tr := NewTracker(1.0, Gains{Alpha: 0.5, Beta: 0.4, Gamma: 0.1})
	prior := AxisState{Pos: 1, Vel: 2, Acc: 3}
	saved := prior

	tr.Step(prior, 42)
	assert.Equal(t, saved, prior)

	// Same inputs, same output.
	assert.Equal(t, tr.Step(saved, 42), tr.Step(saved, 42))
}
