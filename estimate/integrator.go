package estimate

// Sample is one raw accelerometer reading, one scalar per axis, in m/s^2.
type Sample struct {
	Ax float64
	Ay float64
	Az float64
}

// Valid reports whether every component is finite and within the sensor's
// plausible range. Non-finite values must never reach the filter stages.
func (s Sample) Valid() bool {
	for _, v := range [NumAxes]float64{s.Ax, s.Ay, s.Az} {
		if !isFinite(v) || v < -MaxAccel || v > MaxAccel {
			return false
		}
	}
	return true
}

// Axis returns the component for axis index 0..2.
func (s Sample) Axis(i int) float64 {
	switch i {
	case 0:
		return s.Ax
	case 1:
		return s.Ay
	default:
		return s.Az
	}
}

// AxisState is the kinematic state of one spatial axis.
type AxisState struct {
	Pos float64
	Vel float64
	Acc float64
}

// Integrator converts per-axis acceleration samples into an integrated
// position/velocity trajectory using trapezoidal integration over a fixed
// time step. It keeps a current/previous state pair per axis; the previous
// state always equals the prior cycle's result, so cycles must be
// consecutive for the recurrence to hold.
type Integrator struct {
	step float64
	curr [NumAxes]AxisState
	prev [NumAxes]AxisState
}

func NewIntegrator(step float64, initial [NumAxes]AxisState) *Integrator {
	return &Integrator{
		step: step,
		curr: initial,
		prev: initial,
	}
}

// integrateVelocity averages the two acceleration endpoints over one step.
func integrateVelocity(currAcc, prevAcc, prevVel, t float64) float64 {
	return prevVel + (currAcc+prevAcc)/2*t
}

// integratePosition averages the two velocity endpoints over one step.
func integratePosition(currVel, prevVel, prevPos, t float64) float64 {
	return prevPos + (currVel+prevVel)/2*t
}

// Step ingests one acceleration sample for the given axis and returns the
// updated state. Velocity integrates first because position consumes the
// new velocity. The result is committed unconditionally as the previous
// state for the next cycle; there is no rollback.
func (g *Integrator) Step(axis int, acc float64) AxisState {
	p := g.prev[axis]
	vel := integrateVelocity(acc, p.Acc, p.Vel, g.step)
	pos := integratePosition(vel, p.Vel, p.Pos, g.step)

	s := AxisState{Pos: pos, Vel: vel, Acc: acc}
	g.curr[axis] = s
	g.prev[axis] = s
	return s
}

// Current returns the most recently committed state for the axis.
func (g *Integrator) Current(axis int) AxisState {
	return g.curr[axis]
}
