package estimate

// Estimate is the published result of one cycle.
type Estimate struct {
	Seq  uint64
	X    AxisState
	Y    AxisState
	Z    AxisState
	Flag int
}

// AxisByIndex returns the estimate for axis index 0..2.
func (e Estimate) AxisByIndex(i int) AxisState {
	switch i {
	case 0:
		return e.X
	case 1:
		return e.Y
	default:
		return e.Z
	}
}

// Pipeline runs the two-stage per-axis estimator once per cycle: the
// integrator turns the raw acceleration sample into an integrated position,
// which feeds the tracking filter as its measurement. Strictly sequential;
// callers drive it from a single goroutine.
type Pipeline struct {
	integ    *Integrator
	tracker  *Tracker
	baseline [NumAxes]AxisState
	meas     [NumAxes]float64
	seq      uint64
	heldRuns uint64
	last     Estimate
}

func NewPipeline(step float64, g Gains, initial [NumAxes]AxisState) *Pipeline {
	return &Pipeline{
		integ:    NewIntegrator(step, initial),
		tracker:  NewTracker(step, g),
		baseline: initial,
		last: Estimate{
			X: initial[0],
			Y: initial[1],
			Z: initial[2],
		},
	}
}

// feedMeasurement copies the integrator's position for the axis into the
// measurement buffer. This is the only coupling between the two stages.
func (p *Pipeline) feedMeasurement(axis int, s AxisState) {
	p.meas[axis] = s.Pos
}

// advanceBaseline commits the published estimate as the tracker's baseline
// for the next cycle.
func (p *Pipeline) advanceBaseline(out [NumAxes]AxisState) {
	p.baseline = out
}

// Process runs one estimation cycle for the sample. Samples that fail the
// boundary check are not allowed to touch either stage; the cycle is held
// instead.
func (p *Pipeline) Process(sample Sample) Estimate {
	if !sample.Valid() {
		return p.Hold()
	}

	var out [NumAxes]AxisState
	for i := 0; i < NumAxes; i++ {
		integrated := p.integ.Step(i, sample.Axis(i))
		p.feedMeasurement(i, integrated)
		out[i] = p.tracker.Step(p.baseline[i], p.meas[i])
	}
	p.advanceBaseline(out)

	p.seq++
	p.heldRuns = 0
	est := Estimate{Seq: p.seq, X: out[0], Y: out[1], Z: out[2], Flag: FlagUpdated}
	p.last = est
	return est
}

// Hold republishes the prior estimate without advancing either stage. The
// integrator's previous state and the tracker baseline stay frozen so the
// recurrence resumes cleanly on the next valid sample.
func (p *Pipeline) Hold() Estimate {
	p.seq++
	p.heldRuns++
	est := p.last
	est.Seq = p.seq
	est.Flag = FlagHeld
	p.last = est
	return est
}

// HeldRuns reports how many consecutive cycles have been held.
func (p *Pipeline) HeldRuns() uint64 {
	return p.heldRuns
}

// Last returns the most recently published estimate.
func (p *Pipeline) Last() Estimate {
	return p.last
}
