package estimate

// Gains are the fixed blending constants of the tracking filter, shared
// across axes and cycles. Alpha weighs the measured position against the
// extrapolation; Beta and Gamma scale the same position residual into
// velocity and acceleration corrections.
type Gains struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// Tracker is a fixed-gain alpha-beta-gamma filter: it extrapolates a
// baseline kinematic state one step ahead under constant acceleration and
// corrects the prediction toward a measured position. Unlike a Kalman
// filter there is no covariance; the gains never change.
type Tracker struct {
	step  float64
	gains Gains
}

func NewTracker(step float64, g Gains) *Tracker {
	return &Tracker{step: step, gains: g}
}

// Extrapolate advances a state one step under constant acceleration.
func (tr *Tracker) Extrapolate(s AxisState) AxisState {
	t := tr.step
	return AxisState{
		Pos: s.Pos + s.Vel*t + 0.5*s.Acc*Pow2(t),
		Vel: s.Vel + s.Acc*t,
		Acc: s.Acc,
	}
}

// Step blends a one-step extrapolation of prior with the measured position
// m and returns the next state. Pure: prior is never mutated, so the caller
// owns the baseline advance. All three corrections are driven by the same
// residual (m - estPos), scaled per state order.
func (tr *Tracker) Step(prior AxisState, m float64) AxisState {
	est := tr.Extrapolate(prior)
	t := tr.step
	residual := m - est.Pos
	return AxisState{
		Pos: (1-tr.gains.Alpha)*est.Pos + tr.gains.Alpha*m,
		Vel: est.Vel + tr.gains.Beta*residual/t,
		Acc: est.Acc + tr.gains.Gamma*residual/(0.5*Pow2(t)),
	}
}
