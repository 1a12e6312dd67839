package sensor

import (
	"math"
	"math/rand"

	"tracker-go/estimate"
)

// SyntheticSource generates a sinusoidal acceleration profile with additive
// noise. It stands in for hardware in development and in the end-to-end
// tools: x oscillates, y runs the same profile in quadrature, z holds a
// constant acceleration.
type SyntheticSource struct {
	Amp    float64 // peak acceleration, m/s^2
	Freq   float64 // oscillation frequency, Hz
	Noise  float64 // noise standard deviation, m/s^2
	ZAccel float64 // constant z acceleration, m/s^2

	step float64
	t    float64
	rng  *rand.Rand
}

func NewSyntheticSource(step float64, seed int64) *SyntheticSource {
	return &SyntheticSource{
		Amp:    2.0,
		Freq:   0.2,
		Noise:  0.05,
		ZAccel: 0.5,
		step:   step,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Truth returns the noiseless acceleration at elapsed time t.
func (s *SyntheticSource) Truth(t float64) estimate.Sample {
	w := 2 * math.Pi * s.Freq
	return estimate.Sample{
		Ax: s.Amp * math.Sin(w*t),
		Ay: s.Amp * math.Cos(w*t),
		Az: s.ZAccel,
	}
}

// Sample advances the synthetic clock one step and returns the noisy
// reading for it. Never fails.
func (s *SyntheticSource) Sample() (estimate.Sample, error) {
	truth := s.Truth(s.t)
	s.t += s.step
	return estimate.Sample{
		Ax: truth.Ax + s.rng.NormFloat64()*s.Noise,
		Ay: truth.Ay + s.rng.NormFloat64()*s.Noise,
		Az: truth.Az + s.rng.NormFloat64()*s.Noise,
	}, nil
}

func (s *SyntheticSource) Close() error { return nil }
