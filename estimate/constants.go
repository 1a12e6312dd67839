package estimate

import "math"

// NumAxes is the number of tracked spatial axes (x, y, z).
const NumAxes = 3

// Default cycle parameters. Compile-time defaults; trackd overrides them
// from flags or a config file at startup, never while running.
const (
	DefaultStep  = 0.1 // seconds between cycles
	DefaultAlpha = 0.5 // position blend gain
	DefaultBeta  = 0.4 // velocity correction gain
	DefaultGamma = 0.1 // acceleration correction gain

	// MaxAccel bounds acceptable sample magnitude (m/s^2). Anything above
	// ~16g is treated as a sensor glitch and the cycle is held.
	MaxAccel = 160.0
)

// Result flags published with every estimate.
const (
	FlagUpdated = 2 // full cycle: integrated, blended, baseline advanced
	FlagHeld    = 1 // sample missing or rejected; prior estimate republished
)

// Pow2 returns squared value.
func Pow2(x float64) float64 { return x * x }

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
