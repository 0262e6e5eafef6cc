package mapping

import (
	"math"

	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

// Position is a cursor coordinate kept at sub-pixel precision so the
// exponential blend does not accumulate rounding error. Truncate only
// when handing it to the OS.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pixel truncates p toward zero.
func (p Position) Pixel() (int, int) {
	return int(p.X), int(p.Y)
}

// Filter is the adaptive single-pole smoothing filter.
type Filter struct {
	JitterReduction bool
	Smoothing       float64
}

// DefaultFilter returns the filter every new session starts with.
func DefaultFilter() Filter {
	return Filter{JitterReduction: true, Smoothing: DefaultSmoothing}
}

// Coefficient picks the blend coefficient for one sample. With jitter
// reduction on, a sample whose acceleration magnitude is more than
// JitterThreshold away from gravity gets JitterSmoothing instead of the
// configured value. Samples without acceleration use the configured value.
func (f Filter) Coefficient(accel *orientation.Acceleration) float64 {
	if f.JitterReduction && accel != nil && accel.GravityDeviation() > JitterThreshold {
		return JitterSmoothing
	}
	return f.Smoothing
}

// Blend moves last toward target by k.
func Blend(target, last Position, k float64) Position {
	return Position{
		X: target.X*k + last.X*(1-k),
		Y: target.Y*k + last.Y*(1-k),
	}
}

// normalizeSmoothing clamps f into [MinSmoothing, 1]. NaN and infinities
// are rejected.
func normalizeSmoothing(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidSmoothing
	}
	return math.Min(1, math.Max(MinSmoothing, f)), nil
}
