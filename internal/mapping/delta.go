package mapping

import "math"

// RelativeDelta converts roll (gamma) and tilt (beta) into a pixel
// delta. Each axis has its own dead zone; outside it the excess is
// scaled by RelativeSensitivity. Tilting forward (positive beta) moves
// the cursor up.
func RelativeDelta(beta, gamma float64) (dx, dy float64) {
	return excess(gamma), -excess(beta)
}

func excess(v float64) float64 {
	m := math.Abs(v)
	if m <= DeadZone {
		return 0
	}
	return math.Copysign((m-DeadZone)*RelativeSensitivity, v)
}
