package mapping

import (
	"math"

	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// mapValue linearly maps v from [fromMin, fromMax] to [toMin, toMax]. A
// zero-width source range maps to the middle of the destination.
func mapValue(v, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		return (toMin + toMax) / 2
	}
	scaled := (v - fromMin) / (fromMax - fromMin)
	return toMin + scaled*(toMax-toMin)
}

// headingRange returns the horizontal sensor range of the calibration
// and the sample heading expressed on the same continuous axis.
//
// When the left and right headings are more than 180° apart the range
// crosses north (0/360°). The larger bound is moved down by 360° so the
// span becomes the short arc, and alpha is shifted by whole turns into
// the 360° window centred on that arc.
func headingRange(alphaLeft, alphaRight, alpha float64) (left, right, a float64) {
	span := alphaRight - alphaLeft
	if math.Abs(span) <= 180 {
		return alphaLeft, alphaRight, alpha
	}
	if span > 0 {
		alphaRight -= 360
	} else {
		alphaLeft -= 360
	}
	mid := (alphaLeft + alphaRight) / 2
	for alpha < mid-180 {
		alpha += 360
	}
	for alpha >= mid+180 {
		alpha -= 360
	}
	return alphaLeft, alphaRight, alpha
}

// AbsolutePosition maps a tilt/heading sample onto rect using the four
// corner points of cal. It returns false when calibration is incomplete.
// Results outside rect are clamped to the nearest edge pixel.
func AbsolutePosition(cal *CalibrationSet, rect screen.Rect, beta, alpha float64) (x, y int, ok bool) {
	tl, tr, bl, br, ok := cal.corners()
	if !ok {
		return 0, 0, false
	}

	minBeta := (tl.Beta + tr.Beta) / 2
	maxBeta := (bl.Beta + br.Beta) / 2
	alphaLeft, alphaRight, alpha := headingRange(
		(tl.Alpha+bl.Alpha)/2,
		(tr.Alpha+br.Alpha)/2,
		alpha,
	)

	tx := mapValue(alpha, alphaLeft, alphaRight, float64(rect.X), float64(rect.Right()))
	ty := mapValue(beta, minBeta, maxBeta, float64(rect.Y), float64(rect.Bottom()))

	return int(rect.ClampX(tx)), int(rect.ClampY(ty)), true
}
