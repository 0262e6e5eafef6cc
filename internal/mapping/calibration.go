package mapping

// CalibrationPoint is the orientation captured while the user points at
// a named screen reference.
type CalibrationPoint struct {
	Beta  float64 `json:"b"`
	Alpha float64 `json:"a"`
}

// CalibrationSet accumulates named reference points. Re-sending a name
// overwrites it. Angles are stored as received, without range checks.
type CalibrationSet struct {
	points map[string]CalibrationPoint
}

// NewCalibrationSet returns an empty set.
func NewCalibrationSet() *CalibrationSet {
	return &CalibrationSet{points: make(map[string]CalibrationPoint, CalibrationPoints)}
}

// SetPoint inserts or overwrites name. A new name beyond the fifth is
// rejected with ErrCalibrationFull so the set never grows past
// CalibrationPoints entries; overwriting an existing name always works.
func (c *CalibrationSet) SetPoint(name string, beta, alpha float64) error {
	if _, exists := c.points[name]; !exists && len(c.points) >= CalibrationPoints {
		return ErrCalibrationFull
	}
	c.points[name] = CalibrationPoint{Beta: beta, Alpha: alpha}
	return nil
}

// IsComplete reports whether all distinct points have been captured.
func (c *CalibrationSet) IsComplete() bool {
	return len(c.points) >= CalibrationPoints
}

// Reset empties the set.
func (c *CalibrationSet) Reset() {
	clear(c.points)
}

// Len returns the number of captured points.
func (c *CalibrationSet) Len() int {
	return len(c.points)
}

// Point returns the named point.
func (c *CalibrationSet) Point(name string) (CalibrationPoint, bool) {
	p, ok := c.points[name]
	return p, ok
}

// corners returns the four corner points, or false when the set is not
// complete or one of the corner names is missing (a complete set built
// from other names).
func (c *CalibrationSet) corners() (tl, tr, bl, br CalibrationPoint, ok bool) {
	if !c.IsComplete() {
		return
	}
	var okTL, okTR, okBL, okBR bool
	tl, okTL = c.points[PointTopLeft]
	tr, okTR = c.points[PointTopRight]
	bl, okBL = c.points[PointBottomLeft]
	br, okBR = c.points[PointBottomRight]
	ok = okTL && okTR && okBL && okBR
	return
}
