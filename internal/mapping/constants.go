package mapping

// Motion tuning. These values are part of the wire contract with the
// phone client; changing them changes how the pointer feels.
const (
	// DeadZone is the band (degrees) around zero tilt/roll that produces
	// no relative movement.
	DeadZone = 2.0
	// RelativeSensitivity scales degrees outside the dead zone to pixels.
	RelativeSensitivity = 3.5
	// ScrollSensitivity scales a scroll gesture delta to wheel notches.
	ScrollSensitivity = 0.07
	// JitterThreshold is the deviation from gravity (m/s²) above which a
	// sample counts as shaken.
	JitterThreshold = 1.5
	// JitterSmoothing is the blend coefficient forced on shaken samples.
	JitterSmoothing = 0.1
	// DefaultSmoothing is the base blend coefficient of a new session.
	DefaultSmoothing = 0.25
	// MinSmoothing is the lower clamp for configured smoothing; zero
	// would freeze the cursor.
	MinSmoothing = 0.01
	// CalibrationPoints is the number of distinct named points needed
	// before absolute mapping activates.
	CalibrationPoints = 5
)

// Calibration point names read by the absolute mapper.
const (
	PointTopLeft     = "tl"
	PointTopRight    = "tr"
	PointBottomLeft  = "bl"
	PointBottomRight = "br"
	// PointCenter is the fifth point the client sends. It counts toward
	// completion but the mapper does not read it.
	PointCenter = "center"
)
