package mapping

import "github.com/relabs-tech/gyro_pointer/internal/orientation"

// Mode selects how samples become cursor motion.
type Mode int

const (
	// ModeAbsolute maps orientation to a calibrated screen position.
	ModeAbsolute Mode = iota
	// ModeRelative maps tilt away from neutral to a cursor velocity.
	ModeRelative
)

// ParseMode maps the wire name to a Mode. Anything but "relative" is
// absolute.
func ParseMode(s string) Mode {
	if s == "relative" {
		return ModeRelative
	}
	return ModeAbsolute
}

func (m Mode) String() string {
	if m == ModeRelative {
		return "relative"
	}
	return "absolute"
}

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// ParseButton maps the wire name to a Button. Anything but "left" is
// the right button.
func ParseButton(s string) Button {
	if s == "left" {
		return ButtonLeft
	}
	return ButtonRight
}

func (b Button) String() string {
	if b == ButtonLeft {
		return "left"
	}
	return "right"
}

// Command is one decoded client message. The set of implementations is
// closed; Session.Handle switches over all of them.
type Command interface {
	command()
}

// CalibratePoint records the orientation for a named screen reference.
type CalibratePoint struct {
	Point string
	Beta  float64
	Alpha float64
}

// ResetCalibration drops all calibration points.
type ResetCalibration struct{}

// ChangeMode switches between absolute and relative pointing.
type ChangeMode struct {
	Mode Mode
}

// SetJitterReduction turns acceleration based jitter detection on or off.
type SetJitterReduction struct {
	Enabled bool
}

// SetSmoothing sets the base blend coefficient.
type SetSmoothing struct {
	Value float64
}

// Axis flags an orientation angle.
type Axis uint8

const (
	AxisAlpha Axis = 1 << iota
	AxisGamma
)

// Move carries one orientation sample. Missing flags angles the client
// left out; absolute mode needs alpha, relative mode needs gamma.
type Move struct {
	Sample  orientation.Sample
	Missing Axis
}

// Press holds a mouse button down.
type Press struct {
	Button Button
}

// Release lets a mouse button go.
type Release struct {
	Button Button
}

// Scroll is a scroll gesture; Delta is the raw gesture amount.
type Scroll struct {
	Delta float64
}

func (CalibratePoint) command()     {}
func (ResetCalibration) command()   {}
func (ChangeMode) command()         {}
func (SetJitterReduction) command() {}
func (SetSmoothing) command()       {}
func (Move) command()               {}
func (Press) command()              {}
func (Release) command()            {}
func (Scroll) command()             {}
