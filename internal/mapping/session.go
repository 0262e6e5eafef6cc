package mapping

import (
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// CursorLocator reports where the OS cursor currently is. Sessions use it
// to seed the smoothing filter so the first move does not jump.
type CursorLocator interface {
	Position() (x, y int)
}

// Session is the mapping state of one connected device.
type Session struct {
	id          string
	screen      screen.Rect
	cursor      CursorLocator
	logger      *zap.Logger
	mode        Mode
	calibration *CalibrationSet
	filter      Filter
	last        Position
}

// NewSession returns a session in absolute mode with empty calibration,
// default filter settings, and the last position seeded from cursor.
// cursor may be nil, in which case the seed is the screen origin.
func NewSession(id string, rect screen.Rect, cursor CursorLocator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:          id,
		screen:      rect,
		cursor:      cursor,
		logger:      logger.With(zap.String("conn", id)),
		mode:        ModeAbsolute,
		calibration: NewCalibrationSet(),
		filter:      DefaultFilter(),
	}
	s.seed()
	return s
}

func (s *Session) seed() {
	if s.cursor == nil {
		s.last = Position{X: float64(s.screen.X), Y: float64(s.screen.Y)}
		return
	}
	x, y := s.cursor.Position()
	s.last = Position{X: float64(x), Y: float64(y)}
}

// ID returns the connection id the session was created for.
func (s *Session) ID() string { return s.id }

// Mode returns the current pointing mode.
func (s *Session) Mode() Mode { return s.mode }

// Filter returns the current filter settings.
func (s *Session) Filter() Filter { return s.filter }

// LastPosition returns the last emitted position at full precision.
func (s *Session) LastPosition() Position { return s.last }

// Calibration exposes the calibration set for inspection.
func (s *Session) Calibration() *CalibrationSet { return s.calibration }

// Handle applies one command and returns what the pointer should do.
func (s *Session) Handle(cmd Command) Emission {
	switch c := cmd.(type) {
	case CalibratePoint:
		s.Calibrate(c.Point, c.Beta, c.Alpha)
	case ResetCalibration:
		s.ResetCalibration()
	case ChangeMode:
		s.SetMode(c.Mode)
	case SetJitterReduction:
		s.SetJitterReduction(c.Enabled)
	case SetSmoothing:
		if err := s.SetSmoothingFactor(c.Value); err != nil {
			s.logger.Warn("ignoring smoothing factor", zap.Float64("value", c.Value), zap.Error(err))
		}
	case Move:
		return s.Move(c)
	case Press:
		return s.Press(c.Button)
	case Release:
		return s.Release(c.Button)
	case Scroll:
		return s.Scroll(c.Delta)
	default:
		s.logger.Debug("ignoring unknown command", zap.Any("command", cmd))
	}
	return Emission{}
}

// SetMode switches mode. Calibration and filter state are kept.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.logger.Info("mode changed", zap.Stringer("mode", m))
}

// SetJitterReduction toggles acceleration based jitter detection.
func (s *Session) SetJitterReduction(enabled bool) {
	s.filter.JitterReduction = enabled
	s.logger.Info("jitter reduction toggled", zap.Bool("enabled", enabled))
}

// SetSmoothingFactor sets the base blend coefficient, clamped to
// [MinSmoothing, 1]. Non-finite values leave the session unchanged.
func (s *Session) SetSmoothingFactor(f float64) error {
	v, err := normalizeSmoothing(f)
	if err != nil {
		return err
	}
	s.filter.Smoothing = v
	s.logger.Info("smoothing factor set", zap.Float64("smoothing", v))
	return nil
}

// Calibrate records a calibration point. Whenever the set is complete
// after the write, the last position is re-seeded from the OS cursor.
func (s *Session) Calibrate(name string, beta, alpha float64) {
	if err := s.calibration.SetPoint(name, beta, alpha); err != nil {
		s.logger.Warn("ignoring calibration point", zap.String("point", name), zap.Error(err))
		return
	}
	s.logger.Debug("calibration point stored",
		zap.String("point", name), zap.Float64("beta", beta), zap.Float64("alpha", alpha),
		zap.Int("points", s.calibration.Len()))
	if s.calibration.IsComplete() {
		s.seed()
		s.logger.Info("calibration complete")
	}
}

// ResetCalibration drops all calibration points.
func (s *Session) ResetCalibration() {
	s.calibration.Reset()
	s.logger.Info("calibration reset")
}

// Move runs one sample through the mapper for the current mode and the
// smoothing filter. It emits nothing when absolute mapping is not
// calibrated or a relative sample sits inside the dead zone.
func (s *Session) Move(m Move) Emission {
	k := s.filter.Coefficient(m.Sample.Accel)

	var (
		target Position
		kind   EmissionKind
	)
	switch s.mode {
	case ModeRelative:
		if m.Missing&AxisGamma != 0 {
			s.logger.Debug("relative move without gamma dropped")
			return Emission{}
		}
		dx, dy := RelativeDelta(m.Sample.Beta, m.Sample.Gamma)
		if dx == 0 && dy == 0 {
			return Emission{}
		}
		target = Position{X: s.last.X + dx, Y: s.last.Y + dy}
		kind = EmitMoveRelative
	default:
		if m.Missing&AxisAlpha != 0 {
			s.logger.Debug("absolute move without alpha dropped")
			return Emission{}
		}
		x, y, ok := AbsolutePosition(s.calibration, s.screen, m.Sample.Beta, m.Sample.Alpha)
		if !ok {
			return Emission{}
		}
		target = Position{X: float64(x), Y: float64(y)}
		kind = EmitMoveAbsolute
	}

	next := Blend(target, s.last, k)
	next.X = s.screen.ClampX(next.X)
	next.Y = s.screen.ClampY(next.Y)
	s.last = next

	x, y := next.Pixel()
	return Emission{Kind: kind, X: x, Y: y}
}

// Press emits a button press.
func (s *Session) Press(b Button) Emission {
	return Emission{Kind: EmitPress, Button: b}
}

// Release emits a button release.
func (s *Session) Release(b Button) Emission {
	return Emission{Kind: EmitRelease, Button: b}
}

// Scroll emits a vertical scroll of -delta*ScrollSensitivity notches.
// Scroll bypasses the smoothing filter.
func (s *Session) Scroll(delta float64) Emission {
	amount := -delta * ScrollSensitivity
	if amount == 0 {
		return Emission{}
	}
	return Emission{Kind: EmitScroll, Scroll: amount}
}
