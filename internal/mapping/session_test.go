package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

type fixedCursor struct{ x, y int }

func (c *fixedCursor) Position() (int, int) { return c.x, c.y }

func newTestSession(t *testing.T, cursor CursorLocator) *Session {
	t.Helper()
	return NewSession("test-conn", testScreen, cursor, zaptest.NewLogger(t))
}

func calibrate(t *testing.T, s *Session) {
	t.Helper()
	for _, cmd := range []CalibratePoint{
		{Point: PointTopLeft, Beta: -10, Alpha: 30},
		{Point: PointTopRight, Beta: -10, Alpha: 70},
		{Point: PointBottomLeft, Beta: 10, Alpha: 30},
		{Point: PointBottomRight, Beta: 10, Alpha: 70},
		{Point: PointCenter, Beta: 0, Alpha: 50},
	} {
		assert.True(t, s.Handle(cmd).None(), "calibration must not emit")
	}
	require.True(t, s.Calibration().IsComplete())
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 300, y: 400})
	assert.Equal(t, "test-conn", s.ID())
	assert.Equal(t, ModeAbsolute, s.Mode())
	assert.Equal(t, DefaultFilter(), s.Filter())
	assert.Equal(t, Position{X: 300, Y: 400}, s.LastPosition())
	assert.Equal(t, 0, s.Calibration().Len())

	noCursor := NewSession("x", testScreen, nil, nil)
	assert.Equal(t, Position{}, noCursor.LastPosition())
}

func TestSessionAbsoluteMoveBeforeCalibration(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 10, y: 10})
	e := s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	assert.True(t, e.None())
	assert.Equal(t, Position{X: 10, Y: 10}, s.LastPosition())
}

func TestSessionCalibrationCompletionReseeds(t *testing.T) {
	cursor := &fixedCursor{x: 10, y: 10}
	s := newTestSession(t, cursor)
	cursor.x, cursor.y = 700, 500
	calibrate(t, s)
	assert.Equal(t, Position{X: 700, Y: 500}, s.LastPosition())
}

func TestSessionAbsoluteMoveSmooths(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 0, y: 0})
	calibrate(t, s)

	// centre sample, target (960, 540), k = 0.25
	e := s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	assert.Equal(t, Emission{Kind: EmitMoveAbsolute, X: 240, Y: 135}, e)
	assert.Equal(t, Position{X: 240, Y: 135}, s.LastPosition())

	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	assert.Equal(t, Emission{Kind: EmitMoveAbsolute, X: 420, Y: 236}, e)
	assert.InDelta(t, 236.25, s.LastPosition().Y, 1e-9, "fraction kept between samples")
}

func TestSessionAbsoluteMoveConverges(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 1900, y: 20})
	calibrate(t, s)
	for i := 0; i < 200; i++ {
		s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	}
	assert.InDelta(t, 960, s.LastPosition().X, 1e-6)
	assert.InDelta(t, 540, s.LastPosition().Y, 1e-6)
}

func TestSessionJitterOverride(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 0, y: 0})
	calibrate(t, s)
	require.NoError(t, s.SetSmoothingFactor(0.9))

	shaken := orientation.Sample{Beta: 0, Alpha: 50, Accel: &orientation.Acceleration{Z: 20}}
	e := s.Handle(Move{Sample: shaken})
	assert.Equal(t, 96, e.X, "k forced to 0.1")
	assert.Equal(t, 54, e.Y)

	// the override does not persist
	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	assert.InDelta(t, 96+(960-96)*0.9, s.LastPosition().X, 1e-9)
	assert.Equal(t, EmitMoveAbsolute, e.Kind)

	// disabled: shaken sample uses the configured coefficient
	s.Handle(SetJitterReduction{Enabled: false})
	before := s.LastPosition()
	s.Handle(Move{Sample: shaken})
	assert.InDelta(t, before.X+(960-before.X)*0.9, s.LastPosition().X, 1e-9)
}

func TestSessionRelativeMove(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 500, y: 500})
	s.Handle(ChangeMode{Mode: ModeRelative})
	require.NoError(t, s.SetSmoothingFactor(1))

	e := s.Handle(Move{Sample: orientation.Sample{Beta: 1, Gamma: 1}})
	assert.True(t, e.None(), "dead zone emits nothing")
	assert.Equal(t, Position{X: 500, Y: 500}, s.LastPosition())

	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Gamma: 5}})
	assert.Equal(t, Emission{Kind: EmitMoveRelative, X: 510, Y: 500}, e)
	assert.InDelta(t, 510.5, s.LastPosition().X, 1e-9)
}

func TestSessionRelativeMoveSmoothsAndClamps(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 1910, y: 5})
	s.Handle(ChangeMode{Mode: ModeRelative})

	// dx = (12-2)*3.5 = 35, blended by 0.25
	e := s.Handle(Move{Sample: orientation.Sample{Gamma: 12}})
	assert.Equal(t, 1918, e.X)
	assert.InDelta(t, 1918.75, s.LastPosition().X, 1e-9)

	for i := 0; i < 10; i++ {
		e = s.Handle(Move{Sample: orientation.Sample{Gamma: 12, Beta: 30}})
	}
	assert.Equal(t, 1919, e.X)
	assert.Equal(t, 0, e.Y)
	assert.True(t, testScreen.Contains(e.X, e.Y))
}

func TestSessionRelativeIgnoresCalibration(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 100, y: 100})
	s.Handle(ChangeMode{Mode: ModeRelative})
	e := s.Handle(Move{Sample: orientation.Sample{Beta: -6}})
	assert.Equal(t, EmitMoveRelative, e.Kind)
	assert.Greater(t, e.Y, 100)
}

func TestSessionMoveNeedsModeAxis(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 500, y: 500})
	calibrate(t, s)
	require.NoError(t, s.SetSmoothingFactor(1))

	e := s.Handle(Move{Sample: orientation.Sample{Beta: 0, Gamma: 20}, Missing: AxisAlpha})
	assert.True(t, e.None(), "absolute mode needs a heading")
	assert.Equal(t, Position{X: 500, Y: 500}, s.LastPosition())

	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}, Missing: AxisGamma})
	assert.Equal(t, Emission{Kind: EmitMoveAbsolute, X: 960, Y: 540}, e)

	s.Handle(ChangeMode{Mode: ModeRelative})
	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}, Missing: AxisGamma})
	assert.True(t, e.None(), "relative mode needs a roll")

	e = s.Handle(Move{Sample: orientation.Sample{Beta: 0, Gamma: 5}, Missing: AxisAlpha})
	assert.Equal(t, Emission{Kind: EmitMoveRelative, X: 970, Y: 540}, e)
}

func TestSessionModeSwitchKeepsState(t *testing.T) {
	s := newTestSession(t, &fixedCursor{x: 0, y: 0})
	calibrate(t, s)
	s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	last := s.LastPosition()

	s.Handle(ChangeMode{Mode: ModeRelative})
	assert.Equal(t, ModeRelative, s.Mode())
	assert.True(t, s.Calibration().IsComplete())
	assert.Equal(t, last, s.LastPosition())

	s.Handle(ChangeMode{Mode: ModeAbsolute})
	e := s.Handle(Move{Sample: orientation.Sample{Beta: 0, Alpha: 50}})
	assert.Equal(t, EmitMoveAbsolute, e.Kind)
}

func TestSessionResetCalibration(t *testing.T) {
	s := newTestSession(t, nil)
	calibrate(t, s)
	assert.True(t, s.Handle(ResetCalibration{}).None())
	assert.Equal(t, 0, s.Calibration().Len())
	assert.True(t, s.Handle(Move{Sample: orientation.Sample{Alpha: 50}}).None())
}

func TestSessionSmoothingValidation(t *testing.T) {
	s := newTestSession(t, nil)

	s.Handle(SetSmoothing{Value: math.NaN()})
	assert.Equal(t, DefaultSmoothing, s.Filter().Smoothing, "NaN is ignored")

	s.Handle(SetSmoothing{Value: 0.6})
	assert.Equal(t, 0.6, s.Filter().Smoothing)

	s.Handle(SetSmoothing{Value: 7})
	assert.Equal(t, 1.0, s.Filter().Smoothing)

	s.Handle(SetSmoothing{Value: -1})
	assert.Equal(t, MinSmoothing, s.Filter().Smoothing)
}

func TestSessionButtonsAndScroll(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Equal(t, Emission{Kind: EmitPress, Button: ButtonLeft}, s.Handle(Press{Button: ButtonLeft}))
	assert.Equal(t, Emission{Kind: EmitRelease, Button: ButtonRight}, s.Handle(Release{Button: ButtonRight}))

	e := s.Handle(Scroll{Delta: 10})
	assert.Equal(t, EmitScroll, e.Kind)
	assert.InDelta(t, -0.7, e.Scroll, 1e-9)

	assert.True(t, s.Handle(Scroll{Delta: 0}).None())
	assert.Equal(t, Position{}, s.LastPosition(), "scroll does not move the pointer")
}

func TestSessionIgnoresSixthCalibrationName(t *testing.T) {
	s := newTestSession(t, nil)
	calibrate(t, s)
	s.Handle(CalibratePoint{Point: "extra", Beta: 1, Alpha: 1})
	assert.Equal(t, CalibrationPoints, s.Calibration().Len())
}
