package pointer

import (
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// LogDriver logs emissions instead of moving anything. Useful on
// headless machines and for the simulator.
type LogDriver struct {
	*tracker
	logger *zap.Logger
}

// NewLog returns a LogDriver whose cursor starts in the middle of rect.
func NewLog(rect screen.Rect, logger *zap.Logger) *LogDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogDriver{tracker: newTracker(rect), logger: logger.Named("pointer")}
}

func (d *LogDriver) Apply(e mapping.Emission) error {
	switch e.Kind {
	case mapping.EmitNone:
		return nil
	case mapping.EmitMoveAbsolute, mapping.EmitMoveRelative:
		d.set(e.X, e.Y)
		d.logger.Debug("move", zap.Stringer("kind", e.Kind), zap.Int("x", e.X), zap.Int("y", e.Y))
	case mapping.EmitPress, mapping.EmitRelease:
		d.logger.Debug("button", zap.Stringer("kind", e.Kind), zap.Stringer("button", e.Button))
	case mapping.EmitScroll:
		d.logger.Debug("scroll", zap.Float64("notches", e.Scroll))
	}
	return nil
}

func (d *LogDriver) Close() error { return nil }
