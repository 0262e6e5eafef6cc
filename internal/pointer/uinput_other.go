//go:build !linux

package pointer

import (
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// NewUinput is only available on Linux.
func NewUinput(screen.Rect, *zap.Logger) (Driver, error) {
	return nil, ErrUnsupported
}
