package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDelta(t *testing.T) {
	tests := []struct {
		name        string
		beta, gamma float64
		dx, dy      float64
	}{
		{"inside dead zone", 1.0, 1.0, 0, 0},
		{"on dead zone edge", 2.0, -2.0, 0, 0},
		{"roll right", 0, 5.0, 10.5, 0},
		{"roll left", 0, -5.0, -10.5, 0},
		{"tilt forward moves up", 4.0, 0, 0, -7},
		{"tilt back moves down", -4.0, 0, 0, 7},
		{"both axes", 3.0, -12.0, -35, -3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := RelativeDelta(tt.beta, tt.gamma)
			assert.InDelta(t, tt.dx, dx, 1e-9)
			assert.InDelta(t, tt.dy, dy, 1e-9)
		})
	}
}
