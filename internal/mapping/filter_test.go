package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

func TestFilterCoefficient(t *testing.T) {
	shaken := &orientation.Acceleration{X: 0, Y: 0, Z: 20}
	still := &orientation.Acceleration{X: 0.3, Y: 0.2, Z: 9.7}

	tests := []struct {
		name   string
		filter Filter
		accel  *orientation.Acceleration
		want   float64
	}{
		{"shaken forces heavy smoothing", Filter{JitterReduction: true, Smoothing: 0.8}, shaken, JitterSmoothing},
		{"still keeps configured", Filter{JitterReduction: true, Smoothing: 0.8}, still, 0.8},
		{"missing accel keeps configured", Filter{JitterReduction: true, Smoothing: 0.4}, nil, 0.4},
		{"disabled ignores shake", Filter{JitterReduction: false, Smoothing: 0.6}, shaken, 0.6},
		{"just under threshold", Filter{JitterReduction: true, Smoothing: 0.5}, &orientation.Acceleration{Z: 9.8 + 1.4}, 0.5},
		{"just over threshold", Filter{JitterReduction: true, Smoothing: 0.5}, &orientation.Acceleration{Z: 9.8 - 1.6}, JitterSmoothing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Coefficient(tt.accel))
		})
	}
}

func TestBlend(t *testing.T) {
	got := Blend(Position{X: 100, Y: 200}, Position{X: 0, Y: 0}, 0.25)
	assert.Equal(t, Position{X: 25, Y: 50}, got)

	got = Blend(Position{X: 100, Y: 200}, Position{X: 7, Y: 9}, 1)
	assert.Equal(t, Position{X: 100, Y: 200}, got)
}

func TestBlendConverges(t *testing.T) {
	target := Position{X: 1234.5, Y: 321.25}
	last := Position{X: 0, Y: 1000}
	for i := 0; i < 500; i++ {
		last = Blend(target, last, DefaultSmoothing)
	}
	assert.InDelta(t, target.X, last.X, 1e-6)
	assert.InDelta(t, target.Y, last.Y, 1e-6)
}

func TestNormalizeSmoothing(t *testing.T) {
	v, err := normalizeSmoothing(0.4)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)

	v, err = normalizeSmoothing(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = normalizeSmoothing(0)
	require.NoError(t, err)
	assert.Equal(t, MinSmoothing, v)

	_, err = normalizeSmoothing(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidSmoothing)
	_, err = normalizeSmoothing(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidSmoothing)
}
