package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		in      string
		want    Rect
		wantErr bool
	}{
		{in: "1920x1080+0+0", want: Rect{0, 0, 1920, 1080}},
		{in: " 2560x1440+1920+0 ", want: Rect{1920, 0, 2560, 1440}},
		{in: "1280x1024-1280+0", want: Rect{-1280, 0, 1280, 1024}},
		{in: "1280x1024+0-1024", want: Rect{0, -1024, 1280, 1024}},
		{in: "1920x1080", wantErr: true},
		{in: "x1080+0+0", wantErr: true},
		{in: "0x1080+0+0", wantErr: true},
		{in: "axb+0+0", wantErr: true},
		{in: "1920x1080+0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGeometry(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoundingBox(t *testing.T) {
	box, err := BoundingBox([]Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: -1280, Y: 200, Width: 1280, Height: 1024},
		{X: 1920, Y: -100, Width: 1080, Height: 1920},
	})
	require.NoError(t, err)
	assert.Equal(t, Rect{X: -1280, Y: -100, Width: 4280, Height: 1920}, box)

	_, err = BoundingBox(nil)
	assert.ErrorIs(t, err, ErrEmptyRect)
}

func TestDetect(t *testing.T) {
	r, err := Detect("")
	require.NoError(t, err)
	assert.Equal(t, Fallback, r)

	r, err = Detect("1920x1080+0+0,1920x1080+1920+0")
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 3840, Height: 1080}, r)

	r, err = Detect("garbage")
	assert.Error(t, err)
	assert.Equal(t, Fallback, r)
}

func TestClamp(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: 200, Height: 100}
	assert.Equal(t, 100.0, r.ClampX(-5))
	assert.Equal(t, 299.0, r.ClampX(300))
	assert.Equal(t, 150.5, r.ClampX(150.5))
	assert.Equal(t, 50.0, r.ClampY(0))
	assert.Equal(t, 149.0, r.ClampY(1e9))
	assert.True(t, r.Contains(299, 149))
	assert.False(t, r.Contains(300, 149))

	x, y := r.Center()
	assert.Equal(t, 200, x)
	assert.Equal(t, 100, y)
}
