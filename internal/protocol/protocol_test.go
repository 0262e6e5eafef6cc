package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want mapping.Command
	}{
		{
			name: "calibrate point",
			in:   `{"action":"calibrate_point","point":"tl","b":-12.5,"a":351}`,
			want: mapping.CalibratePoint{Point: "tl", Beta: -12.5, Alpha: 351},
		},
		{
			name: "reset calibration",
			in:   `{"action":"reset_calibration"}`,
			want: mapping.ResetCalibration{},
		},
		{
			name: "mode relative",
			in:   `{"action":"mode_change","mode":"relative"}`,
			want: mapping.ChangeMode{Mode: mapping.ModeRelative},
		},
		{
			name: "mode defaults to absolute",
			in:   `{"action":"mode_change"}`,
			want: mapping.ChangeMode{Mode: mapping.ModeAbsolute},
		},
		{
			name: "jitter off",
			in:   `{"action":"set_jitter_reduction","enabled":false}`,
			want: mapping.SetJitterReduction{Enabled: false},
		},
		{
			name: "jitter defaults on",
			in:   `{"action":"set_jitter_reduction"}`,
			want: mapping.SetJitterReduction{Enabled: true},
		},
		{
			name: "smoothing number",
			in:   `{"action":"set_smoothing","value":0.4}`,
			want: mapping.SetSmoothing{Value: 0.4},
		},
		{
			name: "smoothing string",
			in:   `{"action":"set_smoothing","value":"0.35"}`,
			want: mapping.SetSmoothing{Value: 0.35},
		},
		{
			name: "smoothing default",
			in:   `{"action":"set_smoothing"}`,
			want: mapping.SetSmoothing{Value: mapping.DefaultSmoothing},
		},
		{
			name: "move with acceleration",
			in:   `{"action":"gyro_move","b":1,"a":2,"g":3,"accel_x":0.1,"accel_y":0.2,"accel_z":9.7}`,
			want: mapping.Move{Sample: orientation.Sample{
				Beta: 1, Alpha: 2, Gamma: 3,
				Accel: &orientation.Acceleration{X: 0.1, Y: 0.2, Z: 9.7},
			}},
		},
		{
			name: "move with partial acceleration drops it",
			in:   `{"action":"gyro_move","b":1,"a":2,"g":3,"accel_x":0.1,"accel_z":9.7}`,
			want: mapping.Move{Sample: orientation.Sample{Beta: 1, Alpha: 2, Gamma: 3}},
		},
		{
			name: "relative move without heading",
			in:   `{"action":"gyro_move","b":4,"g":-7}`,
			want: mapping.Move{
				Sample:  orientation.Sample{Beta: 4, Gamma: -7},
				Missing: mapping.AxisAlpha,
			},
		},
		{
			name: "absolute move without roll",
			in:   `{"action":"gyro_move","b":4,"a":350}`,
			want: mapping.Move{
				Sample:  orientation.Sample{Beta: 4, Alpha: 350},
				Missing: mapping.AxisGamma,
			},
		},
		{
			name: "move with tilt only",
			in:   `{"action":"gyro_move","b":4}`,
			want: mapping.Move{
				Sample:  orientation.Sample{Beta: 4},
				Missing: mapping.AxisAlpha | mapping.AxisGamma,
			},
		},
		{
			name: "press left",
			in:   `{"action":"mouse_press","button":"left"}`,
			want: mapping.Press{Button: mapping.ButtonLeft},
		},
		{
			name: "release unknown button is right",
			in:   `{"action":"mouse_release","button":"middle"}`,
			want: mapping.Release{Button: mapping.ButtonRight},
		},
		{
			name: "scroll",
			in:   `{"action":"scroll_gesture","delta":-14}`,
			want: mapping.Scroll{Delta: -14},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `{"action":`, ErrMalformed},
		{"wrong type", `{"action":"gyro_move","b":"up","a":1,"g":1}`, ErrMalformed},
		{"move missing tilt", `{"action":"gyro_move","a":1,"g":1}`, ErrMalformed},
		{"calibrate missing point", `{"action":"calibrate_point","b":1,"a":1}`, ErrMalformed},
		{"smoothing not numeric", `{"action":"set_smoothing","value":"smooth"}`, ErrMalformed},
		{"smoothing bool", `{"action":"set_smoothing","value":true}`, ErrMalformed},
		{"press without button", `{"action":"mouse_press"}`, ErrMalformed},
		{"scroll without delta", `{"action":"scroll_gesture"}`, ErrMalformed},
		{"unknown action", `{"action":"teleport"}`, ErrUnknownAction},
		{"no action", `{}`, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Decode([]byte(tt.in))
			assert.Nil(t, cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEmissionRecord(t *testing.T) {
	data, err := EncodeEmission("c1", mapping.Emission{Kind: mapping.EmitMoveAbsolute, X: 12, Y: 34})
	require.NoError(t, err)
	assert.JSONEq(t, `{"conn":"c1","kind":"move_absolute","x":12,"y":34}`, string(data))

	data, err = EncodeEmission("c1", mapping.Emission{Kind: mapping.EmitPress, Button: mapping.ButtonRight})
	require.NoError(t, err)
	assert.JSONEq(t, `{"conn":"c1","kind":"press","x":0,"y":0,"button":"right"}`, string(data))

	got, err := DecodeEmission([]byte(`{"conn":"c2","kind":"scroll","x":0,"y":0,"amount":-0.7}`))
	require.NoError(t, err)
	assert.Equal(t, Emission{Conn: "c2", Kind: mapping.EmitScroll, Amount: -0.7}, got)

	_, err = DecodeEmission([]byte(`{"kind":"warp"}`))
	assert.ErrorIs(t, err, ErrMalformed)
}
