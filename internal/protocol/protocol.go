// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package protocol decodes phone client messages into mapping commands
// and encodes emissions for telemetry.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wire action names.
const (
	ActionCalibratePoint     = "calibrate_point"
	ActionResetCalibration   = "reset_calibration"
	ActionModeChange         = "mode_change"
	ActionSetJitterReduction = "set_jitter_reduction"
	ActionSetSmoothing       = "set_smoothing"
	ActionGyroMove           = "gyro_move"
	ActionMousePress         = "mouse_press"
	ActionMouseRelease       = "mouse_release"
	ActionScrollGesture      = "scroll_gesture"
)

// message is the union of every field any action uses. Pointers tell a
// missing field apart from a zero value.
type message struct {
	Action  string      `json:"action"`
	Point   *string     `json:"point"`
	Beta    *float64    `json:"b"`
	Alpha   *float64    `json:"a"`
	Gamma   *float64    `json:"g"`
	AccelX  *float64    `json:"accel_x"`
	AccelY  *float64    `json:"accel_y"`
	AccelZ  *float64    `json:"accel_z"`
	Mode    *string     `json:"mode"`
	Enabled *bool       `json:"enabled"`
	Value   interface{} `json:"value"`
	Button  *string     `json:"button"`
	Delta   *float64    `json:"delta"`
}

// Decode parses one client message. Errors wrap ErrMalformed or
// ErrUnknownAction.
func Decode(data []byte) (mapping.Command, error) {
	var m message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch m.Action {
	case ActionCalibratePoint:
		if m.Point == nil || m.Beta == nil || m.Alpha == nil {
			return nil, missing(m.Action, "point, b and a")
		}
		return mapping.CalibratePoint{Point: *m.Point, Beta: *m.Beta, Alpha: *m.Alpha}, nil

	case ActionResetCalibration:
		return mapping.ResetCalibration{}, nil

	case ActionModeChange:
		mode := mapping.ModeAbsolute
		if m.Mode != nil {
			mode = mapping.ParseMode(*m.Mode)
		}
		return mapping.ChangeMode{Mode: mode}, nil

	case ActionSetJitterReduction:
		enabled := true
		if m.Enabled != nil {
			enabled = *m.Enabled
		}
		return mapping.SetJitterReduction{Enabled: enabled}, nil

	case ActionSetSmoothing:
		v, err := number(m.Value, mapping.DefaultSmoothing)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value: %v", ErrMalformed, m.Action, err)
		}
		return mapping.SetSmoothing{Value: v}, nil

	case ActionGyroMove:
		// a and g are optional: each mode needs only one of them
		if m.Beta == nil {
			return nil, missing(m.Action, "b")
		}
		mv := mapping.Move{Sample: orientation.Sample{Beta: *m.Beta}}
		if m.Alpha != nil {
			mv.Sample.Alpha = *m.Alpha
		} else {
			mv.Missing |= mapping.AxisAlpha
		}
		if m.Gamma != nil {
			mv.Sample.Gamma = *m.Gamma
		} else {
			mv.Missing |= mapping.AxisGamma
		}
		if m.AccelX != nil && m.AccelY != nil && m.AccelZ != nil {
			mv.Sample.Accel = &orientation.Acceleration{X: *m.AccelX, Y: *m.AccelY, Z: *m.AccelZ}
		}
		return mv, nil

	case ActionMousePress, ActionMouseRelease:
		if m.Button == nil {
			return nil, missing(m.Action, "button")
		}
		b := mapping.ParseButton(*m.Button)
		if m.Action == ActionMousePress {
			return mapping.Press{Button: b}, nil
		}
		return mapping.Release{Button: b}, nil

	case ActionScrollGesture:
		if m.Delta == nil {
			return nil, missing(m.Action, "delta")
		}
		return mapping.Scroll{Delta: *m.Delta}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, m.Action)
}

func missing(action, fields string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMalformed, action, fields)
}

// number accepts a JSON number or a numeric string; the web client
// sends slider values either way. nil yields def.
func number(v interface{}, def float64) (float64, error) {
	switch n := v.(type) {
	case nil:
		return def, nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// Emission is the telemetry record published for every non-empty
// emission.
type Emission struct {
	Conn   string               `json:"conn"`
	Kind   mapping.EmissionKind `json:"kind"`
	X      int                  `json:"x"`
	Y      int                  `json:"y"`
	Button string               `json:"button,omitempty"`
	Amount float64              `json:"amount,omitempty"`
}

// NewEmission builds the telemetry record for e.
func NewEmission(conn string, e mapping.Emission) Emission {
	out := Emission{Conn: conn, Kind: e.Kind}
	switch e.Kind {
	case mapping.EmitMoveAbsolute, mapping.EmitMoveRelative:
		out.X, out.Y = e.X, e.Y
	case mapping.EmitPress, mapping.EmitRelease:
		out.Button = e.Button.String()
	case mapping.EmitScroll:
		out.Amount = e.Scroll
	}
	return out
}

// EncodeEmission marshals the telemetry record for e.
func EncodeEmission(conn string, e mapping.Emission) ([]byte, error) {
	return json.Marshal(NewEmission(conn, e))
}

// DecodeEmission parses a telemetry record.
func DecodeEmission(data []byte) (Emission, error) {
	var out Emission
	if err := json.Unmarshal(data, &out); err != nil {
		return Emission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
