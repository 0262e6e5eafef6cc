// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
)

// StandardGravity is the magnitude of the acceleration vector of a
// device at rest, in m/s².
const StandardGravity = 9.8

// Acceleration is a 3-axis accelerometer reading in m/s², gravity included.
type Acceleration struct {
	X float64 `json:"accel_x"`
	Y float64 `json:"accel_y"`
	Z float64 `json:"accel_z"`
}

// Magnitude returns the length of the acceleration vector.
func (a Acceleration) Magnitude() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// GravityDeviation returns how far the measured magnitude is from
// standard gravity. A phone held still reads close to zero.
func (a Acceleration) GravityDeviation() float64 {
	return math.Abs(a.Magnitude() - StandardGravity)
}

// Sample is one orientation reading from the phone, in degrees.
//
//	Beta  = tilt (front/back)
//	Alpha = heading (0..360)
//	Gamma = roll (left/right)
//
// Accel is nil when the device did not report acceleration.
type Sample struct {
	Beta  float64       `json:"b"`
	Alpha float64       `json:"a"`
	Gamma float64       `json:"g"`
	Accel *Acceleration `json:"accel,omitempty"`
}

// Source is anything that can provide samples over time: the mock
// source, a replay file, etc.
type Source interface {
	Next() (Sample, error)
}
