// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock orientation source that sweeps a phone
// slowly across a +-20° heading window and a +-15° tilt window, the
// same window a typical corner calibration produces. Acceleration stays
// at rest gravity with a small periodic shake.
func NewMockSource() Source {
	return &mockSource{start: time.Now(), now: time.Now}
}

func (m *mockSource) Next() (Sample, error) {
	elapsed := m.now().Sub(m.start).Seconds()

	shake := 0.0
	// one short shake every ~5s so the jitter path gets exercised
	if math.Mod(elapsed, 5) < 0.3 {
		shake = 4 * math.Sin(elapsed*40)
	}

	return Sample{
		Beta:  15 * math.Cos(elapsed*0.7),
		Alpha: math.Mod(360+20*math.Sin(elapsed), 360),
		Gamma: 6 * math.Sin(elapsed*0.5),
		Accel: &Acceleration{
			X: shake,
			Y: 0,
			Z: StandardGravity,
		},
	}, nil
}
