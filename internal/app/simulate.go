// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/orientation"
	"github.com/relabs-tech/gyro_pointer/internal/protocol"
)

const simulatorID = "simulator"

// simulatorCalibration covers the mock source window: heading 20°..340°
// across the 0/360 seam, tilt +15° at the top and -15° at the bottom.
var simulatorCalibration = []mapping.CalibratePoint{
	{Point: mapping.PointTopLeft, Beta: 15, Alpha: 20},
	{Point: mapping.PointTopRight, Beta: 15, Alpha: 340},
	{Point: mapping.PointBottomLeft, Beta: -15, Alpha: 20},
	{Point: mapping.PointBottomRight, Beta: -15, Alpha: 340},
	{Point: mapping.PointCenter, Beta: 0, Alpha: 0},
}

// SimulateOptions configures RunSimulate.
type SimulateOptions struct {
	Interval time.Duration
	Mode     mapping.Mode
	// Count stops after that many samples; 0 runs until ctx is done.
	Count int
}

// RunSimulate drives one session from src as if a phone were connected,
// printing every emission to out.
func RunSimulate(ctx context.Context, engine *Engine, src orientation.Source, opts SimulateOptions, out io.Writer) error {
	if opts.Interval <= 0 {
		return fmt.Errorf("simulate: interval must be positive, got %s", opts.Interval)
	}

	engine.Open(simulatorID)
	defer engine.Close(simulatorID)

	for _, p := range simulatorCalibration {
		engine.Apply(simulatorID, p)
	}
	engine.Apply(simulatorID, mapping.ChangeMode{Mode: opts.Mode})

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for n := 0; opts.Count == 0 || n < opts.Count; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		sample, err := src.Next()
		if err != nil {
			return fmt.Errorf("simulate: orientation source: %w", err)
		}
		em := engine.Apply(simulatorID, mapping.Move{Sample: sample})
		if em.None() {
			continue
		}
		fmt.Fprintln(out, formatEmission(protocol.NewEmission(simulatorID, em)))
	}
	return nil
}
