// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package pointer applies mapping emissions to a real or logged cursor.
package pointer

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// ErrUnsupported is returned by drivers that cannot run on this platform.
var ErrUnsupported = errors.New("pointer: driver not supported on this platform")

// Driver moves the OS pointer. Implementations are safe for concurrent
// use: several device sessions may share one driver.
type Driver interface {
	mapping.CursorLocator
	Apply(e mapping.Emission) error
	Close() error
}

// New returns the driver named by kind ("uinput" or "log") for rect.
func New(kind string, rect screen.Rect, logger *zap.Logger) (Driver, error) {
	switch kind {
	case "uinput":
		return NewUinput(rect, logger)
	case "log":
		return NewLog(rect, logger), nil
	}
	return nil, fmt.Errorf("pointer: unknown driver %q", kind)
}

// tracker remembers the last pixel written, since most injection APIs
// cannot read the cursor back.
type tracker struct {
	mu   sync.Mutex
	x, y int
}

func newTracker(rect screen.Rect) *tracker {
	x, y := rect.Center()
	return &tracker{x: x, y: y}
}

func (t *tracker) Position() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.x, t.y
}

func (t *tracker) set(x, y int) {
	t.mu.Lock()
	t.x, t.y = x, y
	t.mu.Unlock()
}
