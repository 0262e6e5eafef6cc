// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package screen describes the desktop rectangle the pointer is mapped onto.
package screen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rect is a screen region in desktop pixels. Origin may be negative on
// multi-monitor setups where a display sits left of or above the primary.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Fallback is used when no monitor geometry is known.
var Fallback = Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

var ErrEmptyRect = errors.New("screen: rectangle has no area")

// Valid reports whether r has a positive area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Right is the x coordinate one past the last column.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom is the y coordinate one past the last row.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the middle pixel of r.
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ClampX limits x to the inclusive pixel range [X, X+Width-1].
func (r Rect) ClampX(x float64) float64 {
	return clamp(x, float64(r.X), float64(r.Right()-1))
}

// ClampY limits y to the inclusive pixel range [Y, Y+Height-1].
func (r Rect) ClampY(y float64) float64 {
	return clamp(y, float64(r.Y), float64(r.Bottom()-1))
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseGeometry parses an X11 style geometry string "WxH+X+Y". Offsets
// may be negative ("1280x1024-1280+0").
func ParseGeometry(s string) (Rect, error) {
	s = strings.TrimSpace(s)
	xi := strings.IndexByte(s, 'x')
	if xi <= 0 {
		return Rect{}, fmt.Errorf("invalid geometry %q: missing WxH", s)
	}
	rest := s[xi+1:]
	off := strings.IndexAny(rest, "+-")
	if off <= 0 {
		return Rect{}, fmt.Errorf("invalid geometry %q: missing offsets", s)
	}
	w, err := strconv.Atoi(s[:xi])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid geometry width %q: %w", s, err)
	}
	h, err := strconv.Atoi(rest[:off])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid geometry height %q: %w", s, err)
	}

	offsets := rest[off:]
	second := strings.IndexAny(offsets[1:], "+-")
	if second < 0 {
		return Rect{}, fmt.Errorf("invalid geometry %q: missing y offset", s)
	}
	second++
	x, err := strconv.Atoi(offsets[:second])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid geometry x offset %q: %w", s, err)
	}
	y, err := strconv.Atoi(offsets[second:])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid geometry y offset %q: %w", s, err)
	}

	r := Rect{X: x, Y: y, Width: w, Height: h}
	if !r.Valid() {
		return Rect{}, fmt.Errorf("geometry %q: %w", s, ErrEmptyRect)
	}
	return r, nil
}

// BoundingBox returns the smallest rectangle covering every monitor,
// i.e. the virtual desktop.
func BoundingBox(monitors []Rect) (Rect, error) {
	if len(monitors) == 0 {
		return Rect{}, ErrEmptyRect
	}
	minX, minY := monitors[0].X, monitors[0].Y
	maxX, maxY := monitors[0].Right(), monitors[0].Bottom()
	for _, m := range monitors[1:] {
		minX = min(minX, m.X)
		minY = min(minY, m.Y)
		maxX = max(maxX, m.Right())
		maxY = max(maxY, m.Bottom())
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, nil
}

// Detect resolves the virtual desktop from a comma separated list of
// monitor geometries. An empty or unparsable list yields Fallback and
// the parse error, so callers can log it and carry on.
func Detect(monitors string) (Rect, error) {
	if strings.TrimSpace(monitors) == "" {
		return Fallback, nil
	}
	var rects []Rect
	for _, part := range strings.Split(monitors, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseGeometry(part)
		if err != nil {
			return Fallback, err
		}
		rects = append(rects, r)
	}
	box, err := BoundingBox(rects)
	if err != nil {
		return Fallback, err
	}
	return box, nil
}
