// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package mapping turns phone orientation samples into desktop cursor
// intents.
//
// A Session owns everything one connected device needs: the pointing
// mode, the corner calibration, the smoothing filter state and the last
// emitted (fractional) cursor position. Session.Handle consumes one
// decoded Command and returns at most one Emission; it never touches the
// OS pointer itself. The pointer package applies emissions.
//
// Sessions are not safe for concurrent use. The transport feeds each
// session from a single read loop.
package mapping
