// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/pointer"
	"github.com/relabs-tech/gyro_pointer/internal/protocol"
	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// Registry holds one mapping session per live connection. Every command
// is routed to its session through the registry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*mapping.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*mapping.Session)}
}

func (r *Registry) add(s *mapping.Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get returns the session for a connection id.
func (r *Registry) Get(id string) (*mapping.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Engine connects transports to sessions and sessions to the pointer.
// Every transport connection gets its own session; the pointer driver and
// the telemetry publisher are shared.
type Engine struct {
	screen    screen.Rect
	driver    pointer.Driver
	publisher Publisher
	smoothing float64
	sessions  *Registry
	conns     sync.Map // *websocket.Conn set
	handlers  sync.WaitGroup
	logger    *zap.Logger
}

// NewEngine builds an engine. driver is required; publisher may be nil.
func NewEngine(rect screen.Rect, driver pointer.Driver, publisher Publisher, smoothing float64, logger *zap.Logger) *Engine {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		screen:    rect,
		driver:    driver,
		publisher: publisher,
		smoothing: smoothing,
		sessions:  NewRegistry(),
		logger:    logger,
	}
}

// Sessions exposes the live session registry.
func (e *Engine) Sessions() *Registry { return e.sessions }

// Open creates and registers a fresh session for connection id.
func (e *Engine) Open(id string) *mapping.Session {
	s := mapping.NewSession(id, e.screen, e.driver, e.logger.Named("session"))
	if err := s.SetSmoothingFactor(e.smoothing); err != nil {
		e.logger.Warn("invalid default smoothing, keeping built-in", zap.Float64("smoothing", e.smoothing), zap.Error(err))
	}
	e.sessions.add(s)
	return s
}

// Close discards the session for connection id.
func (e *Engine) Close(id string) {
	e.sessions.remove(id)
}

// Dispatch decodes one raw client message and applies it to the session
// of connection id. Malformed and unknown messages are logged and dropped.
func (e *Engine) Dispatch(id string, payload []byte) mapping.Emission {
	cmd, err := protocol.Decode(payload)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownAction) {
			e.logger.Debug("ignoring message", zap.String("conn", id), zap.Error(err))
		} else {
			e.logger.Warn("dropping message", zap.String("conn", id), zap.Error(err))
		}
		return mapping.Emission{}
	}
	return e.Apply(id, cmd)
}

// Apply runs cmd through the session of connection id and hands any
// emission to the pointer driver and the telemetry publisher. Commands
// for a connection without a session are dropped.
func (e *Engine) Apply(id string, cmd mapping.Command) mapping.Emission {
	s, ok := e.sessions.Get(id)
	if !ok {
		e.logger.Warn("no session for connection", zap.String("conn", id))
		return mapping.Emission{}
	}
	em := s.Handle(cmd)
	if em.None() {
		return em
	}
	if err := e.driver.Apply(em); err != nil {
		e.logger.Warn("pointer apply failed", zap.String("conn", id), zap.Stringer("kind", em.Kind), zap.Error(err))
	}
	e.publisher.Publish(id, em)
	return em
}
