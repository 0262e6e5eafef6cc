// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxMessageSize caps a single client message; samples are ~150 bytes.
const maxMessageSize = 64 << 10

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the phone loads the page from the HTTP port, not this one
	},
}

// HandleWS serves one phone connection. The connection owns a fresh
// session for its whole lifetime and messages are processed strictly in
// arrival order.
func (e *Engine) HandleWS(w http.ResponseWriter, r *http.Request) {
	// counted before the upgrade, while Shutdown still tracks the request
	e.handlers.Add(1)
	defer e.handlers.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	e.conns.Store(conn, struct{}{})
	defer e.conns.Delete(conn)

	id := uuid.NewString()
	e.Open(id)
	defer e.Close(id)

	log := e.logger.With(zap.String("conn", id), zap.String("remote", r.RemoteAddr))
	log.Info("device connected")

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", zap.Error(err))
			}
			log.Info("device disconnected")
			return
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}
		e.Dispatch(id, data)
	}
}

// closeConnections closes every open websocket and waits for their
// handlers to return.
func (e *Engine) closeConnections() {
	e.conns.Range(func(key, _ any) bool {
		if conn, ok := key.(*websocket.Conn); ok {
			conn.Close()
		}
		return true
	})
	e.handlers.Wait()
}
