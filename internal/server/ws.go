package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// wsEvent is the wire form of a registry change pushed to editor clients.
type wsEvent struct {
	Type      string    `json:"type"`
	Component string    `json:"component"`
	FilePath  string    `json:"filePath,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// handleWebSocket upgrades the connection and streams registry events until
// the client disconnects or the server shuts down.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Server.AllowedOrigins,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	events := s.registry.Watch()
	defer s.registry.UnWatch(events)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: clients send nothing meaningful, but reading is how
	// we learn about disconnects.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			msg := wsEvent{
				Type:      string(event.Type),
				Timestamp: event.Timestamp,
			}
			if event.Component != nil {
				msg.Component = event.Component.Name
				msg.FilePath = event.Component.FilePath
			}
			writeCtx, done := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, msg)
			done()
			if err != nil {
				return
			}
		}
	}
}
