package server

import (
	"context"
	"log"
	"net/http"

	"gridboard/internal/live"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// handleLive upgrades the connection and subscribes it to leaderboard
// refresh broadcasts until the client disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[Live] accept: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	client := &live.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	s.Hub.Register(client)
	defer s.Hub.Unregister(client.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Subscribers only listen; drain reads to notice disconnects.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	client.WritePump(ctx)
}
