package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	wsPongWait   = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The service binds to loopback; adapters on the same machine connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWatch streams session snapshots over a websocket: one frame on
// connect, then one after every committed move. Animation pacing is the
// client's concern; the stream only reports authoritative state.
// GET /v1/sessions/{id}/watch
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	h, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("watch_upgrade_failed path=%s err=%v", r.URL.Path, err)
		return
	}
	defer conn.Close()

	frames, cancel := h.watch()
	defer cancel()

	// Read side exists only to notice the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writeFrame := func(v any) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v)
	}

	if err := writeFrame(h.Snapshot()); err != nil {
		return
	}

	pings := time.NewTicker(wsPingPeriod)
	defer pings.Stop()
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case snap := <-frames:
			if err := writeFrame(snap); err != nil {
				return
			}
		case <-pings.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
