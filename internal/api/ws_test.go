package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pfranke/highlow/internal/game"
)

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func readSnapshot(t *testing.T, conn *websocket.Conn) game.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot frame: %v", err)
	}
	return snap
}

func TestWatchStreamsSnapshots(t *testing.T) {
	s := newTestServer(4)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	res := createSession(t, srv.Config.Handler, 77)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/v1/sessions/"+res.SessionID+"/watch"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// First frame is the state as of connect.
	initial := readSnapshot(t, conn)
	if initial.DrawRemaining != 43 {
		t.Fatalf("initial frame has %d cards in the pile, want 43", initial.DrawRemaining)
	}

	// A committed move produces the next frame.
	ref := initial.Stacks[0][0].Cards[0]
	w := doJSON(t, srv.Config.Handler, "POST", "/v1/sessions/"+res.SessionID+"/moves",
		MoveRequest{Row: 1, Col: 1, Prediction: "higher", Reference: ref})
	if w.Code != 200 {
		t.Fatalf("commit: status %d body %s", w.Code, w.Body)
	}

	next := readSnapshot(t, conn)
	if next.DrawRemaining != 42 {
		t.Errorf("post-commit frame has %d cards in the pile, want 42", next.DrawRemaining)
	}
	if len(next.SeenCards) != len(initial.SeenCards)+1 {
		t.Errorf("seen ledger did not grow: %d -> %d", len(initial.SeenCards), len(next.SeenCards))
	}
}

func TestWatchUnknownSession(t *testing.T) {
	s := newTestServer(4)
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/v1/sessions/5a0c9f3e-88cf-4a5e-97b4-2f1f6f6de0aa/watch"), nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Errorf("expected 404 handshake response, got %+v", resp)
	}
}
