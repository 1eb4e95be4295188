package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tuber/internal/state"
)

type staticIdentity struct {
	user, device string
}

func (s staticIdentity) UserID() string   { return s.user }
func (s staticIdentity) DeviceID() string { return s.device }

func TestWsURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/ws"},
		{"https://vid.example.com", "wss://vid.example.com/ws"},
		{"http://localhost:8000/", "ws://localhost:8000/ws"},
	}
	for _, tt := range tests {
		if got := wsURL(tt.in); got != tt.want {
			t.Fatalf("wsURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClient_SendsJoinFrameAndReportsConnected(t *testing.T) {
	joins := make(chan joinFrame, 1)
	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame joinFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			return
		}
		joins <- frame

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	store := &state.Store{}
	client := New(ts.URL, staticIdentity{user: "u1", device: "d1"}, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	select {
	case frame := <-joins:
		if frame.Event != "join" {
			t.Fatalf("frame.Event = %q, want join", frame.Event)
		}
		if frame.UserID != "u1" || frame.DeviceID != "d1" {
			t.Fatalf("frame ids = %q/%q, want u1/d1", frame.UserID, frame.DeviceID)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for join frame")
	}

	deadline := time.Now().Add(3 * time.Second)
	for !store.Snapshot().SocketConnected {
		if time.Now().After(deadline) {
			t.Fatal("SocketConnected never became true")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	deadline = time.Now().Add(3 * time.Second)
	for store.Snapshot().SocketConnected {
		if time.Now().After(deadline) {
			t.Fatal("SocketConnected never reset after cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
