package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

func newTestViewer(hub *Hub, sessionID string) *viewer {
	return &viewer{
		hub:     hub,
		session: strings.ToLower(sessionID),
		outbox:  make(chan []byte, engine.WebSocketBufferSize),
	}
}

func startState(t *testing.T) *engine.GameState {
	t.Helper()
	state, err := engine.InitGameStateFromConfig(nil)
	if err != nil {
		t.Fatalf("InitGameStateFromConfig: %v", err)
	}
	return state
}

func solvedState(t *testing.T) *engine.GameState {
	t.Helper()
	eng := engine.NewEngineWithDefaults()
	rotation := 3
	if ok, err := eng.Rotate(1, &rotation); err != nil || !ok {
		t.Fatalf("Rotate: ok=%v err=%v", ok, err)
	}
	return eng.Snapshot()
}

func decodeUpdate(t *testing.T, data []byte) Update {
	t.Helper()
	var update Update
	if err := json.Unmarshal(data, &update); err != nil {
		t.Fatalf("Failed to unmarshal update: %v", err)
	}
	return update
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestHub_AddIsCaseInsensitive(t *testing.T) {
	hub := NewHub()
	v := newTestViewer(hub, "Test-Session")

	hub.add(v)

	if hub.ClientCount("TEST-session") != 1 {
		t.Errorf("Expected 1 viewer, got %d", hub.ClientCount("TEST-session"))
	}
	if _, ok := hub.rooms["test-session"][v]; !ok {
		t.Error("Viewer was not stored under the lower-cased session ID")
	}
}

func TestHub_RemoveClosesOutbox(t *testing.T) {
	hub := NewHub()
	first := newTestViewer(hub, "room")
	second := newTestViewer(hub, "room")
	hub.add(first)
	hub.add(second)

	hub.remove(first)
	if hub.ClientCount("room") != 1 {
		t.Errorf("Expected 1 viewer left, got %d", hub.ClientCount("room"))
	}
	if _, ok := <-first.outbox; ok {
		t.Error("Expected outbox to be closed")
	}
	hub.remove(first) // no-op

	hub.remove(second)
	if _, exists := hub.rooms["room"]; exists {
		t.Error("Empty room should be deleted")
	}
}

func TestHub_BroadcastEvents(t *testing.T) {
	tests := []struct {
		name       string
		state      func(*testing.T) *engine.GameState
		event      string
		layout     string
		valid      bool
		violations int
	}{
		{"unsolved grid", startState, EventStateUpdate, "B0 B0 .", false, 2},
		{"solved grid", solvedState, EventSolved, "B0 B3 .", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub()
			v := newTestViewer(hub, "game")
			other := newTestViewer(hub, "other")
			hub.add(v)
			hub.add(other)

			hub.BroadcastToSession("GAME", tt.state(t))

			select {
			case data := <-v.outbox:
				update := decodeUpdate(t, data)
				if update.Event != tt.event {
					t.Errorf("Expected event %s, got %s", tt.event, update.Event)
				}
				if update.Layout[0] != tt.layout || update.Valid != tt.valid || update.Violations != tt.violations {
					t.Errorf("Unexpected summary %q valid=%v violations=%d", update.Layout[0], update.Valid, update.Violations)
				}
				if update.GameState == nil || update.GameState.Layout[0] != tt.layout {
					t.Errorf("GameState not transmitted: %+v", update.GameState)
				}
			default:
				t.Fatal("No update queued")
			}

			select {
			case <-other.outbox:
				t.Error("Viewers of other sessions must not receive the update")
			default:
			}
		})
	}
}

func TestHub_BroadcastDropsSlowViewer(t *testing.T) {
	hub := NewHub()
	slow := &viewer{hub: hub, session: "slow", outbox: make(chan []byte)}
	hub.add(slow)

	hub.BroadcastToSession("slow", startState(t))

	if hub.ClientCount("slow") != 0 {
		t.Error("Expected the blocked viewer to be dropped")
	}
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	v := newTestViewer(hub, "closing")
	hub.join <- v
	waitFor(t, func() bool { return hub.ClientCount("closing") == 1 })

	hub.Close()
	hub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	if _, ok := <-v.outbox; ok {
		t.Error("Expected outbox to be closed on shutdown")
	}
	if hub.ClientCount("closing") != 0 {
		t.Error("Expected no viewers after Close")
	}
}

func TestWebSocket_SnapshotThenUpdates(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"), startState(t))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	read := func() Update {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		return decodeUpdate(t, data)
	}

	if first := read(); first.Event != EventSnapshot || first.SessionID != "ws-test" || first.Valid {
		t.Errorf("Expected an unsolved snapshot first, got %+v", first)
	}

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 1 })
	hub.BroadcastToSession("ws-test", solvedState(t))

	if next := read(); next.Event != EventSolved || !next.Valid {
		t.Errorf("Expected a solved update, got %+v", next)
	}

	conn.Close()
	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 0 })
}
