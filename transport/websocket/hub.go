package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plan-systems/klog"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must stay below pongWait
	maxInboundSize = 512
)

// Update events
const (
	EventSnapshot    = "snapshot"     // sent once when a viewer connects
	EventStateUpdate = "state_update" // a move or reset changed the grid
	EventSolved      = "solved"       // the grid now passes validation
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Update is the frame pushed to viewers. Layout, Valid and Violations
// summarise GameState so that simple viewers need not decode the network.
type Update struct {
	SessionID  string            `json:"session_id"`
	Event      string            `json:"event"`
	Layout     []string          `json:"layout"`
	Valid      bool              `json:"valid"`
	Violations int               `json:"violations"`
	GameState  *engine.GameState `json:"game_state"`
}

func newUpdate(sessionID, event string, state *engine.GameState) Update {
	return Update{
		SessionID:  sessionID,
		Event:      event,
		Layout:     state.Layout,
		Valid:      state.Valid,
		Violations: len(state.Violations),
		GameState:  state,
	}
}

// viewer is one WebSocket connection watching a session.
type viewer struct {
	hub     *Hub
	conn    *websocket.Conn
	outbox  chan []byte
	session string // lower-cased session ID
}

// Hub fans puzzle updates out to the viewers of each session. Joins and
// leaves are serialised through Run; publishing reads the room map under mu.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*viewer]struct{}

	join  chan *viewer
	leave chan *viewer
	done  chan struct{}
	once  sync.Once
}

// NewHub creates a hub. Start it with go hub.Run().
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*viewer]struct{}),
		join:  make(chan *viewer),
		leave: make(chan *viewer),
		done:  make(chan struct{}),
	}
}

// Run processes joins and leaves until Close is called, then disconnects
// every viewer.
func (h *Hub) Run() {
	for {
		select {
		case v := <-h.join:
			h.add(v)
		case v := <-h.leave:
			h.remove(v)
		case <-h.done:
			h.mu.Lock()
			for _, room := range h.rooms {
				for v := range room {
					h.dropLocked(v)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close stops Run. It is safe to call more than once.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}

// ServeWS upgrades the request and attaches the connection to a session.
// When initial is not nil the viewer receives it first as a snapshot.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial *engine.GameState) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		klog.Warningf("WebSocket upgrade failed: %v", err)
		return
	}

	v := &viewer{
		hub:     h,
		conn:    conn,
		outbox:  make(chan []byte, engine.WebSocketBufferSize),
		session: strings.ToLower(sessionID),
	}
	if initial != nil {
		if data, err := json.Marshal(newUpdate(sessionID, EventSnapshot, initial)); err == nil {
			v.outbox <- data
		}
	}

	select {
	case h.join <- v:
	case <-h.done:
		conn.Close()
		return
	}

	go v.writeLoop()
	go v.readLoop()
}

// BroadcastToSession pushes a state to every viewer of the session. A
// valid state is announced as solved. Viewers that cannot keep up are
// disconnected.
func (h *Hub) BroadcastToSession(sessionID string, state *engine.GameState) {
	event := EventStateUpdate
	if state.Valid {
		event = EventSolved
	}
	data, err := json.Marshal(newUpdate(sessionID, event, state))
	if err != nil {
		klog.Errorf("Failed to marshal %s update for session %s: %v", event, sessionID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.rooms[strings.ToLower(sessionID)] {
		select {
		case v.outbox <- data:
		default:
			klog.Warningf("Viewer of session %s is too slow, disconnecting", sessionID)
			h.dropLocked(v)
		}
	}
}

// ClientCount returns the number of viewers of a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[strings.ToLower(sessionID)])
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[v.session]
	if room == nil {
		room = make(map[*viewer]struct{})
		h.rooms[v.session] = room
	}
	room[v] = struct{}{}
	klog.Infof("[WS] viewer joined session=%s viewers=%d", v.session, len(room))
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(v)
}

// dropLocked detaches v and closes its outbox. Callers hold mu.
func (h *Hub) dropLocked(v *viewer) {
	room := h.rooms[v.session]
	if _, ok := room[v]; !ok {
		return
	}
	delete(room, v)
	close(v.outbox)
	if len(room) == 0 {
		delete(h.rooms, v.session)
	}
	klog.Infof("[WS] viewer left session=%s viewers=%d", v.session, len(room))
}

// readLoop discards inbound frames; it exists to answer pings and notice
// disconnects.
func (v *viewer) readLoop() {
	defer func() {
		select {
		case v.hub.leave <- v:
		case <-v.hub.done:
		}
		v.conn.Close()
	}()

	v.conn.SetReadLimit(maxInboundSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				klog.Warningf("WebSocket read error on session %s: %v", v.session, err)
			}
			return
		}
	}
}

func (v *viewer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case data, ok := <-v.outbox:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
