package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/pathgrid/game/config"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
	"github.com/wricardo/mcp-training/pathgrid/game/service"
	"github.com/wricardo/mcp-training/pathgrid/game/session"
	"github.com/wricardo/mcp-training/pathgrid/transport/websocket"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config.NewManager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)

	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(svc, hub)
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func createSession(t *testing.T, server *Server) string {
	t.Helper()
	rr := doRequest(t, server, "POST", "/api/sessions", map[string]string{})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create session: status %d body %s", rr.Code, rr.Body.String())
	}
	var info service.SessionInfo
	decode(t, rr, &info)
	return info.ID
}

func TestServer_CreateAndGetSession(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	if len(id) != session.SessionIDLength {
		t.Errorf("Expected %d-character ID, got %q", session.SessionIDLength, id)
	}

	rr := doRequest(t, server, "GET", "/api/sessions/"+strings.ToUpper(id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var info service.SessionInfo
	decode(t, rr, &info)
	if info.GameState == nil || info.GameState.Layout[0] != "B0 B0 ." {
		t.Errorf("Unexpected state %+v", info.GameState)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing session, got %d", rr.Code)
	}

	rr = doRequest(t, server, "POST", "/api/sessions", map[string]string{"config_id": "nope"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown config, got %d", rr.Code)
	}
}

func TestServer_RotateSolvesDefaultPuzzle(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "POST", "/api/sessions/"+id+"/rotate", map[string]int{"slot": 1, "rotation": 3})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result service.MoveResult
	decode(t, rr, &result)
	if !result.Success || !result.GameState.Valid {
		t.Errorf("Expected solved puzzle, got %+v", result.GameState.Violations)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/"+id+"/validate", nil)
	var validation service.ValidationResult
	decode(t, rr, &validation)
	if !validation.Valid {
		t.Errorf("Expected valid network, got %+v", validation.Violations)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/"+id+"/network", nil)
	var network service.NetworkInfo
	decode(t, rr, &network)
	if len(network.ConnectedEntities) != 1 {
		t.Errorf("Expected one entity pair, got %v", network.ConnectedEntities)
	}
}

func TestServer_MoveErrors(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
	}{
		{"rotate without slot", "/rotate", map[string]int{}, http.StatusBadRequest},
		{"rotate slot out of range", "/rotate", map[string]int{"slot": 9}, http.StatusBadRequest},
		{"rotate bad rotation", "/rotate", map[string]int{"slot": 0, "rotation": 7}, http.StatusBadRequest},
		{"swap missing b", "/swap", map[string]int{"a": 0}, http.StatusBadRequest},
		{"swap out of range", "/swap", map[string]int{"a": 0, "b": -1}, http.StatusBadRequest},
		{"rotate empty slot is rejected not failed", "/rotate", map[string]int{"slot": 8}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, server, "POST", "/api/sessions/"+id+tt.path, tt.body)
			if rr.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}

	rr := doRequest(t, server, "POST", "/api/sessions/missing/rotate", map[string]int{"slot": 0})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing session, got %d", rr.Code)
	}
}

func TestServer_SwapResetHistory(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "POST", "/api/sessions/"+id+"/swap", map[string]int{"a": 1, "b": 4})
	if rr.Code != http.StatusOK {
		t.Fatalf("swap: %d %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "POST", "/api/sessions/"+id+"/reset", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("reset: %d", rr.Code)
	}
	var reset struct {
		State engine.GameState `json:"state"`
	}
	decode(t, rr, &reset)
	if reset.State.Layout[0] != "B0 B0 ." {
		t.Errorf("Expected start layout, got %q", reset.State.Layout)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/"+id+"/history?order=asc&limit=5", nil)
	var history service.HistoryResponse
	decode(t, rr, &history)
	if history.TotalMoves != 1 || history.Moves[0].Move.Kind != engine.MoveSwap {
		t.Errorf("Unexpected history %+v", history)
	}
}

func TestServer_Hint(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "GET", "/api/sessions/"+id+"/hint?limit=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("hint: %d", rr.Code)
	}
	var hint service.HintResult
	decode(t, rr, &hint)
	if !hint.Solvable || hint.Solutions[0].Steps != 3 {
		t.Errorf("Unexpected hint %+v", hint)
	}
}

func TestServer_Evaluate(t *testing.T) {
	server := newTestServer(t)

	rr := doRequest(t, server, "POST", "/api/evaluate", map[string][]string{
		"layout": {"B0 . .", ". . .", ". . ."},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("evaluate: %d %s", rr.Code, rr.Body.String())
	}
	var result service.EvaluateResult
	decode(t, rr, &result)
	if result.Valid || len(result.Violations) != 1 || result.Violations[0].Reason != engine.DeadEnd {
		t.Errorf("Expected one dead end, got %+v", result.Violations)
	}

	rr = doRequest(t, server, "POST", "/api/evaluate", map[string][]string{"layout": {"Z"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad layout, got %d", rr.Code)
	}
}

func TestServer_Configs(t *testing.T) {
	server := newTestServer(t)

	puzzle := engine.DefaultPuzzleConfig()
	puzzle.Name = "custom"
	rr := doRequest(t, server, "POST", "/api/configs", puzzle)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create config: %d %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "GET", "/api/configs", nil)
	var configs []service.ConfigInfo
	decode(t, rr, &configs)
	if len(configs) != 1 || configs[0].ConfigID != "custom" {
		t.Errorf("Expected the saved config, got %+v", configs)
	}

	rr = doRequest(t, server, "GET", "/api/configs/custom.json", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}

	bad := engine.DefaultPuzzleConfig()
	bad.Name = "bad"
	bad.LockedSlots = []engine.Slot{1}
	rr = doRequest(t, server, "POST", "/api/configs", bad)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unsolvable config, got %d", rr.Code)
	}
}

func TestServer_ListAndDeleteSessions(t *testing.T) {
	server := newTestServer(t)
	first := createSession(t, server)
	createSession(t, server)

	rr := doRequest(t, server, "GET", "/api/sessions?sort=created&order=asc&limit=1", nil)
	var list struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	decode(t, rr, &list)
	if list.Count != 1 || list.Total != 2 || list.Sessions[0].ID != first {
		t.Errorf("Unexpected list %+v", list)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/unified", nil)
	var unified struct {
		Sessions []map[string]interface{} `json:"sessions"`
		Solved   int                      `json:"solved"`
	}
	decode(t, rr, &unified)
	if len(unified.Sessions) != 2 || unified.Solved != 0 {
		t.Errorf("Unexpected unified view %+v", unified)
	}

	rr = doRequest(t, server, "DELETE", "/api/sessions/"+first, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	rr = doRequest(t, server, "DELETE", "/api/sessions/"+first, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", rr.Code)
	}
}

func TestServer_MetricsAndHealth(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)
	doRequest(t, server, "POST", "/api/sessions/"+id+"/rotate", map[string]int{"slot": 0})

	rr := doRequest(t, server, "GET", "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "pathgrid_moves_total") {
		t.Error("Expected pathgrid_moves_total in metrics output")
	}

	rr = doRequest(t, server, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("health: %d", rr.Code)
	}
}

func TestServer_WebSocketRequiresSession(t *testing.T) {
	server := newTestServer(t)

	if rr := doRequest(t, server, "GET", "/ws", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session, got %d", rr.Code)
	}
	if rr := doRequest(t, server, "GET", "/ws?session=missing", nil); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", rr.Code)
	}
}
