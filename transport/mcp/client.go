package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
	"github.com/wricardo/mcp-training/pathgrid/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Pathgrid Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Pathgrid Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PUZZLE OBJECTIVE:
Rotate and swap the tiles of a 3x3 grid until every path point is legal:
entity points carry 0 or 1 connection, every other point 0 or 2.

AVAILABLE TOOLS:
- grid_state: Current layout, validity and violations
- rotate: Rotate the tile in a slot (one step, or to an explicit rotation)
- swap: Exchange the tiles of two slots
- reset_puzzle: Restore the starting layout
- network: Paths and the entities each path connects
- hint: Rotation-only solutions from the current grid
- move_history: View past moves
- create_session / get_session / list_sessions: Session management
- list_configs: List available puzzles
- puzzle_instructions: Full rules and notation
- describe_slot: Path points, entities and degrees around one slot`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func slotProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     0,
		"maximum":     engine.SlotCount - 1,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Puzzle operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "grid_state",
		Description: "Get the current layout, validity and violations of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGridState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rotate",
		Description: "Rotate the tile in a slot. Without rotation it advances one quarter turn clockwise.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"slot":       slotProperty("Slot to rotate (0-8, row-major)"),
				"rotation": map[string]interface{}{
					"type":        "integer",
					"description": "Explicit target rotation (optional)",
				},
			},
			Required: []string{"session_id", "slot"},
		},
	}, c.handleRotate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "swap",
		Description: "Exchange the tiles of two slots. Swapping with an empty slot moves the tile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"a":          slotProperty("First slot (0-8)"),
				"b":          slotProperty("Second slot (0-8)"),
			},
			Required: []string{"session_id", "a", "b"},
		},
	}, c.handleSwap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_puzzle",
		Description: "Reset the session to its starting layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "network",
		Description: "List the paths of the current grid and which entities each one connects",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleNetwork)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Find rotation-only solutions from the current grid, fewest quarter turns first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of solutions (default: 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get paginated move history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default: 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Moves per page (default: 20)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available puzzle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_instructions",
		Description: "Get the rules of the puzzle, the slot and path point numbering and the layout notation",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handlePuzzleInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_slot",
		Description: "Describe one slot: its tile, the path point on each side, the entity anchored there and the point's degree",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"slot":       slotProperty("Slot to describe (0-8, row-major)"),
			},
			Required: []string{"session_id", "slot"},
		},
	}, c.handleDescribeSlot)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configName, _ := arguments(request)["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_id"] = configName
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "unsolved"
		if s.GameState != nil && s.GameState.Valid {
			status = "solved"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGridState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleRotate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	slot, ok := intArg(args, "slot")
	if !ok {
		return mcp.NewToolResultError("slot is required"), nil
	}

	body := map[string]interface{}{"slot": slot}
	if rotation, ok := intArg(args, "rotation"); ok {
		body["rotation"] = rotation
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/rotate"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleSwap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	a, okA := intArg(args, "a")
	b, okB := intArg(args, "b")
	if !okA || !okB {
		return mcp.NewToolResultError("a and b are required"), nil
	}

	body := map[string]interface{}{"a": a, "b": b}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/swap"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleNetwork(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var network service.NetworkInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/network"), nil, &network); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatNetwork(&network)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	path := sessionPath(sessionID, "/hint")
	if limit, ok := intArg(args, "limit"); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var hint service.HintResult
	if err := c.apiCall(ctx, "GET", path, nil, &hint); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHint(&hint)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultText(formatHistory(&history)), nil
	}

	result := formatHistory(&history) + "\n" + formatCurrentSegment(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (id: %s)\n  %s\n  Tiles: %d, Locked: %d\n",
			config.Name, config.ConfigID, config.Description, config.TileCount, config.LockedSlots)
		for _, row := range config.Layout {
			fmt.Fprintf(&b, "    %s\n", row)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handlePuzzleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Pathgrid Puzzle - Complete Instructions

OBJECTIVE:
Arrange tiles on a 3x3 grid so that every path point is legal.

SLOTS:
Slots are numbered row-major:
   0 1 2
   3 4 5
   6 7 8

PATH POINTS:
Each slot has four sides. The 24 grid edges are path points.
• Horizontal edges: 3*row + col (row 0..3 of edge lines, col 0..2)
• Vertical edges: 12 + 4*row + col (row 0..2, col 0..3 of edge lines)
Slot s at (R, C) touches top 3R+C, right 12+4R+C+1, bottom 3R+3+C, left 12+4R+C.

ENTITIES:
Twelve fixed terminals sit on the perimeter, clockwise from the top-left:
E0..E2 on top (points 0,1,2), E3..E5 on the right (15,19,23),
E6..E8 on the bottom (11,10,9), E9..E11 on the left (20,16,12).

TILES (rotation 0, rotations turn clockwise):
• B bend      - connects top and right; 4 rotations
• X crossover - top-bottom and right-left as two separate paths; 2 rotations
• T three_way - joins top, right and bottom; 4 rotations
• F four_way  - joins all four sides; 1 rotation

LEGALITY:
A point's degree is how many other points it is wired to.
• Entity points need degree 0 or 1
• Every other point needs degree 0 or 2
A three-way or four-way gives each of its points degree 2 or 3, so they
only fit where their extra branch is cancelled out elsewhere.

MOVES:
• rotate slot      - advance one quarter turn
• rotate slot r    - jump to rotation r
• swap a b         - exchange two slots; swapping with an empty slot moves the tile
Locked slots refuse every move. Rejected moves are recorded in history.

LAYOUT NOTATION:
Three rows of three cells: a letter plus rotation digit, or '.' for empty.
Example:  "X1 B0 B3"

STRATEGY:
1. Read grid_state and list the violations.
2. Use describe_slot on slots next to a violation to see their degrees.
3. Ask hint for rotation-only solutions when stuck; if none exists a swap is needed.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeSlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	slotNum, ok := intArg(args, "slot")
	if !ok {
		return mcp.NewToolResultError("slot is required"), nil
	}

	slot := engine.Slot(slotNum)
	points, err := engine.SlotToPathPoints(slot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Slot %d is out of range. Slots are 0-%d", slotNum, engine.SlotCount-1)), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeSlot(&state, slot, points)), nil
}

func describeSlot(state *engine.GameState, slot engine.Slot, points [4]engine.PathPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Slot %d (row %d, col %d):\n", slot, int(slot)/engine.GridSide, int(slot)%engine.GridSide)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")

	tile := state.Grid.Slots()[slot]
	wired := map[engine.AnchorSide]bool{}
	if tile == nil {
		b.WriteString("Tile: empty\n")
	} else {
		fmt.Fprintf(&b, "Tile: %s (%s%d)\n", tile, engine.LetterFor(tile.Type), tile.Rotation)
		if groups, err := tile.Groups(); err == nil {
			for _, group := range groups {
				sides := make([]string, len(group))
				for i, side := range group {
					wired[side] = true
					sides[i] = side.String()
				}
				fmt.Fprintf(&b, "Joins: %s\n", strings.Join(sides, "+"))
			}
		}
	}

	for _, locked := range state.Locked {
		if locked == slot {
			b.WriteString("Locked: yes\n")
		}
	}

	b.WriteString("\nSides:\n")
	for side, point := range points {
		anchor := engine.AnchorSide(side)
		degree := state.Network.Degrees[point]
		line := fmt.Sprintf("  %-6s point %2d  degree %d", anchor, point, degree)
		if e, ok := engine.EntityAtPoint(point); ok {
			line += fmt.Sprintf("  entity E%d", e)
		}
		if wired[anchor] {
			line += "  wired"
		}
		if !engine.IsValidConnectionCount(point, degree) {
			line += "  ⚠️ illegal"
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Config: %s | Moves: %d | Tiles: %d\n\n",
		state.ConfigName, state.TotalMoves, state.Grid.TileCount())

	layout := state.Layout
	if len(layout) == 0 {
		layout = engine.FormatLayout(state.Grid)
	}
	for _, row := range layout {
		b.WriteString("  " + row + "\n")
	}

	if len(state.Locked) > 0 {
		fmt.Fprintf(&b, "\nLocked slots: %v\n", state.Locked)
	}

	if state.Valid {
		b.WriteString("\n🎉 SOLVED: every path point is legal")
	} else {
		fmt.Fprintf(&b, "\nViolations (%d):\n", len(state.Violations))
		for _, v := range state.Violations {
			b.WriteString("  " + formatViolation(v) + "\n")
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatViolation(v engine.Violation) string {
	line := fmt.Sprintf("point %d: %s (degree %d)", v.Point, v.Reason, v.Degree)
	if v.Entity != nil {
		line += fmt.Sprintf(" at E%d", *v.Entity)
	}
	return line
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s accepted\n", result.Move)
	} else {
		fmt.Fprintf(&b, "✗ %s rejected\n", result.Move)
	}

	for _, event := range result.Events {
		if event.Type == "solved" {
			b.WriteString("🎉 Puzzle solved!\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatNetwork(info *service.NetworkInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Paths (%d), total degree %d:\n", len(info.Paths), info.TotalDegree)
	for i, path := range info.Paths {
		members := make([]string, len(path))
		for j, p := range path {
			members[j] = fmt.Sprint(p)
			if e, ok := engine.EntityAtPoint(p); ok {
				members[j] = fmt.Sprintf("%d[E%d]", p, e)
			}
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(members, " - "))
	}

	b.WriteString("\nConnected entities:\n")
	if len(info.ConnectedEntities) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, group := range info.ConnectedEntities {
		names := make([]string, len(group))
		for i, e := range group {
			names[i] = fmt.Sprintf("E%d", e)
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(names, " ↔ "))
	}

	return b.String()
}

func formatHint(hint *service.HintResult) string {
	if !hint.Solvable || len(hint.Solutions) == 0 {
		return "No rotation-only solution exists from the current grid. Try swapping tiles."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Solutions (%d):\n", len(hint.Solutions))
	for i, solution := range hint.Solutions {
		fmt.Fprintf(&b, "\n%d. %d quarter turns\n", i+1, solution.Steps)
		for _, row := range solution.Layout {
			fmt.Fprintf(&b, "     %s\n", row)
		}
		for _, move := range solution.Moves {
			fmt.Fprintf(&b, "   - %s\n", move)
		}
	}
	return b.String()
}

func formatHistoryEntry(num int, entry engine.MoveHistoryEntry) string {
	status := "✓"
	if !entry.Accepted {
		status = "✗"
	}
	line := fmt.Sprintf("%d. %s %s [violations: %d]", num, entry.Move, status, entry.Violations)
	if entry.Reason != "" {
		line += " " + entry.Reason
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, entry := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		b.WriteString(formatHistoryEntry(num, entry))
	}

	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, entry := range state.CurrentMoves {
		b.WriteString(formatHistoryEntry(i+1, entry))
	}
	return b.String()
}
