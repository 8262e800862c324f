package service

import (
	"time"

	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	GameState      *engine.GameState    `json:"game_state"`
	GameConfig     *engine.PuzzleConfig `json:"game_config"`
}

// MoveResult contains the result of a rotate or swap
type MoveResult struct {
	Success   bool              `json:"success"`
	Move      engine.Move       `json:"move"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// GameEvent represents something that happened while applying a move
type GameEvent struct {
	Type      string    `json:"type"` // "rotate", "swap", "rejected", "solved", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NetworkInfo is the path network of a session's grid in a form that is
// easy to read over the wire
type NetworkInfo struct {
	Network           engine.PathNetworkState `json:"network"`
	Paths             [][]engine.PathPoint    `json:"paths"`
	ConnectedEntities [][]engine.Entity       `json:"connected_entities"`
	TotalDegree       int                     `json:"total_degree"`
}

// ValidationResult reports the legality of every path point
type ValidationResult struct {
	Valid      bool               `json:"valid"`
	Violations []engine.Violation `json:"violations"`
}

// HintResult lists rotation-only solutions from the current grid
type HintResult struct {
	Solvable  bool              `json:"solvable"`
	Solutions []engine.Solution `json:"solutions"`
}

// EvaluateResult is the outcome of checking a layout without a session
type EvaluateResult struct {
	Layout            []string                `json:"layout"`
	Grid              engine.GridState        `json:"grid"`
	Network           engine.PathNetworkState `json:"network"`
	Paths             [][]engine.PathPoint    `json:"paths"`
	ConnectedEntities [][]engine.Entity       `json:"connected_entities"`
	Valid             bool                    `json:"valid"`
	Violations        []engine.Violation      `json:"violations"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a puzzle configuration
type ConfigInfo struct {
	Filename    string   `json:"filename"`
	ConfigID    string   `json:"config_id"` // The identifier to use for session creation
	Name        string   `json:"name"`      // Display name
	Description string   `json:"description"`
	Layout      []string `json:"layout"`
	TileCount   int      `json:"tile_count"`
	LockedSlots int      `json:"locked_slots"`
}
