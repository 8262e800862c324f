package engine

const (
	// Validation constants
	MaxNameLength       = 64
	MaxHistoryPageSize  = 100
	WebSocketBufferSize = 256
)

// Messages holds the player-facing text of a puzzle configuration
type Messages struct {
	Welcome    string `json:"welcome"`
	Rotated    string `json:"rotated"`
	Swapped    string `json:"swapped"`
	Valid      string `json:"valid"`
	Invalid    string `json:"invalid"` // must contain %d for the violation count
	EmptySlot  string `json:"empty_slot"`
	LockedSlot string `json:"locked_slot"`
}

// PuzzleConfig represents a puzzle definition loaded from JSON
type PuzzleConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Layout      []string `json:"layout"`
	LockedSlots []Slot   `json:"locked_slots,omitempty"`
	Messages    Messages `json:"messages"`
}

// GameState represents the complete state of one puzzle session
type GameState struct {
	Grid       GridState        `json:"grid"`
	Layout     []string         `json:"layout"`
	Network    PathNetworkState `json:"network"`
	Valid      bool             `json:"valid"`
	Violations []Violation      `json:"violations"`
	Message    string           `json:"message"`
	ConfigName string           `json:"config_name"`
	Locked     []Slot           `json:"locked_slots,omitempty"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry is an audit record of one move command. It is a log,
// not an undo stack.
type MoveHistoryEntry struct {
	Move       Move   `json:"move"`
	Accepted   bool   `json:"accepted"`
	Valid      bool   `json:"valid"` // network validity after the move
	Violations int    `json:"violations"`
	Timestamp  int64  `json:"timestamp"`
	MoveNumber int    `json:"move_number"`
	Reason     string `json:"reason,omitempty"`
}
