package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ValidatePuzzleConfig validates a puzzle configuration for correctness and solvability
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if len(config.Name) > MaxNameLength {
		return fmt.Errorf("config validation: name must be at most %d characters, got %d", MaxNameLength, len(config.Name))
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate layout
	grid, err := ParseLayout(config.Layout)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if grid.TileCount() == 0 {
		return fmt.Errorf("config validation: layout must contain at least one tile")
	}

	// Validate locked slots
	seen := make(map[Slot]bool)
	for _, s := range config.LockedSlots {
		if !s.Valid() {
			return fmt.Errorf("config validation: locked slot %d: %w", s, ErrInvalidSlot)
		}
		if seen[s] {
			return fmt.Errorf("config validation: locked slot %d listed twice", s)
		}
		seen[s] = true
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Valid == "" {
		return fmt.Errorf("config validation: messages.valid is required")
	}
	if !strings.Contains(config.Messages.Invalid, "%d") {
		return fmt.Errorf("config validation: messages.invalid must contain %%d for the violation count")
	}

	// Validate solvability - some rotation of the unlocked tiles must be legal
	solvable, err := IsSolvable(grid, LockedSet(config.LockedSlots))
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if !solvable {
		return fmt.Errorf("config validation: %w for layout %v", ErrNoSolution, config.Layout)
	}

	return nil
}

// LoadPuzzleConfig loads and validates a puzzle configuration from a JSON file
func LoadPuzzleConfig(filename string) (*PuzzleConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return &config, nil
}

// DefaultPuzzleConfig returns the built-in puzzle used when no configuration
// is available. Its solution wires E0 to E1 through the top-left pair of slots.
func DefaultPuzzleConfig() *PuzzleConfig {
	return &PuzzleConfig{
		Name:        "default",
		Description: "Connect the two top-left terminals",
		Layout: []string{
			"B0 B0 .",
			".  .  .",
			".  .  .",
		},
		Messages: Messages{
			Welcome:    "Rotate the tiles so every path ends at a terminal.",
			Rotated:    "Tile rotated.",
			Swapped:    "Tiles swapped.",
			Valid:      "All paths are connected!",
			Invalid:    "%d path points are dangling or over-connected.",
			EmptySlot:  "That slot is empty.",
			LockedSlot: "That tile is locked in place.",
		},
	}
}

// InitGameStateFromConfig creates a new game state using the provided configuration.
// A nil config uses DefaultPuzzleConfig.
func InitGameStateFromConfig(config *PuzzleConfig) (*GameState, error) {
	if config == nil {
		config = DefaultPuzzleConfig()
	}

	grid, err := ParseLayout(config.Layout)
	if err != nil {
		return nil, err
	}

	state := &GameState{
		ConfigName:        config.Name,
		Locked:            append([]Slot(nil), config.LockedSlots...),
		MoveHistory:       []MoveHistoryEntry{},
		CurrentMoves:      []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMovesCount: 0,
	}
	if err := state.setGrid(grid); err != nil {
		return nil, err
	}
	state.Message = config.Messages.Welcome
	return state, nil
}

// setGrid installs a grid and recomputes everything derived from it.
func (gs *GameState) setGrid(grid GridState) error {
	network, err := CalculatePathNetwork(grid)
	if err != nil {
		return err
	}
	gs.Grid = grid
	gs.Layout = FormatLayout(grid)
	gs.Network = network
	gs.Violations = Validate(network)
	gs.Valid = len(gs.Violations) == 0
	return nil
}

// Clone returns a deep copy of the state that shares no slices with gs.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Layout = slices.Clone(gs.Layout)
	c.Violations = slices.Clone(gs.Violations)
	c.Locked = slices.Clone(gs.Locked)
	c.MoveHistory = slices.Clone(gs.MoveHistory)
	c.CurrentMoves = slices.Clone(gs.CurrentMoves)
	return &c
}
