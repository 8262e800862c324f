package engine

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Engine provides the main interface for puzzle operations
type Engine interface {
	// State management
	GetState() *GameState
	Snapshot() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsValid() bool

	// Moves
	Apply(move Move) (bool, error)
	Rotate(slot Slot, rotation *int) (bool, error)
	Swap(a, b Slot) (bool, error)

	// Derived views
	GetGrid() GridState
	GetNetwork() PathNetworkState
	GetViolations() []Violation

	// Configuration
	GetConfig() *PuzzleConfig
	SetConfig(config *PuzzleConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements Engine. It owns the current GridState of one
// puzzle and replaces it wholesale after every accepted move.
type GameEngine struct {
	state  *GameState
	config *PuzzleConfig
	locked map[Slot]bool
}

// NewEngine creates a new puzzle engine with the provided configuration
func NewEngine(config *PuzzleConfig) (*GameEngine, error) {
	if err := ValidatePuzzleConfig(config); err != nil {
		return nil, err
	}

	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}
	return &GameEngine{
		config: config,
		state:  state,
		locked: lockedMap(config.LockedSlots),
	}, nil
}

// NewEngineWithDefaults creates a new engine with the built-in puzzle
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultPuzzleConfig())
	if err != nil {
		panic(fmt.Sprintf("default puzzle is invalid: %v", err))
	}
	return engine
}

func lockedMap(slots []Slot) map[Slot]bool {
	m := make(map[Slot]bool, len(slots))
	for _, s := range slots {
		m[s] = true
	}
	return m
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a copy of the current state that later moves do not touch
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// SetState replaces the game state, recomputing the network from its grid
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := state.setGrid(state.Grid); err != nil {
		return err
	}
	e.state = state
	return nil
}

// Reset restores the configured starting grid
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	state, err := InitGameStateFromConfig(e.config)
	if err != nil {
		// config was validated when it was installed
		panic(fmt.Sprintf("reset: %v", err))
	}
	e.state = state

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// IsValid reports whether the current network passes validation
func (e *GameEngine) IsValid() bool {
	return e.state.Valid
}

// Rotate turns the tile in a slot. A nil rotation advances one step.
func (e *GameEngine) Rotate(slot Slot, rotation *int) (bool, error) {
	return e.Apply(RotateMove(slot, rotation))
}

// Swap exchanges the tiles in two slots
func (e *GameEngine) Swap(a, b Slot) (bool, error) {
	return e.Apply(SwapMove(a, b))
}

// Apply executes a move against the current grid. It returns false with a
// player message when the move is rejected (empty or locked slot) and an
// error when the move references a slot, tile or rotation out of range.
func (e *GameEngine) Apply(move Move) (bool, error) {
	if reason := e.rejectReason(move); reason != "" {
		e.state.Message = reason
		e.record(move, false, reason)
		return false, nil
	}

	next, err := ApplyMove(e.state.Grid, move)
	if err != nil {
		if errors.Is(err, ErrInvalidMove) {
			e.state.Message = err.Error()
			e.record(move, false, err.Error())
			return false, nil
		}
		return false, err
	}

	if err := e.state.setGrid(next); err != nil {
		return false, err
	}

	switch {
	case e.state.Valid:
		e.state.Message = e.config.Messages.Valid
	case move.Kind == MoveSwap && e.config.Messages.Swapped != "":
		e.state.Message = e.config.Messages.Swapped + " " + fmt.Sprintf(e.config.Messages.Invalid, len(e.state.Violations))
	case e.config.Messages.Rotated != "":
		e.state.Message = e.config.Messages.Rotated + " " + fmt.Sprintf(e.config.Messages.Invalid, len(e.state.Violations))
	default:
		e.state.Message = fmt.Sprintf(e.config.Messages.Invalid, len(e.state.Violations))
	}

	e.record(move, true, "")
	return true, nil
}

// rejectReason checks the rules the state manager enforces on top of
// ApplyMove. Range errors are left for ApplyMove to report.
func (e *GameEngine) rejectReason(move Move) string {
	slots := []Slot{move.Slot}
	if move.Kind == MoveSwap {
		slots = append(slots, move.Other)
	}
	for _, s := range slots {
		if !s.Valid() {
			return ""
		}
	}

	for _, s := range slots {
		if e.locked[s] {
			return e.messageOr(e.config.Messages.LockedSlot, fmt.Sprintf("Slot %d is locked", s))
		}
	}
	if move.Kind == MoveRotate && !e.state.Grid.Occupied(move.Slot) {
		return e.messageOr(e.config.Messages.EmptySlot, fmt.Sprintf("Slot %d is empty", move.Slot))
	}
	return ""
}

func (e *GameEngine) messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// record appends a move to the audit log
func (e *GameEngine) record(move Move, accepted bool, reason string) {
	entry := MoveHistoryEntry{
		Move:       move,
		Accepted:   accepted,
		Valid:      e.state.Valid,
		Violations: len(e.state.Violations),
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.state.TotalMoves + 1,
		Reason:     reason,
	}
	e.state.MoveHistory = append(e.state.MoveHistory, entry)
	e.state.TotalMoves++

	e.state.CurrentMoves = append(e.state.CurrentMoves, entry)
	e.state.CurrentMovesCount++
}

// GetGrid returns the current grid snapshot
func (e *GameEngine) GetGrid() GridState {
	return e.state.Grid
}

// GetNetwork returns the network of the current grid
func (e *GameEngine) GetNetwork() PathNetworkState {
	return e.state.Network
}

// GetViolations returns the illegal path points of the current grid
func (e *GameEngine) GetViolations() []Violation {
	return slices.Clone(e.state.Violations)
}

// GetConfig returns the current puzzle configuration
func (e *GameEngine) GetConfig() *PuzzleConfig {
	return e.config
}

// SetConfig installs a new puzzle and resets the game
func (e *GameEngine) SetConfig(config *PuzzleConfig) error {
	if err := ValidatePuzzleConfig(config); err != nil {
		return err
	}
	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return err
	}

	e.config = config
	e.locked = lockedMap(config.LockedSlots)
	e.state = state
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return slices.Clone(e.state.MoveHistory)
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// Hint returns up to limit solutions reachable from the current grid by
// rotating unlocked tiles.
func (e *GameEngine) Hint(limit int) ([]Solution, error) {
	return Solve(e.state.Grid, LockedSet(e.config.LockedSlots), limit)
}
