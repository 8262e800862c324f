package engine

import "fmt"

// MoveKind names a player command.
type MoveKind string

const (
	MoveRotate MoveKind = "rotate"
	MoveSwap   MoveKind = "swap"
)

// Move is a command produced by the input layer. Rotate uses Slot and an
// optional target Rotation (nil advances one step). Swap exchanges the
// tiles in Slot and Other.
type Move struct {
	Kind     MoveKind `json:"kind"`
	Slot     Slot     `json:"slot"`
	Rotation *int     `json:"rotation,omitempty"`
	Other    Slot     `json:"other,omitempty"`
}

// RotateMove builds a rotate command. A nil rotation advances one step.
func RotateMove(slot Slot, rotation *int) Move {
	return Move{Kind: MoveRotate, Slot: slot, Rotation: rotation}
}

// SwapMove builds a swap command.
func SwapMove(a, b Slot) Move {
	return Move{Kind: MoveSwap, Slot: a, Other: b}
}

// String renders the move for logs and history entries
func (m Move) String() string {
	switch m.Kind {
	case MoveRotate:
		if m.Rotation != nil {
			return fmt.Sprintf("rotate %d -> %d", m.Slot, *m.Rotation)
		}
		return fmt.Sprintf("rotate %d", m.Slot)
	case MoveSwap:
		return fmt.Sprintf("swap %d <-> %d", m.Slot, m.Other)
	default:
		return string(m.Kind)
	}
}

// ApplyMove returns the grid that results from a move. The input grid is
// never modified. Rotating an empty slot or swapping a slot with itself
// is an ErrInvalidMove; swapping with an empty slot moves the tile.
func ApplyMove(grid GridState, move Move) (GridState, error) {
	switch move.Kind {
	case MoveRotate:
		tile, ok, err := grid.Tile(move.Slot)
		if err != nil {
			return grid, err
		}
		if !ok {
			return grid, fmt.Errorf("rotate empty slot %d: %w", move.Slot, ErrInvalidMove)
		}

		var next TileData
		if move.Rotation != nil {
			next, err = tile.WithRotation(*move.Rotation)
		} else {
			next, err = tile.Rotated()
		}
		if err != nil {
			return grid, err
		}
		return grid.WithTile(move.Slot, next)

	case MoveSwap:
		a, okA, err := grid.Tile(move.Slot)
		if err != nil {
			return grid, err
		}
		b, okB, err := grid.Tile(move.Other)
		if err != nil {
			return grid, err
		}
		if move.Slot == move.Other {
			return grid, fmt.Errorf("swap slot %d with itself: %w", move.Slot, ErrInvalidMove)
		}

		next := grid
		if next, err = place(next, move.Slot, b, okB); err != nil {
			return grid, err
		}
		if next, err = place(next, move.Other, a, okA); err != nil {
			return grid, err
		}
		return next, nil

	default:
		return grid, fmt.Errorf("move kind %q: %w", move.Kind, ErrInvalidMove)
	}
}

func place(grid GridState, slot Slot, tile TileData, ok bool) (GridState, error) {
	if !ok {
		return grid.WithoutTile(slot)
	}
	return grid.WithTile(slot, tile)
}
