package engine

import (
	"encoding/json"
	"fmt"
)

// GridState is an immutable snapshot of the tiles in the 9 slots.
// The zero value is the empty grid. Copies never share mutable data, so a
// GridState may be read from any number of goroutines.
type GridState struct {
	tiles    [SlotCount]TileData
	occupied [SlotCount]bool
}

// NewGridState builds a grid from a slot-to-tile map.
func NewGridState(tiles map[Slot]TileData) (GridState, error) {
	var g GridState
	for slot, tile := range tiles {
		next, err := g.WithTile(slot, tile)
		if err != nil {
			return GridState{}, err
		}
		g = next
	}
	return g, nil
}

// Tile returns the tile in a slot and whether the slot is occupied.
func (g GridState) Tile(slot Slot) (TileData, bool, error) {
	if !slot.Valid() {
		return TileData{}, false, fmt.Errorf("slot %d: %w", slot, ErrInvalidSlot)
	}
	return g.tiles[slot], g.occupied[slot], nil
}

// Occupied reports whether a valid slot holds a tile.
func (g GridState) Occupied(slot Slot) bool {
	return slot.Valid() && g.occupied[slot]
}

// WithTile returns a copy of the grid with one slot replaced.
func (g GridState) WithTile(slot Slot, tile TileData) (GridState, error) {
	if !slot.Valid() {
		return g, fmt.Errorf("slot %d: %w", slot, ErrInvalidSlot)
	}
	if err := tile.Validate(); err != nil {
		return g, err
	}
	g.tiles[slot] = tile
	g.occupied[slot] = true
	return g, nil
}

// WithoutTile returns a copy of the grid with one slot emptied.
func (g GridState) WithoutTile(slot Slot) (GridState, error) {
	if !slot.Valid() {
		return g, fmt.Errorf("slot %d: %w", slot, ErrInvalidSlot)
	}
	g.tiles[slot] = TileData{}
	g.occupied[slot] = false
	return g, nil
}

// OccupiedSlots returns the occupied slots in ascending order.
func (g GridState) OccupiedSlots() []Slot {
	var slots []Slot
	for s := Slot(0); s < SlotCount; s++ {
		if g.occupied[s] {
			slots = append(slots, s)
		}
	}
	return slots
}

// TileCount returns the number of occupied slots.
func (g GridState) TileCount() int {
	n := 0
	for _, ok := range g.occupied {
		if ok {
			n++
		}
	}
	return n
}

// CountType counts tiles of one archetype.
func (g GridState) CountType(t TileType) int {
	n := 0
	for s, ok := range g.occupied {
		if ok && g.tiles[s].Type == t {
			n++
		}
	}
	return n
}

// Equal reports whether both grids hold the same tiles.
func (g GridState) Equal(other GridState) bool {
	return g == other
}

// Slots returns the grid as a slot-indexed slice with nil for empty slots.
func (g GridState) Slots() []*TileData {
	out := make([]*TileData, SlotCount)
	for s := range g.tiles {
		if g.occupied[s] {
			tile := g.tiles[s]
			out[s] = &tile
		}
	}
	return out
}

// MarshalJSON encodes the grid as a 9-element array of tiles or nulls.
func (g GridState) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Slots())
}

// UnmarshalJSON decodes the array form written by MarshalJSON.
func (g *GridState) UnmarshalJSON(data []byte) error {
	var slots []*TileData
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	if len(slots) != SlotCount {
		return fmt.Errorf("grid has %d slots, want %d: %w", len(slots), SlotCount, ErrInvalidSlot)
	}

	var next GridState
	for s, tile := range slots {
		if tile == nil {
			continue
		}
		var err error
		if next, err = next.WithTile(Slot(s), *tile); err != nil {
			return err
		}
	}
	*g = next
	return nil
}
