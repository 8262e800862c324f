package engine

import (
	"errors"
	"testing"
)

func TestApplyMove_Rotate(t *testing.T) {
	g := mustGrid(t, map[Slot]TileData{0: {Type: Bend, Rotation: 3}})

	next, err := ApplyMove(g, RotateMove(0, nil))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if tile, _, _ := next.Tile(0); tile.Rotation != 0 {
		t.Errorf("expected rotation to wrap to 0, got %d", tile.Rotation)
	}
	if tile, _, _ := g.Tile(0); tile.Rotation != 3 {
		t.Error("ApplyMove mutated its input")
	}

	target := 2
	next, err = ApplyMove(g, RotateMove(0, &target))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if tile, _, _ := next.Tile(0); tile.Rotation != 2 {
		t.Errorf("expected rotation 2, got %d", tile.Rotation)
	}
}

func TestApplyMove_RotateErrors(t *testing.T) {
	g := mustGrid(t, map[Slot]TileData{0: {Type: Crossover}})

	tests := []struct {
		name string
		move Move
		want error
	}{
		{"empty slot", RotateMove(1, nil), ErrInvalidMove},
		{"slot out of range", RotateMove(12, nil), ErrInvalidSlot},
		{"rotation out of range", RotateMove(0, intPtr(2)), ErrInvalidRotation},
		{"unknown kind", Move{Kind: "flip"}, ErrInvalidMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ApplyMove(g, tt.move); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyMove_Swap(t *testing.T) {
	bend := TileData{Type: Bend, Rotation: 1}
	cross := TileData{Type: Crossover}
	g := mustGrid(t, map[Slot]TileData{0: bend, 4: cross})

	swapped, err := ApplyMove(g, SwapMove(0, 4))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if tile, _, _ := swapped.Tile(0); tile != cross {
		t.Errorf("expected crossover in slot 0, got %v", tile)
	}
	if tile, _, _ := swapped.Tile(4); tile != bend {
		t.Errorf("expected bend in slot 4, got %v", tile)
	}

	moved, err := ApplyMove(g, SwapMove(0, 8))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if moved.Occupied(0) || !moved.Occupied(8) {
		t.Error("swapping with an empty slot should move the tile")
	}

	if _, err := ApplyMove(g, SwapMove(4, 4)); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove for self swap, got %v", err)
	}
	if _, err := ApplyMove(g, SwapMove(4, 9)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestMove_String(t *testing.T) {
	if got := RotateMove(3, intPtr(1)).String(); got != "rotate 3 -> 1" {
		t.Errorf("unexpected %q", got)
	}
	if got := RotateMove(3, nil).String(); got != "rotate 3" {
		t.Errorf("unexpected %q", got)
	}
	if got := SwapMove(0, 8).String(); got != "swap 0 <-> 8" {
		t.Errorf("unexpected %q", got)
	}
}

func intPtr(v int) *int { return &v }
