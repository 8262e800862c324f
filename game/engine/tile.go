package engine

import (
	"fmt"
	"sort"
)

// AnchorSide is one of the four local sides of a tile.
type AnchorSide int

const (
	Top AnchorSide = iota
	Right
	Bottom
	Left
)

// String returns the lowercase side name
func (a AnchorSide) String() string {
	switch a {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// rotate relabels the side by steps quarter turns clockwise.
func (a AnchorSide) rotate(steps int) AnchorSide {
	return AnchorSide((int(a) + steps) % 4)
}

// TileType is a tile archetype, identified by its connection shape.
type TileType string

const (
	Bend      TileType = "bend"
	Crossover TileType = "crossover"
	ThreeWay  TileType = "three_way"
	FourWay   TileType = "four_way"
)

// TileTypes lists every archetype in catalogue order.
var TileTypes = []TileType{Bend, Crossover, ThreeWay, FourWay}

type archetype struct {
	rotations int
	groups    [][]AnchorSide // at rotation 0
}

var archetypes = map[TileType]archetype{
	Bend:      {rotations: 4, groups: [][]AnchorSide{{Top, Right}}},
	Crossover: {rotations: 2, groups: [][]AnchorSide{{Top, Bottom}, {Right, Left}}},
	ThreeWay:  {rotations: 4, groups: [][]AnchorSide{{Top, Right, Bottom}}},
	FourWay:   {rotations: 1, groups: [][]AnchorSide{{Top, Right, Bottom, Left}}},
}

// Known reports whether t is a catalogued archetype.
func (t TileType) Known() bool {
	_, ok := archetypes[t]
	return ok
}

// MaxRotations returns the number of distinct rotations of an archetype.
func MaxRotations(t TileType) (int, error) {
	a, ok := archetypes[t]
	if !ok {
		return 0, fmt.Errorf("%q: %w", t, ErrUnknownTile)
	}
	return a.rotations, nil
}

// ConnectionGroups returns the sets of local anchors wired together by an
// archetype at the given rotation. Each group is sorted by side and the
// groups are ordered by their first side.
func ConnectionGroups(t TileType, rotation int) ([][]AnchorSide, error) {
	a, ok := archetypes[t]
	if !ok {
		return nil, fmt.Errorf("%q: %w", t, ErrUnknownTile)
	}
	if rotation < 0 || rotation >= a.rotations {
		return nil, fmt.Errorf("%s rotation %d (max %d): %w", t, rotation, a.rotations, ErrInvalidRotation)
	}

	groups := make([][]AnchorSide, 0, len(a.groups))
	for _, g := range a.groups {
		rotated := make([]AnchorSide, len(g))
		for i, side := range g {
			rotated[i] = side.rotate(rotation)
		}
		sort.Slice(rotated, func(i, j int) bool { return rotated[i] < rotated[j] })
		groups = append(groups, rotated)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups, nil
}

// TileData is an immutable tile placement: archetype plus rotation.
type TileData struct {
	Type     TileType `json:"type"`
	Rotation int      `json:"rotation"`
}

// NewTile validates the archetype and rotation.
func NewTile(t TileType, rotation int) (TileData, error) {
	count, err := MaxRotations(t)
	if err != nil {
		return TileData{}, err
	}
	if rotation < 0 || rotation >= count {
		return TileData{}, fmt.Errorf("%s rotation %d (max %d): %w", t, rotation, count, ErrInvalidRotation)
	}
	return TileData{Type: t, Rotation: rotation}, nil
}

// Validate checks the archetype and rotation range.
func (t TileData) Validate() error {
	_, err := NewTile(t.Type, t.Rotation)
	return err
}

// Rotated returns the tile advanced by one rotation step, wrapping around.
func (t TileData) Rotated() (TileData, error) {
	count, err := MaxRotations(t.Type)
	if err != nil {
		return TileData{}, err
	}
	return TileData{Type: t.Type, Rotation: (t.Rotation + 1) % count}, nil
}

// WithRotation returns the tile at an explicit rotation.
func (t TileData) WithRotation(rotation int) (TileData, error) {
	return NewTile(t.Type, rotation)
}

// Groups returns the connection groups at the tile's rotation.
func (t TileData) Groups() ([][]AnchorSide, error) {
	return ConnectionGroups(t.Type, t.Rotation)
}

// String renders the tile as "type@rotation"
func (t TileData) String() string {
	return fmt.Sprintf("%s@%d", t.Type, t.Rotation)
}
