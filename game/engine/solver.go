package engine

import (
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/zyedidia/generic/mapset"
)

// Solution is a valid grid reachable from a start grid by rotations alone.
type Solution struct {
	Grid   GridState `json:"grid"`
	Layout []string  `json:"layout"`
	Steps  int       `json:"steps"` // quarter turns summed over all slots
	Moves  []Move    `json:"moves"`
}

type solutionKey struct {
	steps  int
	layout string
}

func compareSolutionKeys(a, b interface{}) int {
	ka, kb := a.(solutionKey), b.(solutionKey)
	switch {
	case ka.steps < kb.steps:
		return -1
	case ka.steps > kb.steps:
		return 1
	default:
		return strings.Compare(ka.layout, kb.layout)
	}
}

// Solve enumerates every rotation assignment of the occupied, unlocked
// slots and returns the valid ones, fewest rotation steps first. A limit
// of zero or less returns every solution. Tiles are never moved between
// slots.
func Solve(start GridState, locked mapset.Set[Slot], limit int) ([]Solution, error) {
	var free []Slot
	for _, s := range start.OccupiedSlots() {
		if locked.Has(s) {
			continue
		}
		tile, _, _ := start.Tile(s)
		n, err := MaxRotations(tile.Type)
		if err != nil {
			return nil, err
		}
		if n > 1 {
			free = append(free, s)
		}
	}

	found := redblacktree.NewWith(compareSolutionKeys)

	var search func(i int, grid GridState, steps int) error
	search = func(i int, grid GridState, steps int) error {
		if i == len(free) {
			network, err := CalculatePathNetwork(grid)
			if err != nil {
				return err
			}
			if IsValid(network) {
				layout := FormatLayout(grid)
				found.Put(solutionKey{steps: steps, layout: strings.Join(layout, "/")}, grid)
			}
			return nil
		}

		slot := free[i]
		tile, _, _ := grid.Tile(slot)
		n, _ := MaxRotations(tile.Type)
		for turn := 0; turn < n; turn++ {
			next, err := grid.WithTile(slot, TileData{Type: tile.Type, Rotation: (tile.Rotation + turn) % n})
			if err != nil {
				return err
			}
			if err := search(i+1, next, steps+turn); err != nil {
				return err
			}
		}
		return nil
	}
	if err := search(0, start, 0); err != nil {
		return nil, err
	}

	var solutions []Solution
	it := found.Iterator()
	for it.Next() {
		if limit > 0 && len(solutions) == limit {
			break
		}
		key := it.Key().(solutionKey)
		grid := it.Value().(GridState)
		solutions = append(solutions, Solution{
			Grid:   grid,
			Layout: strings.Split(key.layout, "/"),
			Steps:  key.steps,
			Moves:  rotationMoves(start, grid),
		})
	}
	return solutions, nil
}

// rotationMoves lists the explicit rotate commands turning from into to.
func rotationMoves(from, to GridState) []Move {
	var moves []Move
	for _, s := range to.OccupiedSlots() {
		a, _, _ := from.Tile(s)
		b, _, _ := to.Tile(s)
		if a.Rotation != b.Rotation {
			rotation := b.Rotation
			moves = append(moves, RotateMove(s, &rotation))
		}
	}
	return moves
}

// IsSolvable reports whether any rotation assignment yields a valid network.
func IsSolvable(start GridState, locked mapset.Set[Slot]) (bool, error) {
	solutions, err := Solve(start, locked, 1)
	if err != nil {
		return false, err
	}
	return len(solutions) > 0, nil
}

// LockedSet builds the slot set used by Solve.
func LockedSet(slots []Slot) mapset.Set[Slot] {
	set := mapset.New[Slot]()
	for _, s := range slots {
		set.Put(s)
	}
	return set
}
