package engine

import "fmt"

// CalculatePathNetwork derives the path network of a grid. Every occupied
// slot unions the path points of each of its connection groups and adds
// (group size - 1) to the degree of each member. Neighbouring slots share
// path points, so contributions from adjacent tiles add up on the shared
// edge without any cross-slot logic.
func CalculatePathNetwork(grid GridState) (PathNetworkState, error) {
	uf := NewUnionFind(PathPointCount)
	var network PathNetworkState

	for s := Slot(0); s < SlotCount; s++ {
		tile, ok, err := grid.Tile(s)
		if err != nil {
			return PathNetworkState{}, err
		}
		if !ok {
			continue
		}

		points, err := SlotToPathPoints(s)
		if err != nil {
			return PathNetworkState{}, fmt.Errorf("slot %d: %w", s, ErrInvalidSlot)
		}
		groups, err := tile.Groups()
		if err != nil {
			return PathNetworkState{}, fmt.Errorf("slot %d: %w", s, err)
		}

		for _, group := range groups {
			if len(group) < 2 {
				continue
			}
			first := points[group[0]]
			for _, side := range group {
				p := points[side]
				if _, err := uf.Union(int(first), int(p)); err != nil {
					return PathNetworkState{}, err
				}
				network.Degrees[p] += len(group) - 1
			}
		}
	}

	for _, component := range uf.Components() {
		for _, p := range component {
			network.Components[p] = PathPoint(component[0])
		}
	}
	return network, nil
}
