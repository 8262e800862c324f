package engine

import "fmt"

// PathNetworkState is the connectivity derived from one GridState: the
// degree of every path point and the component each point belongs to.
// Components are identified by their smallest member, so two calculations
// over equal grids produce equal values.
type PathNetworkState struct {
	Degrees    [PathPointCount]int       `json:"degrees"`
	Components [PathPointCount]PathPoint `json:"components"`
}

// Degree returns how many other points the point is directly wired to.
func (n PathNetworkState) Degree(point PathPoint) (int, error) {
	if !point.Valid() {
		return 0, fmt.Errorf("point %d: %w", point, ErrOutOfRange)
	}
	return n.Degrees[point], nil
}

// Component returns the identifier of the point's component.
func (n PathNetworkState) Component(point PathPoint) (PathPoint, error) {
	if !point.Valid() {
		return -1, fmt.Errorf("point %d: %w", point, ErrOutOfRange)
	}
	return n.Components[point], nil
}

// Connected reports whether two points share a component.
func (n PathNetworkState) Connected(a, b PathPoint) (bool, error) {
	ca, err := n.Component(a)
	if err != nil {
		return false, err
	}
	cb, err := n.Component(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}

// Members returns every point in the same component as point, ascending.
func (n PathNetworkState) Members(point PathPoint) ([]PathPoint, error) {
	c, err := n.Component(point)
	if err != nil {
		return nil, err
	}
	var members []PathPoint
	for p, comp := range n.Components {
		if comp == c {
			members = append(members, PathPoint(p))
		}
	}
	return members, nil
}

// Paths returns the components with more than one member, ordered by
// their smallest point.
func (n PathNetworkState) Paths() [][]PathPoint {
	index := make(map[PathPoint]int)
	var paths [][]PathPoint
	for p, comp := range n.Components {
		i, ok := index[comp]
		if !ok {
			i = len(paths)
			index[comp] = i
			paths = append(paths, nil)
		}
		paths[i] = append(paths[i], PathPoint(p))
	}

	result := paths[:0]
	for _, path := range paths {
		if len(path) > 1 {
			result = append(result, path)
		}
	}
	return result
}

// ConnectedEntities groups the entities that share a component. Only
// groups of two or more entities are returned.
func (n PathNetworkState) ConnectedEntities() [][]Entity {
	var groups [][]Entity
	for _, path := range n.Paths() {
		var entities []Entity
		for _, p := range path {
			if e, ok := EntityAtPoint(p); ok {
				entities = append(entities, e)
			}
		}
		if len(entities) > 1 {
			groups = append(groups, entities)
		}
	}
	return groups
}

// TotalDegree sums the degree of every point.
func (n PathNetworkState) TotalDegree() int {
	total := 0
	for _, d := range n.Degrees {
		total += d
	}
	return total
}
