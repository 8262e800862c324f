package engine

import "fmt"

// UnionFind implements union-find over the integers [0,n) with path
// compression and union by size.
type UnionFind struct {
	parent []int
	size   []int
}

// NewUnionFind creates a UnionFind where each element is its own component
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Len returns the number of elements.
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

func (uf *UnionFind) check(x int) error {
	if x < 0 || x >= len(uf.parent) {
		return fmt.Errorf("element %d of %d: %w", x, len(uf.parent), ErrOutOfRange)
	}
	return nil
}

// Find returns the root of the component containing x, with path compression
func (uf *UnionFind) Find(x int) (int, error) {
	if err := uf.check(x); err != nil {
		return -1, err
	}
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root, nil
}

// Union merges the components containing x and y. Returns true if they were separate.
func (uf *UnionFind) Union(x, y int) (bool, error) {
	rootX, err := uf.Find(x)
	if err != nil {
		return false, err
	}
	rootY, err := uf.Find(y)
	if err != nil {
		return false, err
	}
	if rootX == rootY {
		return false, nil
	}

	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	return true, nil
}

// Connected reports whether x and y share a component.
func (uf *UnionFind) Connected(x, y int) (bool, error) {
	rootX, err := uf.Find(x)
	if err != nil {
		return false, err
	}
	rootY, err := uf.Find(y)
	if err != nil {
		return false, err
	}
	return rootX == rootY, nil
}

// ComponentSize returns the number of elements sharing x's component.
func (uf *UnionFind) ComponentSize(x int) (int, error) {
	root, err := uf.Find(x)
	if err != nil {
		return 0, err
	}
	return uf.size[root], nil
}

// Components returns all components, each sorted ascending and ordered by
// their smallest member.
func (uf *UnionFind) Components() [][]int {
	index := make(map[int]int)
	var result [][]int
	for x := range uf.parent {
		root, _ := uf.Find(x)
		i, ok := index[root]
		if !ok {
			i = len(result)
			index[root] = i
			result = append(result, nil)
		}
		result[i] = append(result[i], x)
	}
	return result
}
