package engine

import (
	"errors"
	"testing"
)

func TestUnionFind_Basic(t *testing.T) {
	uf := NewUnionFind(PathPointCount)

	merged, err := uf.Union(0, 13)
	if err != nil || !merged {
		t.Fatalf("Union(0, 13) = %v, %v", merged, err)
	}
	if ok, _ := uf.Connected(0, 13); !ok {
		t.Error("0 and 13 should be connected after Union")
	}
	if ok, _ := uf.Connected(0, 4); ok {
		t.Error("0 and 4 should not be connected")
	}

	merged, err = uf.Union(13, 0)
	if err != nil || merged {
		t.Errorf("repeated Union should be a no-op, got %v, %v", merged, err)
	}

	size, _ := uf.ComponentSize(13)
	if size != 2 {
		t.Errorf("expected component size 2, got %d", size)
	}
}

func TestUnionFind_FindIdempotent(t *testing.T) {
	uf := NewUnionFind(10)
	uf.Union(1, 2)
	uf.Union(3, 4)
	uf.Union(2, 4)

	for x := 0; x < uf.Len(); x++ {
		root, _ := uf.Find(x)
		again, _ := uf.Find(root)
		if again != root {
			t.Errorf("Find(Find(%d)) = %d, want %d", x, again, root)
		}
		if second, _ := uf.Find(x); second != root {
			t.Errorf("Find(%d) changed from %d to %d", x, root, second)
		}
	}
}

func TestUnionFind_LongChain(t *testing.T) {
	const n = 1000
	uf := NewUnionFind(n)
	for i := 0; i+1 < n; i++ {
		if _, err := uf.Union(i, i+1); err != nil {
			t.Fatalf("Union(%d, %d): %v", i, i+1, err)
		}
	}

	root, _ := uf.Find(0)
	for i := 0; i < n; i++ {
		if r, _ := uf.Find(i); r != root {
			t.Fatalf("element %d has root %d, want %d", i, r, root)
		}
	}
	if size, _ := uf.ComponentSize(n - 1); size != n {
		t.Errorf("expected one component of %d, got %d", n, size)
	}
}

func TestUnionFind_OutOfRange(t *testing.T) {
	uf := NewUnionFind(4)

	if _, err := uf.Find(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Find(4): expected ErrOutOfRange, got %v", err)
	}
	if _, err := uf.Find(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Find(-1): expected ErrOutOfRange, got %v", err)
	}
	if _, err := uf.Union(0, 9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Union(0, 9): expected ErrOutOfRange, got %v", err)
	}
	if _, err := uf.Connected(9, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Connected(9, 0): expected ErrOutOfRange, got %v", err)
	}
}

func TestUnionFind_Components(t *testing.T) {
	uf := NewUnionFind(6)
	uf.Union(5, 1)
	uf.Union(3, 4)
	uf.Union(4, 1)

	components := uf.Components()
	if len(components) != 3 {
		t.Fatalf("expected 3 components, got %v", components)
	}
	expected := [][]int{{0}, {1, 3, 4, 5}, {2}}
	for i, want := range expected {
		got := components[i]
		if len(got) != len(want) {
			t.Fatalf("component %d: expected %v, got %v", i, want, got)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("component %d: expected %v, got %v", i, want, got)
				break
			}
		}
	}
}
