package engine

import (
	"reflect"
	"testing"
)

func mustGrid(t *testing.T, tiles map[Slot]TileData) GridState {
	t.Helper()
	g, err := NewGridState(tiles)
	if err != nil {
		t.Fatalf("NewGridState: %v", err)
	}
	return g
}

func mustNetwork(t *testing.T, g GridState) PathNetworkState {
	t.Helper()
	n, err := CalculatePathNetwork(g)
	if err != nil {
		t.Fatalf("CalculatePathNetwork: %v", err)
	}
	return n
}

func assertDegrees(t *testing.T, n PathNetworkState, want map[PathPoint]int) {
	t.Helper()
	for p := PathPoint(0); p < PathPointCount; p++ {
		if got := n.Degrees[p]; got != want[p] {
			t.Errorf("point %d: expected degree %d, got %d", p, want[p], got)
		}
	}
}

func TestCalculatePathNetwork_EmptyGrid(t *testing.T) {
	n := mustNetwork(t, GridState{})

	if n.TotalDegree() != 0 {
		t.Errorf("expected no connections, got total degree %d", n.TotalDegree())
	}
	for p := PathPoint(0); p < PathPointCount; p++ {
		if c, _ := n.Component(p); c != p {
			t.Errorf("point %d should be its own component, got %d", p, c)
		}
	}
	if !IsValid(n) {
		t.Error("empty grid should be valid")
	}
	if len(n.Paths()) != 0 {
		t.Errorf("expected no paths, got %v", n.Paths())
	}
}

func TestCalculatePathNetwork_SingleBend(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{0: {Type: Bend, Rotation: 0}}))

	if ok, _ := n.Connected(0, 13); !ok {
		t.Error("expected points 0 and 13 to be connected")
	}
	assertDegrees(t, n, map[PathPoint]int{0: 1, 13: 1})

	// Point 0 is entity E0 and legal at degree 1. Point 13 sits between
	// slots 0 and 1 and is left dangling until slot 1 continues the path.
	violations := Validate(n)
	if len(violations) != 1 || violations[0].Point != 13 || violations[0].Reason != DeadEnd {
		t.Errorf("expected a single dead end at 13, got %+v", violations)
	}
}

func TestCalculatePathNetwork_ChainedBends(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{
		0: {Type: Bend, Rotation: 0}, // 0 - 13
		1: {Type: Bend, Rotation: 2}, // 4 - 13
	}))

	members, _ := n.Members(13)
	if !reflect.DeepEqual(members, []PathPoint{0, 4, 13}) {
		t.Errorf("expected component {0, 4, 13}, got %v", members)
	}
	assertDegrees(t, n, map[PathPoint]int{0: 1, 4: 1, 13: 2})

	if !IsValidConnectionCount(13, 2) {
		t.Error("degree 2 at non-entity point 13 should be legal")
	}
	violations := Validate(n)
	if len(violations) != 1 || violations[0].Point != 4 {
		t.Errorf("expected only point 4 to dangle, got %+v", violations)
	}
}

func TestCalculatePathNetwork_EntityToEntity(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{
		0: {Type: Bend, Rotation: 0}, // 0 - 13
		1: {Type: Bend, Rotation: 3}, // 13 - 1
	}))

	if !IsValid(n) {
		t.Fatalf("expected a valid network, got %+v", Validate(n))
	}
	if got := n.ConnectedEntities(); !reflect.DeepEqual(got, [][]Entity{{0, 1}}) {
		t.Errorf("expected E0 connected to E1, got %v", got)
	}
}

func TestCalculatePathNetwork_ClosedLoop(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{
		0: {Type: Bend, Rotation: 1}, // 13 - 3
		1: {Type: Bend, Rotation: 2}, // 4 - 13
		3: {Type: Bend, Rotation: 0}, // 3 - 17
		4: {Type: Bend, Rotation: 3}, // 17 - 4
	}))

	assertDegrees(t, n, map[PathPoint]int{3: 2, 4: 2, 13: 2, 17: 2})
	if !IsValid(n) {
		t.Errorf("a closed interior loop should be valid, got %+v", Validate(n))
	}
	if got := n.Paths(); !reflect.DeepEqual(got, [][]PathPoint{{3, 4, 13, 17}}) {
		t.Errorf("expected one loop component, got %v", got)
	}
	if len(n.ConnectedEntities()) != 0 {
		t.Error("an interior loop touches no entities")
	}
}

func TestCalculatePathNetwork_CrossoverKeepsPathsApart(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{4: {Type: Crossover}}))

	// Slot 4 anchors: top 4, right 18, bottom 7, left 17.
	if ok, _ := n.Connected(4, 7); !ok {
		t.Error("expected the vertical strand 4-7")
	}
	if ok, _ := n.Connected(17, 18); !ok {
		t.Error("expected the horizontal strand 17-18")
	}
	if ok, _ := n.Connected(4, 17); ok {
		t.Error("crossover strands must not join")
	}
	assertDegrees(t, n, map[PathPoint]int{4: 1, 7: 1, 17: 1, 18: 1})
	if len(Validate(n)) != 4 {
		t.Errorf("expected four dead ends, got %+v", Validate(n))
	}
}

func TestCalculatePathNetwork_ThreeWay(t *testing.T) {
	n := mustNetwork(t, mustGrid(t, map[Slot]TileData{4: {Type: ThreeWay}}))

	assertDegrees(t, n, map[PathPoint]int{4: 2, 18: 2, 7: 2})
	if !IsValid(n) {
		t.Errorf("three-way degrees are all 2, got %+v", Validate(n))
	}
}

// A four-way is one fully connected group, so every interior point touched
// by two of them ends up with degree 6 and the grid is never valid. The test
// pins that modelling choice along with the run completing cleanly.
func TestCalculatePathNetwork_DenseFourWay(t *testing.T) {
	tiles := make(map[Slot]TileData)
	for s := Slot(0); s < SlotCount; s++ {
		tiles[s] = TileData{Type: FourWay}
	}
	n := mustNetwork(t, mustGrid(t, tiles))

	for p := PathPoint(0); p < PathPointCount; p++ {
		want := 6
		if IsEntityPoint(p) {
			want = 3
		}
		if n.Degrees[p] != want {
			t.Errorf("point %d: expected degree %d, got %d", p, want, n.Degrees[p])
		}
	}
	if len(n.Paths()) != 1 {
		t.Errorf("expected one component, got %d", len(n.Paths()))
	}
	if len(Validate(n)) != PathPointCount {
		t.Errorf("every point should be flagged, got %d", len(Validate(n)))
	}
}

func TestCalculatePathNetwork_Deterministic(t *testing.T) {
	g := mustGrid(t, map[Slot]TileData{
		0: {Type: Crossover, Rotation: 1},
		2: {Type: ThreeWay, Rotation: 3},
		4: {Type: Bend, Rotation: 2},
		7: {Type: FourWay},
	})

	first := mustNetwork(t, g)
	for i := 0; i < 10; i++ {
		if again := mustNetwork(t, g); again != first {
			t.Fatalf("run %d produced a different network", i)
		}
	}
}

func BenchmarkCalculatePathNetwork_DenseFourWay(b *testing.B) {
	tiles := make(map[Slot]TileData)
	for s := Slot(0); s < SlotCount; s++ {
		tiles[s] = TileData{Type: FourWay}
	}
	g, err := NewGridState(tiles)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CalculatePathNetwork(g); err != nil {
			b.Fatal(err)
		}
	}
}
