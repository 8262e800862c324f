package engine

import "fmt"

// Slot identifies one cell of the 3x3 grid, numbered row-major.
type Slot int

// PathPoint identifies one of the 24 grid edges where tile paths meet.
type PathPoint int

// Entity identifies one of the 12 fixed terminals on the grid perimeter.
type Entity int

const (
	GridSide       = 3
	SlotCount      = GridSide * GridSide
	PathPointCount = 24
	EntityCount    = 12

	// Horizontal edges occupy 0..11, vertical edges 12..23.
	horizontalEdges = GridSide * (GridSide + 1)
)

// slotPoints is indexed [slot][AnchorSide].
var slotPoints [SlotCount][4]PathPoint

// entityPoints lists entity anchors clockwise from the top-left corner.
var entityPoints = [EntityCount]PathPoint{
	0, 1, 2, // top edge
	15, 19, 23, // right edge
	11, 10, 9, // bottom edge
	20, 16, 12, // left edge
}

var pointEntity [PathPointCount]Entity

func init() {
	for s := 0; s < SlotCount; s++ {
		row, col := s/GridSide, s%GridSide
		slotPoints[s] = [4]PathPoint{
			Top:    PathPoint(GridSide*row + col),
			Right:  PathPoint(horizontalEdges + (GridSide+1)*row + col + 1),
			Bottom: PathPoint(GridSide*(row+1) + col),
			Left:   PathPoint(horizontalEdges + (GridSide+1)*row + col),
		}
	}

	for p := range pointEntity {
		pointEntity[p] = -1
	}
	for e, p := range entityPoints {
		pointEntity[p] = Entity(e)
	}
}

// Valid reports whether the slot lies inside the grid.
func (s Slot) Valid() bool { return s >= 0 && s < SlotCount }

// Valid reports whether the point is one of the 24 grid edges.
func (p PathPoint) Valid() bool { return p >= 0 && p < PathPointCount }

// Valid reports whether the entity is one of the 12 perimeter terminals.
func (e Entity) Valid() bool { return e >= 0 && e < EntityCount }

// SlotToPathPoints returns the path points around a slot ordered
// top, right, bottom, left.
func SlotToPathPoints(slot Slot) ([4]PathPoint, error) {
	if !slot.Valid() {
		return [4]PathPoint{}, fmt.Errorf("slot %d: %w", slot, ErrOutOfRange)
	}
	return slotPoints[slot], nil
}

// EntityAtPoint returns the entity anchored at a point, if any.
func EntityAtPoint(point PathPoint) (Entity, bool) {
	if !point.Valid() {
		return -1, false
	}
	e := pointEntity[point]
	return e, e >= 0
}

// PointForEntity returns the path point an entity is anchored to.
func PointForEntity(entity Entity) (PathPoint, error) {
	if !entity.Valid() {
		return -1, fmt.Errorf("entity %d: %w", entity, ErrInvalidEntity)
	}
	return entityPoints[entity], nil
}

// IsEntityPoint reports whether an entity is anchored at the point.
func IsEntityPoint(point PathPoint) bool {
	_, ok := EntityAtPoint(point)
	return ok
}

// IsValidConnectionCount reports whether degree is legal for the point.
// Entity points accept 0 or 1 connection; every other point accepts 0 or 2.
func IsValidConnectionCount(point PathPoint, degree int) bool {
	if IsEntityPoint(point) {
		return degree == 0 || degree == 1
	}
	return degree == 0 || degree == 2
}

// SlotsAtPoint returns the slots whose edges include the point. Perimeter
// points touch one slot and interior points touch two.
func SlotsAtPoint(point PathPoint) []Slot {
	var slots []Slot
	for s := Slot(0); s < SlotCount; s++ {
		for _, p := range slotPoints[s] {
			if p == point {
				slots = append(slots, s)
			}
		}
	}
	return slots
}
