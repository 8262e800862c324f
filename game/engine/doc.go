// Package engine provides the path network engine of the tile puzzle.
//
// The engine package implements:
//   - The fixed 3x3 grid topology: 9 slots, 24 path points and 12 entities
//   - The tile catalogue (bend, crossover, three-way, four-way) and rotation
//   - Immutable GridState snapshots and the moves that produce them
//   - Network construction by union-find over path points
//   - Degree validation of the resulting network
//   - Puzzle configuration loading, layout notation and a rotation solver
//
// Core Types:
//
// GridState is an immutable snapshot of the 9 slots. CalculatePathNetwork
// turns a GridState into a PathNetworkState, which IsValid and Validate
// check against the degree rule: entity points accept 0 or 1 connection,
// every other point 0 or 2. GameEngine holds the current GridState of one
// puzzle and replaces it after every accepted move.
//
// Usage:
//
//	grid, err := engine.ParseLayout([]string{"B0 B3 .", ". . .", ". . ."})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	network, err := engine.CalculatePathNetwork(grid)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, v := range engine.Validate(network) {
//		fmt.Printf("point %d: %s (degree %d)\n", v.Point, v.Reason, v.Degree)
//	}
//
// Topology:
//
// Path points are the edges of the grid. Horizontal edges are numbered
// 0..11 row by row, vertical edges 12..23 row by row. Slot s owns
// [top, right, bottom, left]; slot 0 is [0, 13, 3, 12]. Adjacent slots
// share the edge between them, which is how paths cross slot boundaries.
// The 12 perimeter edges carry the entities, numbered clockwise from the
// top-left corner.
package engine
