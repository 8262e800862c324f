// Command analyze prints quick, human-readable summaries of the puzzle
// configurations in a directory (default "configs"). For each file it reports
// tile counts by archetype, which entities sit next to an occupied slot, how
// many rotation-only solutions exist and the cheapest one.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/mcp-training/pathgrid/game/engine"
	"github.com/zyedidia/generic/mapset"
)

// Summary is the analysis of one configuration file.
type Summary struct {
	File        string
	Name        string
	Tiles       map[engine.TileType]int
	Locked      int
	Covered     []engine.Entity // entities whose anchor touches an occupied slot
	StartValid  bool
	Solutions   int
	FewestSteps int
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Printf("Error listing configs: %v\n", err)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		summary, err := analyzeConfig(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printSummary(os.Stdout, summary)
	}
}

func analyzeConfig(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	grid, err := engine.ParseLayout(config.Layout)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	summary := &Summary{
		File:   filepath.Base(path),
		Name:   config.Name,
		Tiles:  make(map[engine.TileType]int),
		Locked: len(config.LockedSlots),
	}

	for _, t := range engine.TileTypes {
		if n := grid.CountType(t); n > 0 {
			summary.Tiles[t] = n
		}
	}
	summary.Covered = coveredEntities(grid)

	network, err := engine.CalculatePathNetwork(grid)
	if err != nil {
		return nil, err
	}
	summary.StartValid = engine.IsValid(network)

	solutions, err := engine.Solve(grid, engine.LockedSet(config.LockedSlots), 0)
	if err != nil {
		return nil, err
	}
	summary.Solutions = len(solutions)
	if len(solutions) > 0 {
		summary.FewestSteps = solutions[0].Steps
	}

	return summary, nil
}

// coveredEntities lists, ascending, the entities anchored on a side of an
// occupied slot. Only these can ever be wired.
func coveredEntities(grid engine.GridState) []engine.Entity {
	covered := mapset.New[engine.Entity]()
	for _, slot := range grid.OccupiedSlots() {
		points, err := engine.SlotToPathPoints(slot)
		if err != nil {
			continue
		}
		for _, p := range points {
			if e, ok := engine.EntityAtPoint(p); ok {
				covered.Put(e)
			}
		}
	}

	entities := make([]engine.Entity, 0, covered.Size())
	covered.Each(func(e engine.Entity) {
		entities = append(entities, e)
	})
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	return entities
}

func printSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "Name: %s\n", s.Name)
	for _, t := range engine.TileTypes {
		if n := s.Tiles[t]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", t, n)
		}
	}
	fmt.Fprintf(w, "Locked slots: %d\n", s.Locked)
	fmt.Fprintf(w, "Entities in reach: %d/%d %v\n", len(s.Covered), engine.EntityCount, s.Covered)

	if s.StartValid {
		fmt.Fprintf(w, "⚠️  WARNING: the starting layout is already solved\n")
	}

	if s.Solutions == 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: no rotation-only solution; players must swap tiles\n")
		return
	}
	fmt.Fprintf(w, "✅ %d rotation-only solutions, fewest %d quarter turns\n", s.Solutions, s.FewestSteps)
}
