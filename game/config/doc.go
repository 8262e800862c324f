// Package config provides puzzle configuration management.
//
// The config package handles:
//   - Loading puzzle configurations from JSON files
//   - Validation, including a solvability check
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Puzzles are stored as JSON files in the configs directory. Each one
// defines a starting layout in row notation (B=bend, X=crossover,
// T=three-way, F=four-way, optional rotation digit, "." for an empty
// slot), the slots the player may not touch, and the messages shown
// after moves.
//
//	{
//	  "name": "Classic",
//	  "description": "Three paths across a full board",
//	  "layout": ["X1 B0 B3", "B2 X0 B1", "B0 B0 B2"],
//	  "locked_slots": [4],
//	  "messages": {"welcome": "...", "valid": "...", "invalid": "%d points are broken"}
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	puzzle, err := manager.LoadConfig("loop")
//	defaultPuzzle := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default puzzle is classic.json when present, otherwise the first
// valid file in the directory, otherwise engine.DefaultPuzzleConfig.
package config
