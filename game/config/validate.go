package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/pathgrid/game/engine"
)

// FileReport captures the outcome of validating a single configuration file.
// Errors lists every problem found; Notes carries informational lines and is
// only filled for valid files.
type FileReport struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}

func (r *FileReport) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ValidateFile loads a configuration JSON file and checks its structure,
// layout, locked slots, messages and solvability. Unlike LoadConfig it keeps
// going after the first problem so a report lists everything wrong at once.
func ValidateFile(path string) FileReport {
	report := FileReport{
		File:  filepath.Base(path),
		Valid: true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.fail("Failed to read file: %v", err)
		return report
	}

	var config engine.PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		report.fail("Invalid JSON: %v", err)
		return report
	}

	if config.Name == "" {
		report.fail("name is required")
	}
	if config.Description == "" {
		report.fail("description is required")
	}

	grid, err := engine.ParseLayout(config.Layout)
	if err != nil {
		report.fail("Invalid layout: %v", err)
	} else if grid.TileCount() == 0 {
		report.fail("Layout has no tiles")
	}

	for _, s := range config.LockedSlots {
		if !s.Valid() {
			report.fail("Locked slot %d is outside 0-%d", s, engine.SlotCount-1)
		} else if err == nil && !grid.Occupied(s) {
			report.fail("Locked slot %d is empty", s)
		}
	}

	if config.Messages.Welcome == "" {
		report.fail("Missing required message: welcome")
	}
	if config.Messages.Valid == "" {
		report.fail("Missing required message: valid")
	}
	if !strings.Contains(config.Messages.Invalid, "%d") {
		report.fail("Message 'invalid' must contain %%d")
	}

	if !report.Valid {
		return report
	}

	// Everything structural passed, so the remaining engine check is solvability.
	if err := engine.ValidatePuzzleConfig(&config); err != nil {
		report.fail("%v", err)
		return report
	}

	solutions, err := engine.Solve(grid, engine.LockedSet(config.LockedSlots), 0)
	if err != nil {
		report.fail("Solver failed: %v", err)
		return report
	}

	report.Notes = append(report.Notes,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Tiles: %d (%s)", grid.TileCount(), tileBreakdown(grid)),
		fmt.Sprintf("✓ Locked slots: %d", len(config.LockedSlots)),
		fmt.Sprintf("✓ Solutions: %d (fewest %d quarter turns)", len(solutions), solutions[0].Steps),
	)
	if engine.IsValid(networkOf(grid)) {
		report.Notes = append(report.Notes, "⚠ Starting layout is already solved")
	}

	return report
}

// ValidateDir validates every *.json file in dir, sorted by file name.
func ValidateDir(dir string) ([]FileReport, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}

	reports := make([]FileReport, 0, len(files))
	for _, file := range files {
		reports = append(reports, ValidateFile(file))
	}
	return reports, nil
}

func tileBreakdown(grid engine.GridState) string {
	parts := make([]string, 0, len(engine.TileTypes))
	for _, t := range engine.TileTypes {
		if n := grid.CountType(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", engine.LetterFor(t), n))
		}
	}
	return strings.Join(parts, " ")
}

func networkOf(grid engine.GridState) engine.PathNetworkState {
	network, _ := engine.CalculatePathNetwork(grid)
	return network
}
