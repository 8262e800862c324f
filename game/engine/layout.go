package engine

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// LayoutRow is one parsed row of layout notation. Rows are written as
// three cells separated by at least one space or tab; "B1B2." is rejected. A cell is "." for an empty slot or a
// kind letter with an optional rotation digit:
//
//	B1 X  .
//	.  T3 .
//	F  .  B
type LayoutRow struct {
	Cells []*LayoutCell `parser:"@@ ( Whitespace @@ )*"`
}

// LayoutCell is one slot of a LayoutRow.
type LayoutCell struct {
	Empty    bool   `parser:"  @Empty"`
	Kind     string `parser:"| @Kind"`
	Rotation *int   `parser:"  @Digit?"`
}

var layoutLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Kind", Pattern: `[BXTF]`},
	{Name: "Digit", Pattern: `[0-9]`},
	{Name: "Empty", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var parseLayoutRow = participle.MustBuild[LayoutRow](
	participle.Lexer(layoutLexer),
)

var kindLetters = map[string]TileType{
	"B": Bend,
	"X": Crossover,
	"T": ThreeWay,
	"F": FourWay,
}

// LetterFor returns the layout letter of an archetype.
func LetterFor(t TileType) string {
	for letter, kind := range kindLetters {
		if kind == t {
			return letter
		}
	}
	return "?"
}

// ParseLayout builds a grid from three layout rows.
func ParseLayout(rows []string) (GridState, error) {
	if len(rows) != GridSide {
		return GridState{}, errors.Wrapf(ErrBadLayout, "layout has %d rows, want %d", len(rows), GridSide)
	}

	var grid GridState
	for r, text := range rows {
		row, err := parseLayoutRow.ParseString("", strings.TrimSpace(text))
		if err != nil {
			return GridState{}, errors.Wrapf(ErrBadLayout, "row %d: %v", r+1, err)
		}
		if len(row.Cells) != GridSide {
			return GridState{}, errors.Wrapf(ErrBadLayout, "row %d has %d cells, want %d", r+1, len(row.Cells), GridSide)
		}

		for c, cell := range row.Cells {
			if cell.Empty {
				continue
			}
			tile := TileData{Type: kindLetters[cell.Kind]}
			if cell.Rotation != nil {
				tile.Rotation = *cell.Rotation
			}
			slot := Slot(r*GridSide + c)
			if grid, err = grid.WithTile(slot, tile); err != nil {
				return GridState{}, errors.Wrapf(err, "row %d col %d", r+1, c+1)
			}
		}
	}
	return grid, nil
}

// FormatLayout renders a grid in the notation accepted by ParseLayout.
// Single-rotation archetypes are written without a digit.
func FormatLayout(grid GridState) []string {
	rows := make([]string, GridSide)
	for r := 0; r < GridSide; r++ {
		cells := make([]string, GridSide)
		for c := 0; c < GridSide; c++ {
			tile, ok, _ := grid.Tile(Slot(r*GridSide + c))
			if !ok {
				cells[c] = "."
				continue
			}
			cells[c] = LetterFor(tile.Type)
			if n, _ := MaxRotations(tile.Type); n > 1 {
				cells[c] += fmt.Sprint(tile.Rotation)
			}
		}
		rows[r] = strings.Join(cells, " ")
	}
	return rows
}
