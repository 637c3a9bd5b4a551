package arena

import (
	"fmt"

	"github.com/vovakirdan/blockpong/internal/core"
)

// Block grid placement, as fractions of the field.
const (
	gridWidthFrac  = 0.36
	gridHeightFrac = 0.84
	blockGap       = 2.0
)

// Level is a block layout. Rows are laid out in a grid centered in the
// field; Specs are placed verbatim in field coordinates.
type Level struct {
	ID    string
	Name  string
	Rows  []string
	Specs []BlockSpec
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = destructible block
//	'B' = bonus block, drops an item
//	'2'-'9' = multi-hit block with that resistance
//	'X' = indestructible block
//	'.' = empty
func ParseLevel(id, name string, rows []string) Level {
	return Level{ID: id, Name: name, Rows: rows}
}

// Columns returns the width of the widest row.
func (l Level) Columns() int {
	cols := 0
	for _, row := range l.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// Blocks lays the level out for a field of the given size.
func (l Level) Blocks(fieldW, fieldH float64) ([]BlockSpec, error) {
	specs := make([]BlockSpec, 0, len(l.Specs)+len(l.Rows)*l.Columns())

	if cols := l.Columns(); cols > 0 {
		gridW := fieldW * gridWidthFrac
		gridH := fieldH * gridHeightFrac
		cellW := gridW / float64(cols)
		cellH := gridH / float64(len(l.Rows))
		if cellW <= blockGap || cellH <= blockGap {
			return nil, fmt.Errorf("%w: level %q does not fit a %vx%v field", ErrInvalidConfig, l.ID, fieldW, fieldH)
		}
		originX := (fieldW - gridW) / 2
		originY := (fieldH - gridH) / 2

		for row, line := range l.Rows {
			for col := range len(line) {
				cat, res, ok := blockForRune(line[col])
				if !ok {
					continue
				}
				specs = append(specs, BlockSpec{
					X:          originX + float64(col)*cellW + blockGap/2,
					Y:          originY + float64(row)*cellH + blockGap/2,
					W:          cellW - blockGap,
					H:          cellH - blockGap,
					Resistance: res,
					Category:   cat,
					Color:      colorFor(cat, res),
				})
			}
		}
	}

	return append(specs, l.Specs...), nil
}

func blockForRune(ch byte) (Category, int, bool) {
	switch {
	case ch == '#':
		return CategoryDestructible, 1, true
	case ch == 'B' || ch == 'b':
		return CategoryBonus, 1, true
	case ch >= '2' && ch <= '9':
		return CategoryMultiHit, int(ch - '0'), true
	case ch == 'X' || ch == 'x':
		return CategoryIndestructible, 0, true
	default:
		return 0, 0, false
	}
}

func colorFor(cat Category, res int) core.Color {
	switch cat {
	case CategoryIndestructible:
		return core.ColorGray
	case CategoryBonus:
		return core.ColorYellow
	case CategoryMultiHit:
		if res >= 3 {
			return core.ColorRed
		}
		return core.ColorOrange
	default:
		return core.ColorCyan
	}
}

// BuiltinLevels returns all built-in levels.
func BuiltinLevels() []Level {
	return []Level{
		// Plain pong, no blocks
		ParseLevel("open", "Open Court", nil),

		ParseLevel("wall", "The Wall", []string{
			"####",
			"####",
			"####",
			"##B#",
			"####",
			"####",
			"#B##",
			"####",
			"####",
			"####",
		}),

		ParseLevel("checker", "Checkerboard", []string{
			"#.#.#",
			".B.#.",
			"#.#.#",
			".#.#.",
			"#.B.#",
			".#.#.",
			"#.#.#",
			".#.B.",
			"#.#.#",
		}),

		ParseLevel("bonus", "Bonanza", []string{
			"B..B",
			".##.",
			"#BB#",
			".##.",
			"B..B",
			".##.",
			"#BB#",
			".##.",
			"B..B",
		}),

		// Hard core behind an indestructible shell with gates
		ParseLevel("fortress", "Fortress", []string{
			"XX.XX",
			"X...X",
			"..3..",
			"X.2B.",
			"X323X",
			".B2.X",
			"..3..",
			"X...X",
			"XX.XX",
		}),

		ParseLevel("gates", "Gates", []string{
			"X#X",
			"#2#",
			"X#X",
			"...",
			"XBX",
			"...",
			"X#X",
			"#2#",
			"X#X",
		}),
	}
}

// LevelByID finds a built-in level.
func LevelByID(id string) (Level, bool) {
	for _, l := range BuiltinLevels() {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}
