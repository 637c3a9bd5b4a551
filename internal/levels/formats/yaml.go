// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows,omitempty"`
	Blocks   []YAMLBlock       `yaml:"blocks,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLBlock is a block placed in field coordinates.
type YAMLBlock struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	W          float64 `yaml:"w"`
	H          float64 `yaml:"h"`
	Kind       string  `yaml:"kind"` // destructible, bonus, multi-hit, indestructible
	Resistance int     `yaml:"resistance,omitempty"`
	Color      string  `yaml:"color,omitempty"`
}

// Level is a parsed level plus the file's free-form metadata.
type Level struct {
	arena.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	for i, row := range yl.Rows {
		if bad := strings.Trim(row, ".#Bb23456789Xx"); bad != "" {
			return Level{}, fmt.Errorf("row %d: unknown block characters %q", i+1, bad)
		}
	}

	specs := make([]arena.BlockSpec, 0, len(yl.Blocks))
	for i, b := range yl.Blocks {
		cat, ok := parseCategory(b.Kind)
		if !ok {
			return Level{}, fmt.Errorf("block %d: unknown kind %q", i+1, b.Kind)
		}
		if b.W <= 0 || b.H <= 0 {
			return Level{}, fmt.Errorf("block %d: size must be positive", i+1)
		}
		res := b.Resistance
		if res == 0 && cat != arena.CategoryIndestructible {
			res = 1
		}
		color := core.ColorByName(b.Color)
		if color == core.ColorDefault {
			color = core.ColorCyan
		}
		specs = append(specs, arena.BlockSpec{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Resistance: res,
			Category:   cat,
			Color:      color,
		})
	}

	lvl := arena.ParseLevel(yl.ID, name, yl.Rows)
	lvl.Specs = specs
	return Level{Level: lvl, Metadata: yl.Metadata}, nil
}

func parseCategory(kind string) (arena.Category, bool) {
	switch strings.ToLower(kind) {
	case "", "destructible", "normal":
		return arena.CategoryDestructible, true
	case "bonus":
		return arena.CategoryBonus, true
	case "multi-hit", "multihit", "hard":
		return arena.CategoryMultiHit, true
	case "indestructible", "solid":
		return arena.CategoryIndestructible, true
	default:
		return 0, false
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
