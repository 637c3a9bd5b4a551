// Package levels loads arena levels from disk and merges them with the
// built-in set. The simulation core never reads files itself.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/levels/formats"
)

// Level represents a level definition and where it came from.
type Level struct {
	arena.Level
	Metadata map[string]string
	FilePath string // Empty for built-in levels
}

// Builtin reports whether the level ships with the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader. An empty root loads nothing from disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// DefaultRoot returns ~/.blockpong/levels, or empty if home is unavailable.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockpong", "levels")
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	if l.Root == "" {
		return nil, nil
	}
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	return Level{
		Level:    parsed.Level,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// Catalog returns the built-in levels followed by disk levels. A disk level
// with the same ID as a built-in one replaces it in place.
func (l *Loader) Catalog() ([]Level, error) {
	disk, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	var all []Level
	for _, b := range arena.BuiltinLevels() {
		all = append(all, Level{Level: b})
	}
	for _, d := range disk {
		idx := slices.IndexFunc(all, func(x Level) bool { return x.ID == d.ID })
		if idx >= 0 {
			all[idx] = d
			continue
		}
		all = append(all, d)
	}
	return all, nil
}

// LoadByID finds a level by ID among built-in and disk levels.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.Catalog()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in catalog order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.Catalog()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
