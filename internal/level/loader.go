package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultID is the level played when none is named.
const DefaultID = "island"

//go:embed levels/*.yaml
var builtin embed.FS

// List returns the built-in levels sorted by ID.
func List() ([]Level, error) {
	entries, err := fs.ReadDir(builtin, "levels")
	if err != nil {
		return nil, fmt.Errorf("level: reading built-in levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(filepath.Ext(e.Name())) {
			continue
		}
		data, err := builtin.ReadFile(path.Join("levels", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("level: reading %s: %w", e.Name(), err)
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("level: parsing %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// Load returns the level named by nameOrPath: a YAML file on disk when the
// name has a level file extension, otherwise the built-in level with that ID.
// An empty name loads DefaultID.
func Load(nameOrPath string) (Level, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultID
	}

	if isSupportedExtension(filepath.Ext(nameOrPath)) {
		return LoadFile(nameOrPath)
	}

	levels, err := List()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == nameOrPath {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level: %w: %s", ErrNotFound, nameOrPath)
}

// LoadFile loads a single level file.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading file %s: %w", p, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing file %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
