// Package levels provides level loading for mirrorgrid.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/mirrorgrid/internal/engine"
	"github.com/vovakirdan/mirrorgrid/internal/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultBounds is used for level files without a size.
var DefaultBounds = engine.Bounds{W: 40, H: 13}

// ErrNotFound is returned by LoadByID for unknown IDs.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID         string
	Name       string
	Bounds     engine.Bounds
	Player     engine.Placement
	Automatic  []engine.Placement
	Deflectors []engine.Deflector
	Metadata   map[string]string
	FilePath   string
}

// Setup returns the engine setup for the level. Slices are copied so the
// level can be reused.
func (l *Level) Setup() engine.Setup {
	automatic := make([]engine.Placement, len(l.Automatic))
	copy(automatic, l.Automatic)
	deflectors := make([]engine.Deflector, len(l.Deflectors))
	copy(deflectors, l.Deflectors)

	return engine.Setup{
		Bounds:     l.Bounds,
		Player:     l.Player,
		Automatic:  automatic,
		Deflectors: deflectors,
	}
}

// NewWorld creates a fresh world from this level.
func (l *Level) NewWorld() (*engine.World, error) {
	return engine.NewWorld(l.Setup())
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root        string
	DefaultSize engine.Bounds

	fsys fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, DefaultSize: DefaultBounds, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{Root: "builtin", DefaultSize: DefaultBounds, fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic
// ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file. name is relative to the loader root.
// The level is validated by building a world from it.
func (l *Loader) LoadFile(name string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", name, err)
	}

	display := path.Join(filepath.ToSlash(l.Root), name)

	ext := strings.ToLower(path.Ext(name))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", display, err)
	}

	bounds := engine.Bounds{W: parsed.Width, H: parsed.Height}
	if bounds.W == 0 && bounds.H == 0 {
		bounds = l.DefaultSize
	}

	level := Level{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Bounds:     bounds,
		Player:     parsed.Player,
		Automatic:  parsed.Automatic,
		Deflectors: parsed.Deflectors,
		Metadata:   parsed.Metadata,
		FilePath:   display,
	}

	if _, err := level.NewWorld(); err != nil {
		return Level{}, fmt.Errorf("level %s (%s): %w", level.ID, display, err)
	}

	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads one level file from disk by path.
func LoadPath(p string, defaultSize engine.Bounds) (Level, error) {
	l := NewLoader(filepath.Dir(p))
	l.DefaultSize = defaultSize
	return l.LoadFile(filepath.Base(p))
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
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
