// Package formats provides level and state file parsers.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/mirrorgrid/internal/engine"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk shape of a level. A saved state uses the same
// document with Tick and Player.Alive filled in.
type YAMLLevel struct {
	ID         string            `yaml:"id,omitempty"`
	Name       string            `yaml:"name,omitempty"`
	Size       YAMLSize          `yaml:"size,flow,omitempty"`
	Tick       uint64            `yaml:"tick,omitempty"`
	Player     YAMLPlayer        `yaml:"player,flow"`
	Automatic  []YAMLEntity      `yaml:"automatic,omitempty"`
	Deflectors []YAMLDeflector   `yaml:"deflectors,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPlayer is the player placement. Alive is only written for states.
type YAMLPlayer struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"`
	Alive   *bool  `yaml:"alive,omitempty"`
}

// YAMLEntity is one automatic entity.
type YAMLEntity struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"`
}

// YAMLDeflector is one deflector. Shape is "/" or "\" (or "slash", "backslash").
type YAMLDeflector struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Shape string `yaml:"shape"`
}

// Level represents a parsed level ready for use.
// Width and Height are zero when the file has no size.
type Level struct {
	ID         string
	Name       string
	Width      int
	Height     int
	Player     engine.Placement
	Automatic  []engine.Placement
	Deflectors []engine.Deflector
	Metadata   map[string]string
}

// ParseYAML parses a YAML level file. Unknown fields, headings and shapes
// are errors.
func ParseYAML(data []byte) (Level, error) {
	yl, err := decode(data)
	if err != nil {
		return Level{}, err
	}
	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, errors.New("level has no id")
	}
	if yl.Player.Alive != nil || yl.Tick != 0 {
		return Level{}, errors.New("level must not carry tick or player.alive")
	}

	player, err := parsePlayer(yl.Player)
	if err != nil {
		return Level{}, err
	}
	automatic, err := parseEntities(yl.Automatic)
	if err != nil {
		return Level{}, err
	}
	deflectors, err := parseDeflectors(yl.Deflectors)
	if err != nil {
		return Level{}, err
	}

	placements := make([]engine.Placement, len(automatic))
	for i, e := range automatic {
		placements[i] = engine.Placement{Pos: e.Pos, Heading: e.Heading}
	}

	return Level{
		ID:         yl.ID,
		Name:       yl.Name,
		Width:      yl.Size.W,
		Height:     yl.Size.H,
		Player:     engine.Placement{Pos: player.Pos, Heading: player.Heading},
		Automatic:  placements,
		Deflectors: deflectors,
		Metadata:   yl.Metadata,
	}, nil
}

// MarshalState encodes a world state as YAML.
func MarshalState(st engine.State) ([]byte, error) {
	alive := st.Player.Alive()
	yl := YAMLLevel{
		Size: YAMLSize{W: st.Bounds.W, H: st.Bounds.H},
		Tick: st.Tick,
		Player: YAMLPlayer{
			X:       st.Player.Pos.X,
			Y:       st.Player.Pos.Y,
			Heading: st.Player.Heading.String(),
			Alive:   &alive,
		},
		Automatic:  make([]YAMLEntity, len(st.Automatic)),
		Deflectors: make([]YAMLDeflector, len(st.Deflectors)),
	}
	for i, e := range st.Automatic {
		yl.Automatic[i] = YAMLEntity{X: e.Pos.X, Y: e.Pos.Y, Heading: e.Heading.String()}
	}
	for i, d := range st.Deflectors {
		yl.Deflectors[i] = YAMLDeflector{X: d.Pos.X, Y: d.Pos.Y, Shape: d.Orientation.String()}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yl); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalState decodes a state written by MarshalState. The result is not
// validated; pass it to engine.Restore.
func UnmarshalState(data []byte) (engine.State, error) {
	yl, err := decode(data)
	if err != nil {
		return engine.State{}, err
	}

	player, err := parsePlayer(yl.Player)
	if err != nil {
		return engine.State{}, err
	}
	state := engine.PlayerAlive
	if yl.Player.Alive != nil && !*yl.Player.Alive {
		state = engine.PlayerDead
	}

	automatic, err := parseEntities(yl.Automatic)
	if err != nil {
		return engine.State{}, err
	}
	deflectors, err := parseDeflectors(yl.Deflectors)
	if err != nil {
		return engine.State{}, err
	}

	return engine.State{
		Bounds:     engine.Bounds{W: yl.Size.W, H: yl.Size.H},
		Tick:       yl.Tick,
		Player:     engine.Player{Entity: player, State: state},
		Automatic:  automatic,
		Deflectors: deflectors,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func decode(data []byte) (YAMLLevel, error) {
	var yl YAMLLevel
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yl); err != nil {
		if errors.Is(err, io.EOF) {
			return YAMLLevel{}, errors.New("yaml unmarshal: empty document")
		}
		return YAMLLevel{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl, nil
}

func parsePlayer(p YAMLPlayer) (engine.Entity, error) {
	h, ok := engine.ParseHeading(p.Heading)
	if !ok {
		return engine.Entity{}, fmt.Errorf("player: unknown heading %q", p.Heading)
	}
	return engine.Entity{Pos: engine.P(p.X, p.Y), Heading: h, Role: engine.RolePlayer}, nil
}

func parseEntities(in []YAMLEntity) ([]engine.Entity, error) {
	out := make([]engine.Entity, len(in))
	for i, e := range in {
		h, ok := engine.ParseHeading(e.Heading)
		if !ok {
			return nil, fmt.Errorf("automatic #%d: unknown heading %q", i, e.Heading)
		}
		out[i] = engine.Entity{Pos: engine.P(e.X, e.Y), Heading: h, Role: engine.RoleAutomatic}
	}
	return out, nil
}

func parseDeflectors(in []YAMLDeflector) ([]engine.Deflector, error) {
	out := make([]engine.Deflector, len(in))
	for i, d := range in {
		o, ok := engine.ParseOrientation(d.Shape)
		if !ok {
			return nil, fmt.Errorf("deflector #%d: unknown shape %q", i, d.Shape)
		}
		out[i] = engine.Deflector{Pos: engine.P(d.X, d.Y), Orientation: o}
	}
	return out, nil
}
