package engine

import (
	"fmt"
)

// Setup is the start-of-level input for a world.
type Setup struct {
	Bounds     Bounds
	Player     Placement
	Automatic  []Placement // Level order; this becomes the live-collection order
	Deflectors []Deflector
}

// State is a complete, serializable copy of a world.
type State struct {
	Bounds     Bounds
	Tick       uint64
	Player     Player
	Automatic  []Entity
	Deflectors []Deflector
}

// World is the authoritative simulation state.
//
// Only Advance mutates a World. Queries return copies. A World is not safe
// for concurrent use and Advance must not be re-entered.
type World struct {
	bounds     Bounds
	tick       uint64
	player     Player
	automatic  []Entity
	deflectors *DeflectorIndex
}

// NewWorld creates a world at tick 0 with a living player.
func NewWorld(s Setup) (*World, error) {
	st := State{
		Bounds: s.Bounds,
		Player: Player{
			Entity: Entity{Pos: s.Player.Pos, Heading: s.Player.Heading, Role: RolePlayer},
			State:  PlayerAlive,
		},
		Automatic:  make([]Entity, len(s.Automatic)),
		Deflectors: s.Deflectors,
	}
	for i, a := range s.Automatic {
		st.Automatic[i] = Entity{Pos: a.Pos, Heading: a.Heading, Role: RoleAutomatic}
	}
	return Restore(st)
}

// Restore rebuilds a world from a State, validating it the same way
// NewWorld validates a Setup.
func Restore(s State) (*World, error) {
	if s.Bounds.W <= 0 || s.Bounds.H <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBounds, s.Bounds)
	}

	for i, d := range s.Deflectors {
		if !d.Orientation.Valid() {
			return nil, fmt.Errorf("engine: deflector #%d at %s has invalid orientation %d", i, d.Pos, d.Orientation)
		}
		if !s.Bounds.Contains(d.Pos) {
			return nil, &PlacementError{What: fmt.Sprintf("deflector #%d", i), At: d.Pos, Bounds: s.Bounds}
		}
	}
	idx, err := NewDeflectorIndex(s.Deflectors)
	if err != nil {
		return nil, err
	}

	if !s.Player.Heading.Valid() {
		return nil, fmt.Errorf("engine: player has invalid heading %d", s.Player.Heading)
	}
	if !s.Bounds.Contains(s.Player.Pos) {
		return nil, &PlacementError{What: "player", At: s.Player.Pos, Bounds: s.Bounds}
	}

	automatic := make([]Entity, len(s.Automatic))
	for i, e := range s.Automatic {
		if !e.Heading.Valid() {
			return nil, fmt.Errorf("engine: automatic #%d has invalid heading %d", i, e.Heading)
		}
		if !s.Bounds.Contains(e.Pos) {
			return nil, &PlacementError{What: fmt.Sprintf("automatic #%d", i), At: e.Pos, Bounds: s.Bounds}
		}
		e.Role = RoleAutomatic
		automatic[i] = e
	}

	player := s.Player
	player.Role = RolePlayer

	return &World{
		bounds:     s.Bounds,
		tick:       s.Tick,
		player:     player,
		automatic:  automatic,
		deflectors: idx,
	}, nil
}

// Bounds returns the grid size.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// Tick returns the number of ticks applied so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// Player returns the player.
func (w *World) Player() Player {
	return w.player
}

// Alive reports whether the player is still alive.
func (w *World) Alive() bool {
	return w.player.Alive()
}

// Automatic returns the live automatic entities in stable order.
func (w *World) Automatic() []Entity {
	out := make([]Entity, len(w.automatic))
	copy(out, w.automatic)
	return out
}

// AutomaticCount returns the size of the live collection.
func (w *World) AutomaticCount() int {
	return len(w.automatic)
}

// Deflectors returns the deflectors in registration order.
func (w *World) Deflectors() []Deflector {
	return w.deflectors.List()
}

// DeflectorAt returns the orientation of the deflector on p.
func (w *World) DeflectorAt(p Pos) (Orientation, bool) {
	return w.deflectors.DeflectorAt(p)
}

// StepEntity steps e against this world's deflectors and bounds.
func (w *World) StepEntity(e Entity) (Entity, error) {
	return StepEntity(e, w.deflectors, w.bounds)
}

// State returns a deep copy of the world.
func (w *World) State() State {
	return State{
		Bounds:     w.bounds,
		Tick:       w.tick,
		Player:     w.player,
		Automatic:  w.Automatic(),
		Deflectors: w.Deflectors(),
	}
}

// Clone returns an independent copy of the world.
func (w *World) Clone() *World {
	automatic := make([]Entity, len(w.automatic))
	copy(automatic, w.automatic)
	// The deflector index is immutable after construction and can be shared.
	return &World{
		bounds:     w.bounds,
		tick:       w.tick,
		player:     w.player,
		automatic:  automatic,
		deflectors: w.deflectors,
	}
}
