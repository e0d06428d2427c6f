package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so callers can use errors.Is.
var (
	ErrOutOfBounds           = errors.New("engine: out of bounds")
	ErrConflictingDeflectors = errors.New("engine: conflicting deflectors")
	ErrInvalidBounds         = errors.New("engine: invalid bounds")
)

// BoundsError reports an entity whose next position left the grid during a
// tick. The tick that produced it was not applied.
type BoundsError struct {
	Tick      uint64 // Tick that failed (0 when stepping outside Advance)
	Index     int    // Live-collection index, -1 for the player
	Entity    Entity // Entity before the step
	At        Pos    // Offending cell
	Bounds    Bounds
	Deflected bool // True if the cell was reached after a reflection
}

func (e *BoundsError) Error() string {
	stage := "step"
	if e.Deflected {
		stage = "deflection"
	}
	who := e.Entity.Role.String()
	if e.Entity.Role == RoleAutomatic && e.Index >= 0 {
		who = fmt.Sprintf("%s #%d", who, e.Index)
	}
	return fmt.Sprintf("engine: tick %d: %s at %s heading %s left %s grid by %s to %s",
		e.Tick, who, e.Entity.Pos, e.Entity.Heading, e.Bounds, stage, e.At)
}

// Unwrap makes errors.Is(err, ErrOutOfBounds) hold.
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// PlacementError reports a piece placed outside the grid at construction.
type PlacementError struct {
	What   string // "player", "automatic #2", "deflector #0"
	At     Pos
	Bounds Bounds
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("engine: %s at %s is outside %s grid", e.What, e.At, e.Bounds)
}

// Unwrap makes errors.Is(err, ErrOutOfBounds) hold.
func (e *PlacementError) Unwrap() error {
	return ErrOutOfBounds
}

// DeflectorConflictError reports two deflectors registered on one cell.
type DeflectorConflictError struct {
	At     Pos
	First  Orientation
	Second Orientation
}

func (e *DeflectorConflictError) Error() string {
	return fmt.Sprintf("engine: deflectors %q and %q both at %s", e.First, e.Second, e.At)
}

// Unwrap makes errors.Is(err, ErrConflictingDeflectors) hold.
func (e *DeflectorConflictError) Unwrap() error {
	return ErrConflictingDeflectors
}
