// Package engine implements the mirrorgrid tick simulation.
// It is UI-agnostic and deterministic: the same world advanced the same
// number of times always ends in the same state.
package engine

import (
	"fmt"
	"strings"
)

// Heading is the direction an entity travels in.
type Heading uint8

const (
	HeadingUp Heading = iota
	HeadingRight
	HeadingDown
	HeadingLeft
)

// String returns the lowercase name used in level files.
func (h Heading) String() string {
	switch h {
	case HeadingUp:
		return "up"
	case HeadingRight:
		return "right"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset of one step.
// Up decreases Y, Down increases Y (screen coordinates).
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case HeadingUp:
		return 0, -1
	case HeadingRight:
		return 1, 0
	case HeadingDown:
		return 0, 1
	case HeadingLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether h is one of the four cardinal headings.
func (h Heading) Valid() bool {
	return h <= HeadingLeft
}

// ParseHeading parses "up", "down", "left" or "right" (case-insensitive).
func ParseHeading(s string) (Heading, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return HeadingUp, true
	case "right":
		return HeadingRight, true
	case "down":
		return HeadingDown, true
	case "left":
		return HeadingLeft, true
	default:
		return 0, false
	}
}

// Orientation is the diagonal a deflector is drawn along.
type Orientation uint8

const (
	Backslash Orientation = iota // "\"
	Slash                        // "/"
)

// Rune returns the glyph for the orientation.
func (o Orientation) Rune() rune {
	if o == Slash {
		return '/'
	}
	return '\\'
}

// String returns the glyph as a string.
func (o Orientation) String() string {
	return string(o.Rune())
}

// Valid reports whether o is Backslash or Slash.
func (o Orientation) Valid() bool {
	return o == Backslash || o == Slash
}

// ParseOrientation accepts the glyphs "\" and "/" or the words
// "backslash" and "slash".
func ParseOrientation(s string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "\\", "backslash":
		return Backslash, true
	case "/", "slash":
		return Slash, true
	default:
		return 0, false
	}
}

// Reflect returns the heading an entity leaves the deflector with when it
// arrives travelling h. The table models a 45 degree mirror.
func (o Orientation) Reflect(h Heading) Heading {
	if o == Slash {
		switch h {
		case HeadingUp:
			return HeadingRight
		case HeadingDown:
			return HeadingLeft
		case HeadingLeft:
			return HeadingDown
		case HeadingRight:
			return HeadingUp
		}
		return h
	}
	switch h {
	case HeadingUp:
		return HeadingLeft
	case HeadingDown:
		return HeadingRight
	case HeadingLeft:
		return HeadingUp
	case HeadingRight:
		return HeadingDown
	}
	return h
}

// Pos is a cell on the grid.
// X increases to the right, Y increases downward.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring cell in direction h.
func (p Pos) Step(h Heading) Pos {
	dx, dy := h.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Bounds is the size of the grid in cells.
type Bounds struct {
	W int
	H int
}

// Contains reports whether p lies in [0,W) x [0,H).
func (b Bounds) Contains(p Pos) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// String returns "WxH".
func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.W, b.H)
}

// Role tags a mobile entity as the player or an automatic entity.
type Role uint8

const (
	RolePlayer Role = iota
	RoleAutomatic
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleAutomatic:
		return "automatic"
	default:
		return "unknown"
	}
}

// Entity is a mobile piece: a position, a heading and a role.
type Entity struct {
	Pos     Pos
	Heading Heading
	Role    Role
}

// PlayerState is the player's life cycle. Dead is terminal.
type PlayerState uint8

const (
	PlayerAlive PlayerState = iota
	PlayerDead
)

// String returns the state name.
func (s PlayerState) String() string {
	if s == PlayerDead {
		return "dead"
	}
	return "alive"
}

// Player is the single manually driven entity.
type Player struct {
	Entity
	State PlayerState
}

// Alive reports whether the player has not been hit yet.
func (p Player) Alive() bool {
	return p.State == PlayerAlive
}

// Deflector is a fixed cell that turns entities entering it.
type Deflector struct {
	Pos         Pos
	Orientation Orientation
}

// Placement is a starting position and heading.
type Placement struct {
	Pos     Pos
	Heading Heading
}
