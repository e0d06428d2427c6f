package engine

import "errors"

// TickReport describes what one call to Advance did.
type TickReport struct {
	Tick       uint64 // World tick after the call
	Applied    bool   // False when the player was already dead
	PlayerDied bool
	Collider   int   // Index of the automatic entity that hit the player, -1 if none
	Removed    []int // Pre-removal indices of destroyed automatic entities, ascending
}

// Advance applies exactly one tick.
//
// The player steps first. Automatic entities then step in live-collection
// order; an entity sitting on the player's new cell, or stepping onto it,
// kills the player and ends the tick without stepping any later entity.
// Otherwise every group of automatic entities sharing a cell is removed.
//
// Advance on a dead player is a no-op. If any entity would leave the grid
// the tick is abandoned, the world is left untouched and the returned error
// wraps ErrOutOfBounds.
func (w *World) Advance() (TickReport, error) {
	if !w.player.Alive() {
		return TickReport{Tick: w.tick, Collider: -1}, nil
	}

	tick := w.tick + 1

	player, err := StepEntity(w.player.Entity, w.deflectors, w.bounds)
	if err != nil {
		return TickReport{Tick: w.tick, Collider: -1}, annotate(err, tick, -1)
	}

	next := make([]Entity, len(w.automatic))
	copy(next, w.automatic)

	report := TickReport{Tick: tick, Applied: true, Collider: -1}
	for i := range next {
		if next[i].Pos == player.Pos {
			report.PlayerDied = true
			report.Collider = i
			break
		}

		stepped, err := StepEntity(next[i], w.deflectors, w.bounds)
		if err != nil {
			return TickReport{Tick: w.tick, Collider: -1}, annotate(err, tick, i)
		}
		next[i] = stepped

		if stepped.Pos == player.Pos {
			report.PlayerDied = true
			report.Collider = i
			break
		}
	}

	if !report.PlayerDied {
		report.Removed = collisions(next)
		next = retain(next, report.Removed)
	}

	// Commit.
	w.player.Entity = player
	if report.PlayerDied {
		w.player.State = PlayerDead
	}
	w.automatic = next
	w.tick = tick

	return report, nil
}

// Run advances up to maxTicks times. It stops early when the player dies or
// a tick fails, and returns the number of ticks applied.
func (w *World) Run(maxTicks int) (int, error) {
	applied := 0
	for applied < maxTicks && w.player.Alive() {
		if _, err := w.Advance(); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// collisions returns the ascending indices of every entity that shares its
// cell with at least one other entity.
func collisions(entities []Entity) []int {
	doomed := make([]bool, len(entities))
	found := false
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if entities[i].Pos == entities[j].Pos {
				doomed[i] = true
				doomed[j] = true
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	var out []int
	for i, d := range doomed {
		if d {
			out = append(out, i)
		}
	}
	return out
}

// retain returns the entities whose indices are not in removed, keeping
// their order. removed must be ascending.
func retain(entities []Entity, removed []int) []Entity {
	if len(removed) == 0 {
		return entities
	}
	out := make([]Entity, 0, len(entities)-len(removed))
	r := 0
	for i, e := range entities {
		if r < len(removed) && removed[r] == i {
			r++
			continue
		}
		out = append(out, e)
	}
	return out
}

// annotate fills in tick and index on a BoundsError from StepEntity.
func annotate(err error, tick uint64, index int) error {
	var be *BoundsError
	if errors.As(err, &be) {
		be.Tick = tick
		be.Index = index
	}
	return err
}
