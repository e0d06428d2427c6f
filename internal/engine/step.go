package engine

// StepEntity computes where e ends up after one tick.
//
// The entity moves one cell along its heading. If that cell holds a
// deflector, the heading is reflected and the entity moves one more cell
// along the new heading. Only the first cell is inspected, so an entity is
// reflected at most once per tick even when it lands on another deflector.
//
// A nil lookup means the grid has no deflectors. Leaving the grid at either
// stage returns a *BoundsError and the zero Entity.
func StepEntity(e Entity, deflectors DeflectorLookup, b Bounds) (Entity, error) {
	next := e.Pos.Step(e.Heading)
	if !b.Contains(next) {
		return Entity{}, &BoundsError{Index: -1, Entity: e, At: next, Bounds: b}
	}

	heading := e.Heading
	if deflectors != nil {
		if o, ok := deflectors.DeflectorAt(next); ok {
			heading = o.Reflect(e.Heading)
			next = next.Step(heading)
			if !b.Contains(next) {
				return Entity{}, &BoundsError{Index: -1, Entity: e, At: next, Bounds: b, Deflected: true}
			}
		}
	}

	return Entity{Pos: next, Heading: heading, Role: e.Role}, nil
}
