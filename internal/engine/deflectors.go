package engine

import "github.com/kamstrup/intmap"

// DeflectorLookup finds the deflector on a cell, if any.
type DeflectorLookup interface {
	DeflectorAt(p Pos) (Orientation, bool)
}

// DeflectorIndex is a sparse set of deflectors keyed by cell.
// It keeps registration order for queries.
type DeflectorIndex struct {
	cells *intmap.Map[uint64, Orientation]
	order []Deflector
}

// NewDeflectorIndex builds an index from a list of deflectors.
// Two deflectors on the same cell are rejected.
func NewDeflectorIndex(defs []Deflector) (*DeflectorIndex, error) {
	idx := &DeflectorIndex{
		cells: intmap.New[uint64, Orientation](len(defs)),
		order: make([]Deflector, 0, len(defs)),
	}
	for _, d := range defs {
		key := cellKey(d.Pos)
		if existing, ok := idx.cells.Get(key); ok {
			return nil, &DeflectorConflictError{At: d.Pos, First: existing, Second: d.Orientation}
		}
		idx.cells.Put(key, d.Orientation)
		idx.order = append(idx.order, d)
	}
	return idx, nil
}

// DeflectorAt returns the orientation of the deflector on p.
func (idx *DeflectorIndex) DeflectorAt(p Pos) (Orientation, bool) {
	if idx == nil {
		return 0, false
	}
	return idx.cells.Get(cellKey(p))
}

// Len returns the number of deflectors.
func (idx *DeflectorIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.order)
}

// List returns a copy of the deflectors in registration order.
func (idx *DeflectorIndex) List() []Deflector {
	if idx == nil {
		return nil
	}
	out := make([]Deflector, len(idx.order))
	copy(out, idx.order)
	return out
}

// cellKey packs a position into a map key. Both halves keep their sign bits
// so negative coordinates never alias valid cells.
func cellKey(p Pos) uint64 {
	return uint64(uint32(int32(p.Y)))<<32 | uint64(uint32(int32(p.X)))
}
