package node

import "github.com/geoparse-go/geoparse/errs"

// Lattice is the position-indexed set-of-candidates representation of a
// sentence (§3): an ordered sequence where each position holds a non-empty
// set of candidate nodes.
type Lattice struct {
	Positions [][]Node
}

// New builds a Lattice from an explicit candidate-set sequence.
func New(positions [][]Node) Lattice {
	return Lattice{Positions: positions}
}

// Len is the number of positions in the lattice.
func (l Lattice) Len() int { return len(l.Positions) }

// At returns the candidate set at position p.
func (l Lattice) At(p int) []Node { return l.Positions[p] }

// CombinationCount computes ∏ |candidates[p]| (§4.5), the bound the path
// evaluator's combinatorial guard checks against max_combinations.
func (l Lattice) CombinationCount() int64 {
	var total int64 = 1
	for _, candidates := range l.Positions {
		total *= int64(len(candidates))
		if total <= 0 {
			return total // overflow guard: treat as "very large"
		}
	}
	return total
}

// Validate checks the lattice invariants from §8:
//   - every position is non-empty;
//   - every Normal/Geoword candidate at a position shares that position's
//     surface with every other non-Address candidate there.
func (l Lattice) Validate() error {
	for p, candidates := range l.Positions {
		if len(candidates) == 0 {
			return errs.Newf(errs.ErrDataIntegrity, "lattice position %d has no candidates", p)
		}
		var surface string
		haveSurface := false
		for _, n := range candidates {
			if n.Kind == Address {
				continue
			}
			if !haveSurface {
				surface = n.Surface
				haveSurface = true
				continue
			}
			if n.Surface != surface {
				return errs.Newf(errs.ErrDataIntegrity,
					"lattice position %d has mismatched surfaces %q and %q", p, surface, n.Surface)
			}
		}
	}
	return nil
}

// Slice returns a new Lattice over positions [start, end).
func (l Lattice) Slice(start, end int) Lattice {
	cp := make([][]Node, end-start)
	copy(cp, l.Positions[start:end])
	return Lattice{Positions: cp}
}

// Concat appends other's positions after l's and returns the result as a
// new Lattice (lattices are owned functionally, §3 "Ownership & lifetime").
func (l Lattice) Concat(other Lattice) Lattice {
	cp := make([][]Node, 0, len(l.Positions)+len(other.Positions))
	cp = append(cp, l.Positions...)
	cp = append(cp, other.Positions...)
	return Lattice{Positions: cp}
}

// Map returns a new Lattice with each position's candidate set replaced by
// fn's result, the functional style filters use (§3 "filters produce new
// lattices").
func (l Lattice) Map(fn func(pos int, candidates []Node) []Node) Lattice {
	cp := make([][]Node, len(l.Positions))
	for p, candidates := range l.Positions {
		cp[p] = fn(p, candidates)
	}
	return Lattice{Positions: cp}
}
