// Package filter implements the filter stack (C4, §4.4): EntityClassFilter,
// GreedySearchFilter, spatial filters and temporal filters, all sharing the
// same apply(lattice) -> lattice contract and per-position empty-set policy.
package filter

import (
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
)

// Policy is the per-position empty-set recovery rule (§4.4).
type Policy int

const (
	// ReturnAll restores the position's original candidates when every
	// candidate is filtered out.
	ReturnAll Policy = iota
	// ConvertToNormal keeps a surviving Normal candidate, or synthesizes
	// one, when every candidate is filtered out.
	ConvertToNormal
)

// Filter is the shared contract every filter in this package satisfies
// (§4.4 "All filters implement: apply(lattice) -> lattice").
type Filter interface {
	Apply(lat node.Lattice) node.Lattice
}

// applyPredicate runs the shared per-position filtering loop §4.4
// describes: keep candidates passing keep, then apply policy if a position
// empties out.
func applyPredicate(lat node.Lattice, policy Policy, keep func(node.Node) bool) node.Lattice {
	return lat.Map(func(_ int, candidates []node.Node) []node.Node {
		kept := make([]node.Node, 0, len(candidates))
		for _, n := range candidates {
			if keep(n) {
				kept = append(kept, n)
			}
		}
		if len(kept) > 0 {
			return kept
		}
		return recoverEmpty(candidates, policy)
	})
}

func recoverEmpty(original []node.Node, policy Policy) []node.Node {
	switch policy {
	case ConvertToNormal:
		for _, n := range original {
			if n.Kind == node.Normal {
				return []node.Node{n}
			}
		}
		surface := ""
		if len(original) > 0 {
			surface = original[0].Surface
		}
		return []node.Node{node.NewNormal(surface, morpheme.Morpheme{
			Surface: surface, POS: "名詞", SubClass1: "固有名詞", SubClass2: "地域", SubClass3: "一般",
		})}
	default: // ReturnAll
		return original
	}
}
