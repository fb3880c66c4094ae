package filter

import (
	"math"

	"github.com/geoparse-go/geoparse/node"
	"github.com/geoparse-go/geoparse/scorer"
)

// GreedySearchFilter reduces ambiguous positions by co-occurrence scoring
// against a window of "hint" positions (§4.4.2): positions carrying a
// geoword or address candidate.
type GreedySearchFilter struct {
	Scorer scorer.Scorer
}

// NewGreedySearchFilter builds a GreedySearchFilter scored by sc.
func NewGreedySearchFilter(sc scorer.Scorer) *GreedySearchFilter {
	return &GreedySearchFilter{Scorer: sc}
}

type hint struct {
	pos int
	n   node.Node
}

func collectHints(lat node.Lattice) []hint {
	var hints []hint
	for p := 0; p < lat.Len(); p++ {
		for _, n := range lat.At(p) {
			if n.Kind == node.Geoword || n.Kind == node.Address {
				hints = append(hints, hint{pos: p, n: n})
				break
			}
		}
	}
	return hints
}

// Apply implements Filter (§4.4.2, policy return_all). Positions with a
// single candidate are left untouched; positions with more than one widen
// the hint window (distance d = 1, 2, …) until a unique best-scoring
// candidate emerges or the hint set is exhausted, at which point ties are
// preserved.
func (f *GreedySearchFilter) Apply(lat node.Lattice) node.Lattice {
	hints := collectHints(lat)

	return lat.Map(func(p int, candidates []node.Node) []node.Node {
		if len(candidates) <= 1 {
			return candidates
		}

		var others []hint
		for _, h := range hints {
			if h.pos != p {
				others = append(others, h)
			}
		}
		if len(others) == 0 {
			return candidates
		}

		for d := 1; ; d++ {
			var window []hint
			for _, h := range others {
				if abs(h.pos-p) <= d {
					window = append(window, h)
				}
			}

			scores := make([]int64, len(candidates))
			best := int64(math.MinInt64)
			for i, c := range candidates {
				var s int64
				for _, h := range window {
					s += f.Scorer.NodeRelationScore(c, h.n)
				}
				scores[i] = s
				if s > best {
					best = s
				}
			}

			var argmax []int
			for i, s := range scores {
				if s == best {
					argmax = append(argmax, i)
				}
			}
			if len(argmax) == 1 {
				return []node.Node{candidates[argmax[0]]}
			}
			if len(window) >= len(others) {
				tied := make([]node.Node, 0, len(argmax))
				for _, i := range argmax {
					tied = append(tied, candidates[i])
				}
				return tied
			}
		}
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
