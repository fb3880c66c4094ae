// Package linker implements the Path evaluator (C5, §4.5): lazy path
// enumeration over a lattice with a combinatorial guard, and top-K
// selection by the pluggable scorer.
package linker

import (
	"sort"

	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/node"
	"github.com/geoparse-go/geoparse/scorer"
)

// Scored pairs a path with its path_score, as returned by TopK.
type Scored struct {
	Path  scorer.Path
	Score int64
}

// Evaluator enumerates every path through a lattice and ranks the top K by
// path_score (§4.5). MaxCombinations is the combinatorial guard's bound
// (§6 max_combinations, default 256).
type Evaluator struct {
	Scorer          scorer.Scorer
	MaxCombinations int64
}

// New builds an Evaluator. maxCombinations <= 0 falls back to the §6
// default of 256.
func New(sc scorer.Scorer, maxCombinations int64) *Evaluator {
	if maxCombinations <= 0 {
		maxCombinations = 256
	}
	return &Evaluator{Scorer: sc, MaxCombinations: maxCombinations}
}

// TopK enumerates every path through lat (§4.5 "Enumeration"), scores each
// with path_score, and returns the K highest-scoring paths in descending
// order, ties preserved in encounter order (§4.5 "Top-K"). It fails with
// ErrTooManyCombinations if the lattice's combination count exceeds
// e.MaxCombinations (§4.5 "Guard").
func (e *Evaluator) TopK(lat node.Lattice, k int) ([]Scored, error) {
	if lat.Len() == 0 {
		return nil, nil
	}
	if count := lat.CombinationCount(); count <= 0 || count > e.MaxCombinations {
		return nil, errs.Newf(errs.ErrTooManyCombinations,
			"lattice combination count %d exceeds max_combinations %d", count, e.MaxCombinations)
	}

	var results []Scored
	for path := range enumerate(lat) {
		score := e.Scorer.PathScore(path)
		results = append(results, Scored{Path: append(scorer.Path{}, path...), Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// enumerate yields every path through lat (§4.5 "Enumeration"): a counter
// per position, advanced from the rightmost contributing position with
// carry, terminating when the leftmost position's counter overflows.
func enumerate(lat node.Lattice) <-chan scorer.Path {
	ch := make(chan scorer.Path)
	go func() {
		defer close(ch)
		n := lat.Len()
		counters := make([]int, n)

		for {
			path, contributing := buildPath(lat, counters)
			ch <- path

			carried := false
			for i := len(contributing) - 1; i >= 0; i-- {
				p := contributing[i]
				counters[p]++
				if counters[p] < len(lat.At(p)) {
					carried = true
					break
				}
				counters[p] = 0
			}
			if !carried {
				return
			}
		}
	}()
	return ch
}

// buildPath walks the lattice from position 0 selecting candidate
// counters[p] and advancing by its span (§4.5), returning the assembled
// path and the ordered list of positions that actually contributed a
// candidate (used to drive the counter increment).
func buildPath(lat node.Lattice, counters []int) (scorer.Path, []int) {
	var path scorer.Path
	var contributing []int
	p := 0
	for p < lat.Len() {
		candidates := lat.At(p)
		c := counters[p]
		if c >= len(candidates) {
			c = 0
		}
		chosen := candidates[c]
		path = append(path, chosen)
		contributing = append(contributing, p)
		p += chosen.Span()
	}
	return path, contributing
}
