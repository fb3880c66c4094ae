package workflow

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/geoparse-go/geoparse/linker"
	"github.com/geoparse-go/geoparse/node"
)

// sentenceEndPunctuation is the §4.7 step 6 first-preference split class.
const sentenceEndPunctuation = "。．.!?！？"

// newlineControlCode is the second-preference split class.
const newlineControlCode = "\n"

// commaPunctuation is the fourth-preference split class.
const commaPunctuation = "、,"

// evaluateChunked implements §4.7 steps 6-7's streaming half: split lat
// into pieces each under the combination-count bound, evaluate each piece
// independently, take its top-1 path, and concatenate.
func (w *Workflow) evaluateChunked(ctx context.Context, lat node.Lattice, logger *zerolog.Logger) ([]node.Node, error) {
	ev := linker.New(w.scorer, int64(w.cfg.MaxCombinations))

	pieces := splitToChunks(lat, int64(w.cfg.MaxCombinations))
	if len(pieces) > 1 {
		logger.Debug().Int("chunks", len(pieces)).Msg("geoparse: lattice exceeded max_combinations, chunking")
	}

	var result []node.Node
	for _, piece := range pieces {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		top, err := ev.TopK(piece, 1)
		if err != nil {
			return nil, err
		}
		if len(top) > 0 {
			result = append(result, top[0].Path...)
		}
	}
	return result, nil
}

// splitToChunks recursively splits lat until every piece's combination
// count is at or under bound, using the preference order §4.7 step 6
// names: sentence-end punctuation, newline, decorative symbol, comma
// punctuation, midpoint halving (never at a boundary immediately after an
// Address candidate).
func splitToChunks(lat node.Lattice, bound int64) []node.Lattice {
	if lat.Len() == 0 {
		return nil
	}
	if lat.CombinationCount() <= bound || lat.Len() == 1 {
		return []node.Lattice{lat}
	}

	split := findSplit(lat)
	if split <= 0 || split >= lat.Len() {
		// Nothing safe to split on: emit as-is; the evaluator's own guard
		// will fail loudly rather than infinite-loop here.
		return []node.Lattice{lat}
	}

	left := lat.Slice(0, split)
	right := lat.Slice(split, lat.Len())
	return append(splitToChunks(left, bound), splitToChunks(right, bound)...)
}

// findSplit picks the single best split boundary in lat per the §4.7 step
// 6 preference order.
func findSplit(lat node.Lattice) int {
	if p := findByClass(lat, sentenceEndPunctuation); p > 0 {
		return p
	}
	if p := findByClass(lat, newlineControlCode); p > 0 {
		return p
	}
	if p := findByClass(lat, decorativeSymbols); p > 0 {
		return p
	}
	if p := findByClass(lat, commaPunctuation); p > 0 {
		return p
	}
	return findMidpoint(lat)
}

// findByClass returns the boundary right after the first position whose
// sole candidate's surface is a single rune in class, skipping any
// boundary that would fall immediately after an Address candidate.
func findByClass(lat node.Lattice, class string) int {
	for p := 0; p < lat.Len(); p++ {
		candidates := lat.At(p)
		if len(candidates) != 1 {
			continue
		}
		surface := candidates[0].Surface
		if len([]rune(surface)) != 1 {
			continue
		}
		if !containsRune(class, []rune(surface)[0]) {
			continue
		}
		boundary := p + 1
		if isSafeBoundary(lat, boundary) {
			return boundary
		}
	}
	return 0
}

// findMidpoint implements the final fallback: halve the lattice, walking
// outward from the midpoint for the nearest safe boundary.
func findMidpoint(lat node.Lattice) int {
	mid := lat.Len() / 2
	for d := 0; d < lat.Len(); d++ {
		for _, p := range []int{mid + d, mid - d} {
			if p > 0 && p < lat.Len() && isSafeBoundary(lat, p) {
				return p
			}
		}
	}
	return 0
}

// isSafeBoundary reports that splitting lat at position p (so that
// position p-1 ends one piece and p begins the next) never falls
// immediately after an Address candidate (§4.7 step 6 "never inside an
// Address span").
func isSafeBoundary(lat node.Lattice, p int) bool {
	if p <= 0 || p >= lat.Len() {
		return false
	}
	for _, n := range lat.At(p - 1) {
		if n.Kind == node.Address {
			return false
		}
	}
	return true
}

func containsRune(class string, r rune) bool {
	for _, c := range class {
		if c == r {
			return true
		}
	}
	return false
}
