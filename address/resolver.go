// Package address implements the Address resolver (C3, §4.3): it detects
// address-prefix positions in a lattice, submits spans to an external
// address tree, aligns the returned match back onto lattice positions, and
// collapses the span into Address candidates whose inner morphemes are
// bound to hierarchy levels by the scorer's node_relation_score.
package address

import (
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/geoparse-go/geoparse/addresstree"
	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/gazetteer"
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
	"github.com/geoparse-go/geoparse/scorer"
)

// maxSpanLength is the 50-character cap §4.3's span-extraction step names.
const maxSpanLength = 50

// syntheticPOS and syntheticSubClass1-3 are the POS fields of the Normal
// node §4.3's per-level binding step falls back to when no Geoword
// candidate qualifies for an address-hierarchy label; prefix detection's
// Normal-noun branch matches the same POS, subclass1 and subclass2.
const (
	syntheticPOS       = "名詞"
	syntheticSubClass1 = "固有名詞"
	syntheticSubClass2 = "地域"
	syntheticSubClass3 = "一般"
)

// CollapsePolicy selects how a resolved address span replaces its lattice
// positions (§4.3 "Collapse policy").
type CollapsePolicy string

const (
	Replace CollapsePolicy = "replace"
	Keep    CollapsePolicy = "keep"
)

// Resolver is the Address resolver. It holds borrowed references to an
// address tree and a gazetteer (§3 "Ownership & lifetime"); Tree may be
// nil, in which case Resolve is a no-op — the Workflow only invokes it when
// an address-tree capability is present (§4.7 step 5).
type Resolver struct {
	Tree           addresstree.AddressTree
	Gazetteer      gazetteer.Gazetteer
	AddressClass   AddressClassMatcher
	CollapsePolicy CollapsePolicy
	Scorer         scorer.Scorer
}

// AddressClassMatcher reports whether a ne_class value is address-prefix
// eligible (§4.3); satisfied by *regexp.Regexp's MatchString.
type AddressClassMatcher interface {
	MatchString(s string) bool
}

// New builds a Resolver. policy must be "replace" or "keep"; an unrecognized
// value falls back to "replace", the §6 default.
func New(tree addresstree.AddressTree, gz gazetteer.Gazetteer, classMatcher AddressClassMatcher, policy string, sc scorer.Scorer) *Resolver {
	p := Replace
	if CollapsePolicy(policy) == Keep {
		p = Keep
	}
	return &Resolver{Tree: tree, Gazetteer: gz, AddressClass: classMatcher, CollapsePolicy: p, Scorer: sc}
}

// Resolve runs the address resolver over lat and returns the collapsed
// lattice (§4.3). When r.Tree is nil, lat is returned unchanged: the
// resolver is simply skipped (§4.7 step 5, §7 ErrAddressTreeUnavailable).
func (r *Resolver) Resolve(lat node.Lattice) (node.Lattice, error) {
	if r.Tree == nil {
		return lat, nil
	}

	var out [][]node.Node
	p := 0
	for p < lat.Len() {
		if !r.isAddressStart(lat, p) {
			out = append(out, lat.At(p))
			p++
			continue
		}

		candidates, end, ok, err := r.resolveAt(lat, p)
		if err != nil {
			return node.Lattice{}, err
		}
		if !ok {
			out = append(out, lat.At(p))
			p++
			continue
		}

		switch r.CollapsePolicy {
		case Keep:
			merged := append(append([]node.Node{}, lat.At(p)...), candidates...)
			out = append(out, merged)
			for q := p + 1; q < end; q++ {
				out = append(out, lat.At(q))
			}
		default: // Replace
			out = append(out, candidates)
		}
		p = end
	}

	return node.New(out), nil
}

// isAddressStart implements §4.3 "Prefix detection".
func (r *Resolver) isAddressStart(lat node.Lattice, p int) bool {
	for _, n := range lat.At(p) {
		if n.Kind == node.Geoword && n.Geowd != nil && r.AddressClass != nil && r.AddressClass.MatchString(n.Geowd.NEClass) {
			return true
		}
	}

	if r.Tree == nil || r.Gazetteer == nil || r.AddressClass == nil {
		return false
	}
	for _, n := range lat.At(p) {
		if n.Kind != node.Normal {
			continue
		}
		if !isProperRegionGeneralNoun(n.Morpheme) {
			continue
		}
		normalized := normalize(spanSurface(n))
		for prefix := range r.Tree.TrieCommonPrefixes(normalized) {
			for _, hit := range r.Gazetteer.SearchWord(prefix) {
				if r.AddressClass.MatchString(hit.NEClass) {
					return true
				}
			}
		}
	}
	return false
}

func isProperRegionGeneralNoun(m morpheme.Morpheme) bool {
	return m.POS == syntheticPOS && m.SubClass1 == syntheticSubClass1 && m.SubClass2 == syntheticSubClass2
}

// normalize folds full-width forms to their canonical width, the
// "transliteration-normalized" step §4.3's prefix-detection branch (b)
// names.
func normalize(s string) string {
	return width.Fold.String(s)
}

// spanSurface returns the surface to use when building the text submitted
// to the address tree: the morpheme's original_form when it is a noun and
// original_form differs from its surface, else the surface itself
// (pygeonlp's Parser.get_surfaces, §4.3 "Span extraction", §9 open
// question 3).
func spanSurface(n node.Node) string {
	if n.Morpheme.POS == syntheticPOS {
		of := n.Morpheme.OriginalForm
		if of != "" && of != "*" && of != n.Surface {
			return of
		}
	}
	return n.Surface
}

// resolveAt runs span extraction, tree search, alignment and per-level
// binding for the address candidate starting at position start (§4.3). ok
// is false when no address node could be built (no match, or the match
// only consumed a lone geoword position).
func (r *Resolver) resolveAt(lat node.Lattice, start int) (candidates []node.Node, end int, ok bool, err error) {
	text, _ := spanText(lat, start, maxSpanLength)
	if text == "" {
		return nil, 0, false, nil
	}

	matches, err := r.Tree.Search(text)
	if err != nil {
		return nil, 0, false, errs.Wrap(errs.ErrExternalFetch, err, "searching address tree")
	}
	if len(matches) == 0 {
		return nil, 0, false, nil
	}

	group, matchedEnd, truncated, err := r.alignLongest(lat, start, matches, len(matches))
	if err != nil {
		return nil, 0, false, err
	}
	if len(group) == 0 {
		return nil, 0, false, nil
	}
	_ = truncated

	if matchedEnd-start == 1 && lat.At(start)[0].Kind == node.Geoword {
		// A single consumed position whose first candidate is already a
		// geoword is left as a geoword rather than promoted to an address
		// (pygeonlp's get_addresses: "i == 1 and lattice[pos][0].node_type
		// == Node.GEOWORD").
		return nil, 0, false, nil
	}

	built := make([]node.Node, 0, len(group))
	for _, m := range group {
		addrNode, err := r.bindLevels(lat, start, matchedEnd, m.Node)
		if err != nil {
			return nil, 0, false, err
		}
		built = append(built, addrNode)
	}

	return built, matchedEnd, true, nil
}

// spanText concatenates surfaces forward from start up to maxLen runes
// (§4.3 "Span extraction").
func spanText(lat node.Lattice, start, maxLen int) (string, int) {
	var b []rune
	p := start
	for p < lat.Len() {
		s := spanSurface(lat.At(p)[0])
		if len(b)+utf8.RuneCountInString(s) > maxLen {
			break
		}
		b = append(b, []rune(s)...)
		p++
	}
	return string(b), p - start
}

// alignLongest implements §4.3 "Alignment" for the longest matched
// substring returned by the tree (ties on that length are kept as
// alternative candidates collapsing into the same span). If the longest
// match overshoots the lattice's position boundaries, it is truncated and
// re-searched, up to len(matches) retries.
func (r *Resolver) alignLongest(lat node.Lattice, start int, matches []addresstree.Match, retries int) (group []addresstree.Match, end int, truncated bool, err error) {
	longest := ""
	for _, m := range matches {
		if utf8.RuneCountInString(m.MatchedSurface) > utf8.RuneCountInString(longest) {
			longest = m.MatchedSurface
		}
	}
	if longest == "" {
		return nil, start, false, nil
	}

	targetLen := utf8.RuneCountInString(longest)
	p := start
	cum := 0
	for p < lat.Len() && cum < targetLen {
		cum += utf8.RuneCountInString(spanSurface(lat.At(p)[0]))
		p++
	}

	if cum != targetLen {
		// Overshoot: truncate to the positions consumed so far and retry
		// the tree search with that shorter text.
		if retries <= 0 {
			return nil, start, true, nil
		}
		truncText, _ := spanText(lat, start, cum)
		retried, err := r.Tree.Search(truncText)
		if err != nil {
			return nil, start, true, errs.Wrap(errs.ErrExternalFetch, err, "searching address tree")
		}
		if len(retried) == 0 {
			return nil, start, true, nil
		}
		return r.alignLongest(lat, start, retried, retries-1)
	}

	for _, m := range matches {
		if m.MatchedSurface == longest {
			group = append(group, m)
		}
	}
	return group, p, false, nil
}

// bindLevels implements §4.3 "Per-level binding" for one address-tree
// match spanning lattice positions [start, end).
func (r *Resolver) bindLevels(lat node.Lattice, start, end int, addr addresstree.AddressNode) (node.Node, error) {
	inner := make([]node.Node, 0, end-start)
	parent := node.NewAddressWithoutGeometry("", nil, node.AddressProps{})
	if addr.X != 0 || addr.Y != 0 {
		parent = node.NewAddress("", nil, addr.X, addr.Y, node.AddressProps{})
	}

	var surfaceBuilder []rune
	for p := start; p < end; p++ {
		candidates := lat.At(p)
		geowordIdx := -1
		for i, n := range candidates {
			if n.Kind == node.Geoword {
				geowordIdx = i
				break
			}
		}

		if geowordIdx == -1 {
			chosen := candidates[0]
			inner = append(inner, chosen)
			surfaceBuilder = append(surfaceBuilder, []rune(chosen.Surface)...)
			continue
		}

		surface := candidates[geowordIdx].Surface
		if !containsLabel(addr.Fullname, surface) {
			chosen := candidates[0]
			inner = append(inner, chosen)
			surfaceBuilder = append(surfaceBuilder, []rune(chosen.Surface)...)
			continue
		}

		best, bestScore, found := r.bestQualifyingGeoword(candidates, parent)
		if found {
			inner = append(inner, best)
			parent = best
			surfaceBuilder = append(surfaceBuilder, []rune(best.Surface)...)
			_ = bestScore
			continue
		}

		synthetic := node.NewNormal(surface, morpheme.Morpheme{
			Surface:   surface,
			POS:       syntheticPOS,
			SubClass1: syntheticSubClass1,
			SubClass2: syntheticSubClass2,
			SubClass3: syntheticSubClass3,
		})
		inner = append(inner, synthetic)
		surfaceBuilder = append(surfaceBuilder, []rune(surface)...)
	}

	fullSurface := string(surfaceBuilder)
	if addr.X != 0 || addr.Y != 0 {
		return node.NewAddress(fullSurface, inner, addr.X, addr.Y, node.AddressProps{Level: addr.Level, Fullname: addr.Fullname}), nil
	}
	return node.NewAddressWithoutGeometry(fullSurface, inner, node.AddressProps{Level: addr.Level, Fullname: addr.Fullname}), nil
}

// bestQualifyingGeoword picks the Geoword candidate whose ne_class matches
// the address-class pattern and whose node_relation_score against parent
// is highest (§4.3 "choose the Geoword ... whose distance to the running
// parent address point yields the highest score").
func (r *Resolver) bestQualifyingGeoword(candidates []node.Node, parent node.Node) (best node.Node, bestScore int64, found bool) {
	for _, n := range candidates {
		if n.Kind != node.Geoword || n.Geowd == nil {
			continue
		}
		if r.AddressClass != nil && !r.AddressClass.MatchString(n.Geowd.NEClass) {
			continue
		}
		score := int64(0)
		if r.Scorer != nil {
			score = r.Scorer.NodeRelationScore(parent, n)
		}
		if !found || score > bestScore {
			best, bestScore, found = n, score, true
		}
	}
	return best, bestScore, found
}

func containsLabel(labels []string, surface string) bool {
	for _, l := range labels {
		if l == surface {
			return true
		}
	}
	return false
}
