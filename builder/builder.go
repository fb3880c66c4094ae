// Package builder implements the lattice builder (C2, §4.2): it fuses the
// tokenizer's morpheme stream with gazetteer lookups into a lattice of
// candidate nodes, applying the person-name, era and geoword expansion
// rules greedily, left to right, first match wins.
package builder

import (
	"strings"

	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/gazetteer"
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
)

// eraNames are the surfaces that open an era span (§4.2 rule 4).
var eraNames = map[string]struct{}{
	"明治": {}, "大正": {}, "昭和": {}, "平成": {}, "令和": {}, "西暦": {},
}

// eraTerminators are the surfaces that close an era span (§4.2 rule 4).
var eraTerminators = map[string]struct{}{
	"年": {}, "年度": {}, "年代": {}, "元年": {},
}

// Builder builds a node.Lattice from a morpheme stream, consulting a
// gazetteer to expand geoword tokens (§4.2).
type Builder struct {
	Gazetteer     gazetteer.Gazetteer
	ExcludedWords map[string]struct{}
}

// New builds a Builder. excludedWords is geoword_rules.excluded_word (§6):
// surfaces never treated as geowords even when tokenizer-tagged as one.
func New(gz gazetteer.Gazetteer, excludedWords []string) *Builder {
	excluded := make(map[string]struct{}, len(excludedWords))
	for _, w := range excludedWords {
		excluded[w] = struct{}{}
	}
	return &Builder{Gazetteer: gz, ExcludedWords: excluded}
}

// Build runs the token rules over morphemes and returns the resulting
// lattice. BOS/EOS markers (empty surface, §6) are skipped before rule
// evaluation. A gazetteer id declared on a geoword token that doesn't
// resolve is a fatal DataIntegrity error (§4.2 "Failure semantics").
func (b *Builder) Build(morphemes []morpheme.Morpheme) (node.Lattice, error) {
	filtered := make([]morpheme.Morpheme, 0, len(morphemes))
	for _, m := range morphemes {
		if !m.IsBOSEOS() {
			filtered = append(filtered, m)
		}
	}

	var positions [][]node.Node
	i := 0
	for i < len(filtered) {
		candidates, advance, err := b.step(filtered, i)
		if err != nil {
			return node.Lattice{}, err
		}
		positions = append(positions, candidates...)
		i += advance
	}
	return node.New(positions), nil
}

// step evaluates the rules at index i, first match wins, and returns one
// []node.Node candidate-set per consumed morpheme plus how far i advances.
func (b *Builder) step(ms []morpheme.Morpheme, i int) ([][]node.Node, int, error) {
	// Rule 1: personal-name A.
	if i+1 < len(ms) && ms[i].IsFamilyName() && (ms[i+1].IsGivenName() || ms[i+1].SubClass2 == "人名") {
		return [][]node.Node{
			{asNormal(ms[i])},
			{asNormal(ms[i+1])},
		}, 2, nil
	}

	// Rule 2: personal-name B.
	if i+1 < len(ms) && ms[i].IsNoun() && ms[i+1].IsSuffixPersonName() {
		return [][]node.Node{
			{asNormal(ms[i])},
			{asNormal(ms[i+1])},
		}, 2, nil
	}

	// Rule 3: personal-name C.
	if i+2 < len(ms) && ms[i].IsNoun() && ms[i+1].IsNoun() && ms[i+2].IsSuffixPersonName() {
		return [][]node.Node{
			{asNormal(ms[i])},
			{asNormal(ms[i+1])},
			{asNormal(ms[i+2])},
		}, 3, nil
	}

	// Rule 4: era span.
	if _, isEra := eraNames[ms[i].Surface]; isEra {
		if end, ok := scanEraSpan(ms, i); ok {
			out := make([][]node.Node, 0, end-i)
			for j := i; j < end; j++ {
				out = append(out, []node.Node{asNormal(ms[j])})
			}
			return out, end - i, nil
		}
	}

	// Rule 5: geoword token expansion.
	m := ms[i]
	_, excluded := b.ExcludedWords[m.Surface]
	if !excluded && m.IsGeowordCandidate() {
		candidates, err := b.expandGeoword(m)
		if err != nil {
			return nil, 0, err
		}
		return [][]node.Node{candidates}, 1, nil
	}

	// Rule 6: default.
	return [][]node.Node{{asNormal(m)}}, 1, nil
}

// asNormal builds a Normal node, restoring the alternative POS (§4.2 A2)
// when the morpheme's inflection field encodes one.
func asNormal(m morpheme.Morpheme) node.Node {
	if m.HasAlternativePOS() {
		m = m.RestoreAlternativePOS()
	}
	return node.NewNormal(m.Surface, m)
}

// scanEraSpan implements §4.2 rule 4: starting at i (an era-name token),
// scan forward while tokens are numeric-subclass, a terminator, or a
// symbol; the span is valid only if a terminator is reached. Returns the
// exclusive end index.
func scanEraSpan(ms []morpheme.Morpheme, i int) (end int, ok bool) {
	j := i + 1
	for j < len(ms) {
		m := ms[j]
		if _, isTerm := eraTerminators[m.Surface]; isTerm {
			return j + 1, true
		}
		if m.IsNumericSubclass() || m.IsSymbol() {
			j++
			continue
		}
		return 0, false
	}
	return 0, false
}

// expandGeoword implements §4.2 rule 5's candidate expansion.
func (b *Builder) expandGeoword(m morpheme.Morpheme) ([]node.Node, error) {
	var candidates []node.Node

	if m.HasAlternativePOS() {
		candidates = append(candidates, asNormal(m))
	}

	ids := m.GazetteerIDs()
	labels := parseIDLabels(m.SubClass3)
	if b.Gazetteer == nil {
		return nil, errs.New(errs.ErrUninitialized, "lattice builder has no gazetteer attached")
	}
	for _, id := range ids {
		rec, ok := b.Gazetteer.WordInfo(id)
		if !ok {
			return nil, errs.Newf(errs.ErrDataIntegrity, "gazetteer id %q declared on %q does not resolve", id, m.Surface)
		}
		narrowed := m.NarrowedSubClass3(id, labels[id])
		candidates = append(candidates, node.NewGeoword(m.Surface, narrowed, node.GeowordProps{
			GeolodID:             rec.ID,
			Body:                 rec.Body,
			Prefix:               rec.Prefix,
			Suffix:               rec.Suffix,
			NEClass:              rec.NEClass,
			Hypernym:             rec.Hypernym,
			Latitude:             rec.Latitude,
			Longitude:            rec.Longitude,
			DictionaryID:         rec.DictionaryID,
			DictionaryIdentifier: rec.DictionaryIdentifier,
			ValidFrom:            rec.ValidFrom,
			ValidTo:              rec.ValidTo,
		}))
	}

	if len(candidates) == 0 {
		// No gazetteer ids at all on a geoword-tagged token: fall through
		// to a plain Normal candidate rather than producing an empty set,
		// which would violate the lattice's non-empty-position invariant.
		candidates = append(candidates, asNormal(m))
	}

	return candidates, nil
}

func parseIDLabels(subClass3 string) map[string]string {
	out := make(map[string]string)
	if subClass3 == "" {
		return out
	}
	for _, part := range strings.Split(subClass3, "/") {
		idLabel := strings.SplitN(part, ":", 2)
		if idLabel[0] == "" {
			continue
		}
		label := ""
		if len(idLabel) > 1 {
			label = idLabel[1]
		}
		out[idLabel[0]] = label
	}
	return out
}
