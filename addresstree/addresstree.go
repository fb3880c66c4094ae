// Package addresstree defines the external address-tree contract (§6): the
// collaborator the Address resolver consults for span search and trie
// common-prefix lookups. The tree's storage and matching engine are out of
// scope (§1); this package only specifies the interface and ships a small
// in-memory implementation for tests.
package addresstree

import "strings"

// AddressNode is one hierarchy match the tree returns (§6): id, name, point,
// level (1..8, prefecture to building) and the full ancestor-label chain.
type AddressNode struct {
	ID       string
	Name     string
	X, Y     float64
	Level    int
	Fullname []string
}

// AsDict mirrors the contract's as_dict() method (§6).
func (a AddressNode) AsDict() map[string]any {
	return map[string]any{
		"id":       a.ID,
		"name":     a.Name,
		"x":        a.X,
		"y":        a.Y,
		"level":    a.Level,
		"fullname": a.Fullname,
	}
}

// Match pairs a returned AddressNode with the substring of the submitted
// text it actually matched (§6 "search(text) -> [(AddressNode,
// matched_surface)]").
type Match struct {
	Node           AddressNode
	MatchedSurface string
}

// AddressTree is the external collaborator the resolver holds a borrowed
// reference to (§3 "Ownership & lifetime"); it may be absent, in which case
// the resolver is skipped (ErrAddressTreeUnavailable, §7).
type AddressTree interface {
	// Search submits text (built by walking the lattice forward from a
	// candidate start position, §4.3) and returns every hierarchy match
	// found, longest or best match first.
	Search(text string) ([]Match, error)

	// TrieCommonPrefixes returns the set of address-name prefixes the
	// tree's trie recognizes for normalizedSurface, used only by the
	// Normal-noun branch of prefix detection (§4.3).
	TrieCommonPrefixes(normalizedSurface string) map[string]struct{}
}

// Memory is a small in-memory AddressTree for tests and examples. It is not
// a trie in the performance sense; it linearly scans a small registered
// entry set, which is enough for unit tests and small embedded hierarchies.
type Memory struct {
	entries []memEntry
}

type memEntry struct {
	text string
	node AddressNode
}

// NewMemory builds an empty in-memory address tree; use Put to register
// entries.
func NewMemory() *Memory {
	return &Memory{}
}

// Put registers an address node reachable by the exact string text (the
// full hierarchy name, e.g. "東京都千代田区一ツ橋").
func (m *Memory) Put(text string, node AddressNode) {
	m.entries = append(m.entries, memEntry{text: text, node: node})
}

// Search returns every registered entry whose text is a prefix of the
// submitted string, longest match first.
func (m *Memory) Search(text string) ([]Match, error) {
	var matches []Match
	for _, e := range m.entries {
		if strings.HasPrefix(text, e.text) {
			matches = append(matches, Match{Node: e.node, MatchedSurface: e.text})
		}
	}
	sortMatchesByLengthDesc(matches)
	return matches, nil
}

func sortMatchesByLengthDesc(matches []Match) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && len([]rune(matches[j].MatchedSurface)) > len([]rune(matches[j-1].MatchedSurface)); j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

// TrieCommonPrefixes returns every registered entry's text that is a prefix
// of normalizedSurface.
func (m *Memory) TrieCommonPrefixes(normalizedSurface string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, e := range m.entries {
		if strings.HasPrefix(normalizedSurface, e.text) {
			out[e.text] = struct{}{}
		}
	}
	return out
}
