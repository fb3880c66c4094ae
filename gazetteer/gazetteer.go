// Package gazetteer defines the external gazetteer contract (§6): the
// dictionary/geoword-record lookup collaborator the core reads through a
// narrow, read-only interface. Storage and lookup engines themselves are
// out of scope (§1); this package only specifies what the core needs and
// ships a small in-memory implementation for tests and examples.
package gazetteer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/geoparse-go/geoparse/errs"
)

// Record is a gazetteer entry (§6 "word_info"), the superset of fields a
// Geoword node's properties are built from.
type Record struct {
	ID                   string
	Body                 string
	NEClass              string
	Hypernym             []string
	Latitude             float64
	Longitude            float64
	DictionaryID         string
	DictionaryIdentifier string
	Prefix               []string
	Suffix               []string
	ValidFrom            string // ISO date, empty if unbounded
	ValidTo              string // ISO date, empty if unbounded
}

// Gazetteer is the read-only lookup capability the core requires (§6).
// Implementations must be safe for concurrent read-only use across
// requests (§5); mutation (SetActiveDictionaries et al.) must be serialized
// by the caller.
type Gazetteer interface {
	// WordInfo looks up a single gazetteer entry by id.
	WordInfo(id string) (Record, bool)

	// SearchWord returns every entry whose surface or reading matches the
	// given string, keyed by id.
	SearchWord(surfaceOrReading string) map[string]Record

	ActiveDictionaries() []string
	SetActiveDictionaries(idsOrPattern []string) error
	DeactivateDictionaries(idsOrPattern []string) error
	ActivateDictionaries(idsOrPattern []string) error

	ActiveClasses() []string
	SetActiveClasses(patterns []string) error
}

// ClassPattern is one entry of an active-class pattern list (§6): a pattern
// applied in list order, where a leading "-" negates the match against
// earlier positive results rather than contributing a separate exclusion
// set (§9 "fold from left to right").
type ClassPattern struct {
	Pattern string
	Negate  bool
}

// ParseClassPatterns splits a raw pattern list (each possibly prefixed with
// "-") into ClassPattern values, compiling none of them yet.
func ParseClassPatterns(raw []string) []ClassPattern {
	out := make([]ClassPattern, 0, len(raw))
	for _, p := range raw {
		if strings.HasPrefix(p, "-") {
			out = append(out, ClassPattern{Pattern: p[1:], Negate: true})
		} else {
			out = append(out, ClassPattern{Pattern: p, Negate: false})
		}
	}
	return out
}

// ActiveClassSet evaluates a compiled ClassPattern list against ne_class
// values (§6, §9): positive patterns OR together, and each later negative
// pattern reinstates-by-negation over the running decision rather than
// subtracting from a separate set, e.g. ['.*', '-鉄道施設/.*', '.*駅$']
// excludes all 鉄道施設/* classes except those ending in 駅.
type ActiveClassSet struct {
	compiled []compiledClassPattern
}

type compiledClassPattern struct {
	re     *regexp.Regexp
	negate bool
}

// CompileActiveClassSet compiles a raw pattern list into an ActiveClassSet.
func CompileActiveClassSet(raw []string) (ActiveClassSet, error) {
	patterns := ParseClassPatterns(raw)
	compiled := make([]compiledClassPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return ActiveClassSet{}, errs.Wrap(errs.ErrBadConfig, err, "compiling active class pattern "+p.Pattern)
		}
		compiled = append(compiled, compiledClassPattern{re: re, negate: p.Negate})
	}
	return ActiveClassSet{compiled: compiled}, nil
}

// Evaluate folds the pattern list left to right over a boolean decision
// (§9): each pattern that matches neClass sets the running decision to
// !negate; patterns that don't match leave the decision untouched. An empty
// pattern set evaluates to true (no restriction configured).
func (s ActiveClassSet) Evaluate(neClass string) bool {
	if len(s.compiled) == 0 {
		return true
	}
	decision := false
	for _, p := range s.compiled {
		if p.re.MatchString(neClass) {
			decision = !p.negate
		}
	}
	return decision
}

// Memory is a small in-memory Gazetteer, for tests, examples and small
// embedded dictionaries. Active-dictionary/class mutation is guarded by a
// mutex since §5 only guarantees read-only concurrency; writers must still
// serialize among themselves as the contract requires.
type Memory struct {
	mu       sync.RWMutex
	records  map[string]Record
	byWord   map[string]map[string]Record // surface/reading -> id -> Record
	activeDi map[string]struct{}          // nil/empty = all active
	classes  ActiveClassSet
}

// NewMemory builds an empty in-memory gazetteer; use Put to populate it.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]Record),
		byWord:  make(map[string]map[string]Record),
	}
}

// Put registers a record under its id and indexes it by body and any
// reading passed in words, for SearchWord lookups.
func (m *Memory) Put(r Record, words ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = r
	keys := append([]string{r.Body}, words...)
	for _, w := range keys {
		if w == "" {
			continue
		}
		if m.byWord[w] == nil {
			m.byWord[w] = make(map[string]Record)
		}
		m.byWord[w][r.ID] = r
	}
}

func (m *Memory) WordInfo(id string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return Record{}, false
	}
	if !m.isActive(r) {
		return Record{}, false
	}
	return r, true
}

func (m *Memory) SearchWord(surfaceOrReading string) map[string]Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Record)
	for id, r := range m.byWord[surfaceOrReading] {
		if m.isActive(r) {
			out[id] = r
		}
	}
	return out
}

func (m *Memory) isActive(r Record) bool {
	if len(m.activeDi) > 0 {
		if _, ok := m.activeDi[r.DictionaryID]; !ok {
			return false
		}
	}
	return m.classes.Evaluate(r.NEClass)
}

func (m *Memory) ActiveDictionaries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.activeDi))
	for id := range m.activeDi {
		out = append(out, id)
	}
	return out
}

func (m *Memory) SetActiveDictionaries(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) == 0 {
		return errs.New(errs.ErrBadConfig, "active dictionary set must not be empty")
	}
	m.activeDi = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m.activeDi[id] = struct{}{}
	}
	return nil
}

func (m *Memory) DeactivateDictionaries(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeDi == nil {
		m.activeDi = make(map[string]struct{})
		for id := range m.allDictionaryIDs() {
			m.activeDi[id] = struct{}{}
		}
	}
	for _, id := range ids {
		delete(m.activeDi, id)
	}
	return nil
}

func (m *Memory) ActivateDictionaries(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeDi == nil {
		m.activeDi = make(map[string]struct{})
	}
	for _, id := range ids {
		m.activeDi[id] = struct{}{}
	}
	return nil
}

func (m *Memory) allDictionaryIDs() map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range m.records {
		out[r.DictionaryID] = struct{}{}
	}
	return out
}

func (m *Memory) ActiveClasses() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.classes.compiled))
	for i, c := range m.classes.compiled {
		pat := c.re.String()
		if c.negate {
			pat = "-" + pat
		}
		out[i] = pat
	}
	return out
}

func (m *Memory) SetActiveClasses(patterns []string) error {
	set, err := CompileActiveClassSet(patterns)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes = set
	return nil
}
