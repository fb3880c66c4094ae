// Package morpheme defines the morpheme record the core consumes from an
// external tokenizer (§3, §6) and an adapter for kagome, the pure-Go
// MeCab-compatible tokenizer used across the retrieved example pack
// (williambechard-japaneseparse).
package morpheme

import "strings"

// Morpheme is one token in the tokenizer's output stream (§3). Subclass3 on
// a geoword token holds the gazetteer candidate list the tokenizer's
// user-dictionary layer emitted, formatted "id1:label1/id2:label2/...".
type Morpheme struct {
	Surface       string
	BaseForm      string
	Reading       string
	Pronunciation string

	POS       string
	SubClass1 string
	SubClass2 string
	SubClass3 string

	InflectionType string
	InflectionForm string

	// OriginalForm is the surface the tokenizer would have reported with
	// its user-dictionary geoword layer disabled. It falls back to Surface
	// when the tokenizer makes no such distinction. The address resolver's
	// Normal-noun prefix-detection branch must consult this field rather
	// than Surface (§9 open question 3).
	OriginalForm string
}

// IsBOSEOS reports whether this record is a begin/end-of-sentence marker,
// recognized by an empty surface (§6).
func (m Morpheme) IsBOSEOS() bool {
	return m.Surface == ""
}

// IsGeowordCandidate reports whether the tokenizer tagged this morpheme as
// a geoword token: subclass2 is "地名語" and subclass1 is not a suffix
// marker (§4.2 rule 5).
func (m Morpheme) IsGeowordCandidate() bool {
	return m.SubClass2 == "地名語" && m.SubClass1 != "接尾"
}

// GazetteerIDs parses SubClass3 as "id:label(/id:label)*" and returns the
// ordered list of gazetteer ids it declares.
func (m Morpheme) GazetteerIDs() []string {
	if m.SubClass3 == "" {
		return nil
	}
	parts := strings.Split(m.SubClass3, "/")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		idLabel := strings.SplitN(p, ":", 2)
		if idLabel[0] == "" {
			continue
		}
		ids = append(ids, idLabel[0])
	}
	return ids
}

// NarrowedSubClass3 returns a copy of this morpheme whose SubClass3 is
// narrowed to just the "id:label" pair for id (§4.2 rule 5: "a copy of the
// morpheme whose subclass3 is narrowed to just that id:label").
func (m Morpheme) NarrowedSubClass3(id, label string) Morpheme {
	narrowed := m
	narrowed.SubClass3 = id + ":" + label
	return narrowed
}

// HasAlternativePOS reports whether the inflection field encodes an
// alternative POS to restore (§4.2 A2): non-empty and not "*".
func (m Morpheme) HasAlternativePOS() bool {
	return m.InflectionForm != "" && m.InflectionForm != "*"
}

// RestoreAlternativePOS rebuilds the morpheme's POS/subclasses from the
// inflection field, formatted "pos-sub1-sub2-sub3" with missing positions
// defaulting to "*" (§4.2 A2).
func (m Morpheme) RestoreAlternativePOS() Morpheme {
	fields := strings.Split(m.InflectionForm, "-")
	get := func(i int) string {
		if i < len(fields) && fields[i] != "" {
			return fields[i]
		}
		return "*"
	}
	restored := m
	restored.POS = get(0)
	restored.SubClass1 = get(1)
	restored.SubClass2 = get(2)
	restored.SubClass3 = get(3)
	restored.InflectionType = "*"
	restored.InflectionForm = "*"
	return restored
}

// IsFamilyName reports whether this morpheme is tagged as a person's family
// name: inflection type 名詞-固有名詞-人名-姓, or subclass2 人名 (§4.2 rule 1).
func (m Morpheme) IsFamilyName() bool {
	return m.InflectionType == "名詞-固有名詞-人名-姓" || m.SubClass2 == "人名"
}

// IsGivenName reports whether this morpheme is tagged as a given name or
// generic person-name subclass (§4.2 rule 1).
func (m Morpheme) IsGivenName() bool {
	return m.SubClass2 == "人名" || m.InflectionType == "名詞-固有名詞-人名-名"
}

// IsNoun reports a bare noun POS (used by person-name rules B/C, §4.2).
func (m Morpheme) IsNoun() bool {
	return m.POS == "名詞"
}

// IsSuffixPersonName reports the "suffix noun that completes a person name"
// tag used by person-name rules B/C (§4.2).
func (m Morpheme) IsSuffixPersonName() bool {
	return m.POS == "名詞" && m.SubClass1 == "接尾" && m.SubClass2 == "人名"
}

// IsNumericSubclass reports whether this morpheme is tagged as a number,
// used while scanning an era span (§4.2 rule 4).
func (m Morpheme) IsNumericSubclass() bool {
	return m.SubClass1 == "数"
}

// IsSymbol reports a symbol-class morpheme, used while scanning an era span
// (§4.2 rule 4).
func (m Morpheme) IsSymbol() bool {
	return m.POS == "記号"
}
