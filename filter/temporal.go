package filter

import (
	"time"

	"github.com/geoparse-go/geoparse/node"
)

// TemporalRelation selects one of the six interval relations §4.4.4
// defines between a filter's (from, to) and a candidate's validity window.
// Exists and Overlaps apply the same intersection test.
type TemporalRelation int

const (
	Exists TemporalRelation = iota
	Before
	After
	Overlaps
	Covers
	Contains
)

// TemporalFilter keeps geoword candidates whose valid_from/valid_to window
// relates to (From, To) per Relation (§4.4.4). Candidates lacking temporal
// properties always pass. An absent valid_from/valid_to bound is treated as
// -infinity/+infinity respectively, so Before/After/Covers trivially pass an
// unbounded candidate on the open side (pygeonlp's TimeBeforeFilter/
// TimeAfterFilter/TimeCoversFilter.filter_func); only Contains requires both
// bounds to be set.
type TemporalFilter struct {
	From     time.Time
	To       time.Time
	Relation TemporalRelation
}

// NewTemporalFilter builds a TemporalFilter. A single date (from == to) is
// valid per §4.4.4 ("a single date means from = to").
func NewTemporalFilter(from, to time.Time, relation TemporalRelation) *TemporalFilter {
	return &TemporalFilter{From: from, To: to, Relation: relation}
}

const isoDate = "2006-01-02"

// Apply implements Filter (§4.4.4, policy convert_to_normal).
func (f *TemporalFilter) Apply(lat node.Lattice) node.Lattice {
	return applyPredicate(lat, ConvertToNormal, func(n node.Node) bool {
		if n.Kind != node.Geoword || n.Geowd == nil {
			return true
		}
		from, hasFrom := parseISODate(n.Geowd.ValidFrom)
		to, hasTo := parseISODate(n.Geowd.ValidTo)
		if !hasFrom && !hasTo {
			return true
		}

		switch f.Relation {
		case Exists, Overlaps:
			return intersects(from, hasFrom, to, hasTo, f.From, f.To)
		case Before:
			return !hasFrom || !from.After(f.From)
		case After:
			return !hasTo || !to.Before(f.To)
		case Covers:
			return (!hasFrom || !from.After(f.From)) && (!hasTo || !to.Before(f.To))
		case Contains:
			return hasFrom && hasTo && !from.Before(f.From) && !to.After(f.To)
		default:
			return true
		}
	})
}

func parseISODate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// intersects reports whether the candidate's window (from, to; either
// bound possibly unset meaning unbounded) intersects [filterFrom,
// filterTo] (§4.4.4 Exists/Overlaps).
func intersects(from time.Time, hasFrom bool, to time.Time, hasTo bool, filterFrom, filterTo time.Time) bool {
	if hasTo && to.Before(filterFrom) {
		return false
	}
	if hasFrom && from.After(filterTo) {
		return false
	}
	return true
}
