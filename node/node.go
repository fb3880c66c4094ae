// Package node implements the lattice's tagged node variant and the
// geometry/notation operations defined on it (§3, §4.1): Normal, Geoword and
// Address nodes, lonlat/notations/distance, and the dict/GeoJSON encoders'
// shared data.
//
// Geometry is carried as github.com/paulmach/orb.Point, and distance() uses
// github.com/paulmach/orb/geo's geodesic approximation, the way
// rotblauer-rgeo (required by the retrieved pack's go.mod for
// reverse-geocoding geometry) represents points and measures between them.
package node

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/geoparse-go/geoparse/morpheme"
)

// Kind discriminates the three node variants (§3).
type Kind int

const (
	Normal Kind = iota
	Geoword
	Address
)

// String renders the node_type value used by the encoders (§4.8).
func (k Kind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	case Geoword:
		return "GEOWORD"
	case Address:
		return "ADDRESS"
	default:
		return "UNKNOWN"
	}
}

// GeowordProps carries a Geoword node's gazetteer-derived properties (§3).
type GeowordProps struct {
	GeolodID              string
	Body                  string
	Prefix                []string
	Suffix                []string
	NEClass               string
	Hypernym              []string
	Latitude              float64
	Longitude             float64
	DictionaryID          string
	DictionaryIdentifier  string
	ValidFrom             string // ISO date, empty if unbounded
	ValidTo               string // ISO date, empty if unbounded
}

// AddressProps carries an Address node's hierarchy-binding properties (§3).
type AddressProps struct {
	Level    int
	Fullname []string
	X        float64
	Y        float64
}

// Node is the lattice's tagged candidate variant (§3): Normal, Geoword or
// Address. Which of Geowd/Addr and Geometry are populated depends on Kind;
// InnerMorphemes is non-empty only for Address.
type Node struct {
	Kind     Kind
	Surface  string
	Morpheme morpheme.Morpheme // zero value for Address

	Geometry *orb.Point // nil for Normal and for an Address built without geometry; always set for Geoword

	Geowd *GeowordProps // non-nil iff Kind == Geoword
	Addr  *AddressProps // non-nil iff Kind == Address

	// InnerMorphemes is the ordered span bound to this Address node
	// (§3): each element is Normal or Geoword, never Address, and its
	// surfaces concatenate to Surface.
	InnerMorphemes []Node

	notations []string // precomputed at construction (memoized per §4.1)
}

// NewNormal builds a Normal node (§3).
func NewNormal(surface string, m morpheme.Morpheme) Node {
	return Node{Kind: Normal, Surface: surface, Morpheme: m, notations: []string{surface}}
}

// NewGeoword builds a Geoword node with a Point at (lon, lat) (§3, §4.2
// rule 5: "geometry = Point(longitude, latitude)").
func NewGeoword(surface string, m morpheme.Morpheme, props GeowordProps) Node {
	pt := orb.Point{props.Longitude, props.Latitude}
	n := Node{
		Kind:     Geoword,
		Surface:  surface,
		Morpheme: m,
		Geometry: &pt,
		Geowd:    &props,
	}
	n.notations = geowordNotations(props)
	return n
}

// NewAddress builds an Address node collapsing the span inner (§3, §4.3).
// x, y are the coordinates the address tree reported for this candidate.
func NewAddress(surface string, inner []Node, x, y float64, props AddressProps) Node {
	props.X, props.Y = x, y
	pt := orb.Point{x, y}
	return Node{
		Kind:           Address,
		Surface:        surface,
		Geometry:       &pt,
		Addr:           &props,
		InnerMorphemes: inner,
		notations:      []string{surface},
	}
}

// NewAddressWithoutGeometry builds an Address node with no resolvable point,
// used when the address tree match carries no coordinate (rare, but the
// contract in §6 does not guarantee one).
func NewAddressWithoutGeometry(surface string, inner []Node, props AddressProps) Node {
	return Node{
		Kind:           Address,
		Surface:        surface,
		Addr:           &props,
		InnerMorphemes: inner,
		notations:      []string{surface},
	}
}

func geowordNotations(props GeowordProps) []string {
	prefix := joinAll(props.Prefix)
	suffix := joinAll(props.Suffix)

	set := map[string]struct{}{
		props.Body:                   {},
		prefix + props.Body:          {},
		props.Body + suffix:          {},
		prefix + props.Body + suffix: {},
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func joinAll(parts []string) string {
	out := ""
	for _, p := range parts {
		out += p
	}
	return out
}

// Notations returns the memoized notation set defined in §4.1: for a
// Geoword, {body, prefix*body, body*suffix, prefix*body*suffix}; for
// Normal/Address, {surface}.
func (n Node) Notations() []string {
	return n.notations
}

// HasNotation reports whether s is a member of n's notation set.
func (n Node) HasNotation(s string) bool {
	for _, c := range n.notations {
		if c == s {
			return true
		}
	}
	return false
}

// LonLat returns this node's point, if it has one (§4.1).
func (n Node) LonLat() (lon, lat float64, ok bool) {
	if n.Geometry == nil {
		return 0, 0, false
	}
	return n.Geometry[0], n.Geometry[1], true
}

// Distance returns the geodesic distance in meters between n and other's
// points (§4.1); ok is false when either side lacks a point.
func (n Node) Distance(other Node) (meters float64, ok bool) {
	if n.Geometry == nil || other.Geometry == nil {
		return 0, false
	}
	return geo.Distance(*n.Geometry, *other.Geometry), true
}

// Span is the number of lattice positions this node occupies when selected
// in a path (§3 "Path"): 1 for Normal/Geoword, len(InnerMorphemes) for
// Address.
func (n Node) Span() int {
	if n.Kind == Address {
		if len(n.InnerMorphemes) == 0 {
			return 1
		}
		return len(n.InnerMorphemes)
	}
	return 1
}
