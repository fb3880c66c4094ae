// Package scorer implements the pluggable path/node scoring contract (§4.6):
// path_score ranks a fully-resolved path, node_relation_score measures how
// well two non-Normal nodes relate to each other. Both the Path evaluator
// (C5) and the Address resolver's per-level binding (C3) call through this
// interface rather than a concrete type, the way googlemaps-go's transport
// layer takes an http.RoundTripper rather than a concrete client.
package scorer

import (
	"math"

	"github.com/geoparse-go/geoparse/node"
)

// Path is the fully-resolved sequence of chosen nodes the evaluator scores
// (§4.5 "construct a path by ... selecting candidate counters[p]").
type Path []node.Node

// Scorer is the pluggable contract §4.6 describes as "custom scorers
// override either function".
type Scorer interface {
	PathScore(path Path) int64
	NodeRelationScore(a, b node.Node) int64
}

// Default is the §4.6 default scoring implementation. NLookup is the
// scoring option defaulting to 5 (§6 scoring.nlookup).
type Default struct {
	NLookup int
}

// New builds a Default scorer with the given nlookup; nlookup <= 0 falls
// back to the spec's default of 5.
func New(nlookup int) Default {
	if nlookup <= 0 {
		nlookup = 5
	}
	return Default{NLookup: nlookup}
}

// PathScore implements §4.6 path_score(path).
func (d Default) PathScore(path Path) int64 {
	var score int64
	for _, n := range path {
		if n.Kind == node.Normal {
			score++
		}
	}

	for _, n := range path {
		if n.Kind == node.Address {
			score += 10 * int64(len(n.InnerMorphemes))
		}
	}

	classCounts := make(map[string]int64)
	for _, n := range path {
		if n.Kind == node.Geoword && n.Geowd != nil {
			classCounts[n.Geowd.NEClass]++
		}
	}
	for class, count := range classCounts {
		if count > 1 {
			score += 10 * count
		}
		_ = class
	}

	nonNormal := make([]node.Node, 0, len(path))
	for _, n := range path {
		if n.Kind != node.Normal {
			nonNormal = append(nonNormal, n)
		}
	}
	for i, n0 := range nonNormal {
		limit := i + 1 + d.NLookup
		if limit > len(nonNormal) {
			limit = len(nonNormal)
		}
		for j := i + 1; j < limit; j++ {
			score += d.NodeRelationScore(n0, nonNormal[j])
		}
	}

	return score
}

// NodeRelationScore implements §4.6 node_relation_score(a, b).
func (d Default) NodeRelationScore(a, b node.Node) int64 {
	if a.Kind == node.Normal || b.Kind == node.Normal {
		return 0
	}

	var score int64

	if a.Kind == node.Geoword && b.Kind == node.Geoword && a.Geowd != nil && b.Geowd != nil {
		if a.Geowd.NEClass == b.Geowd.NEClass {
			score += 10
		}
	}

	aHypernym := hypernymOf(a)
	bHypernym := hypernymOf(b)

	if intersects(aHypernym, b.Notations()) {
		score += 5
	}
	if intersects(bHypernym, a.Notations()) {
		score += 5
	}
	if intersects(aHypernym, bHypernym) {
		score += 5
	}

	if d, ok := a.Distance(b); ok {
		if d < 10000 {
			score += 5
		} else {
			score += int64(math.Floor(50000 / d))
		}
	}

	return score
}

func hypernymOf(n node.Node) []string {
	if n.Kind == node.Geoword && n.Geowd != nil {
		return n.Geowd.Hypernym
	}
	return nil
}

func intersects(a []string, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
