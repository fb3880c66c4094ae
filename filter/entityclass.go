package filter

import (
	"regexp"

	"github.com/geoparse-go/geoparse/node"
)

// EntityClassFilter keeps candidates whose ne_class matches a regex
// (§4.4.1). Candidates without a ne_class (Normal, and Address since it has
// none) always fail the predicate and so are never kept directly, but
// ConvertToNormal recovers a Normal per position when a position empties.
type EntityClassFilter struct {
	Pattern *regexp.Regexp
}

// NewEntityClassFilter compiles pattern into an EntityClassFilter.
func NewEntityClassFilter(pattern string) (*EntityClassFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &EntityClassFilter{Pattern: re}, nil
}

// Apply implements Filter (§4.4.1, policy convert_to_normal).
func (f *EntityClassFilter) Apply(lat node.Lattice) node.Lattice {
	return applyPredicate(lat, ConvertToNormal, func(n node.Node) bool {
		if n.Kind != node.Geoword || n.Geowd == nil {
			return false
		}
		return f.Pattern.MatchString(n.Geowd.NEClass)
	})
}
