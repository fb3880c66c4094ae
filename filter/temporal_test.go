package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/filter"
	"github.com/geoparse-go/geoparse/node"
)

// tanashi/hoya existed until the 2001-01-21 merger (valid_from unset, i.e.
// unbounded past); nishitokyo came into existence that same day (valid_to
// unset, i.e. unbounded future). Mirrors the worked example in pygeonlp's
// temporal_filter.py doctests (田無市/保谷市 merging into 西東京市).
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return tm
}

func TestTemporalFilterBeforePassesUnboundedPastCandidate(t *testing.T) {
	tanashi := geowordWithValidity("田無市", "", "2001-01-21")
	nishitokyo := geowordWithValidity("西東京市", "2001-01-21", "")

	f := filter.NewTemporalFilter(mustParseDate(t, "2000-01-01"), mustParseDate(t, "2000-01-01"), filter.Before)
	lat := node.New([][]node.Node{{tanashi}, {nishitokyo}})
	out := f.Apply(lat)

	assert.Equal(t, node.Geoword, out.At(0)[0].Kind, "unbounded-past candidate must trivially pass Before")
	assert.Equal(t, node.Normal, out.At(1)[0].Kind, "candidate starting after the filter's date must fail Before")
}

func TestTemporalFilterAfterPassesUnboundedFutureCandidate(t *testing.T) {
	tanashi := geowordWithValidity("田無市", "", "2001-01-21")
	nishitokyo := geowordWithValidity("西東京市", "2001-01-21", "")

	f := filter.NewTemporalFilter(mustParseDate(t, "2001-01-22"), mustParseDate(t, "2001-01-22"), filter.After)
	lat := node.New([][]node.Node{{tanashi}, {nishitokyo}})
	out := f.Apply(lat)

	assert.Equal(t, node.Normal, out.At(0)[0].Kind, "candidate that ceased before the filter's date must fail After")
	assert.Equal(t, node.Geoword, out.At(1)[0].Kind, "unbounded-future candidate must trivially pass After")
}

func TestTemporalFilterCoversRequiresSpanningBothEnds(t *testing.T) {
	tanashi := geowordWithValidity("田無市", "", "2001-01-21")
	nishitokyo := geowordWithValidity("西東京市", "2001-01-21", "")

	f := filter.NewTemporalFilter(mustParseDate(t, "2001-01-01"), mustParseDate(t, "2001-02-01"), filter.Covers)
	lat := node.New([][]node.Node{{tanashi}, {nishitokyo}})
	out := f.Apply(lat)

	assert.Equal(t, node.Normal, out.At(0)[0].Kind, "candidate extinct before the interval's end must fail Covers")
	assert.Equal(t, node.Normal, out.At(1)[0].Kind, "candidate starting after the interval's start must fail Covers")
}

func TestTemporalFilterContainsRequiresBothBoundsSet(t *testing.T) {
	tanashi := geowordWithValidity("田無市", "", "2001-01-21")
	nishitokyo := geowordWithValidity("西東京市", "2001-01-21", "")
	bounded := geowordWithValidity("境町", "2001-01-05", "2001-01-25")

	f := filter.NewTemporalFilter(mustParseDate(t, "2001-01-01"), mustParseDate(t, "2001-02-01"), filter.Contains)
	lat := node.New([][]node.Node{{tanashi}, {nishitokyo}, {bounded}})
	out := f.Apply(lat)

	assert.Equal(t, node.Normal, out.At(0)[0].Kind, "missing valid_from must fail Contains")
	assert.Equal(t, node.Normal, out.At(1)[0].Kind, "missing valid_to must fail Contains")
	assert.Equal(t, node.Geoword, out.At(2)[0].Kind, "a fully-bounded window inside the interval must pass Contains")
}
