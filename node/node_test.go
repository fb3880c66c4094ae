package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
)

func TestNormalNotationsIsSurface(t *testing.T) {
	n := node.NewNormal("東京", morpheme.Morpheme{Surface: "東京"})
	assert.ElementsMatch(t, []string{"東京"}, n.Notations())
	assert.True(t, n.HasNotation("東京"))
}

func TestGeowordNotations(t *testing.T) {
	n := node.NewGeoword("国会議事堂前", morpheme.Morpheme{}, node.GeowordProps{
		Body:      "国会議事堂前",
		Prefix:    nil,
		Suffix:    nil,
		Latitude:  35.67354,
		Longitude: 139.74305,
	})
	assert.True(t, n.HasNotation("国会議事堂前"))
	lon, lat, ok := n.LonLat()
	require.True(t, ok)
	assert.InDelta(t, 139.74305, lon, 0.0001)
	assert.InDelta(t, 35.67354, lat, 0.0001)
}

func TestGeowordNotationsWithAffixes(t *testing.T) {
	n := node.NewGeoword("西国会議事堂前駅", morpheme.Morpheme{}, node.GeowordProps{
		Body:   "国会議事堂前",
		Prefix: []string{"西"},
		Suffix: []string{"駅"},
	})
	assert.True(t, n.HasNotation("国会議事堂前"))
	assert.True(t, n.HasNotation("西国会議事堂前"))
	assert.True(t, n.HasNotation("国会議事堂前駅"))
	assert.True(t, n.HasNotation("西国会議事堂前駅"))
}

func TestDistanceRequiresBothPoints(t *testing.T) {
	a := node.NewGeoword("a", morpheme.Morpheme{}, node.GeowordProps{Latitude: 35.0, Longitude: 139.0})
	b := node.NewNormal("b", morpheme.Morpheme{})
	_, ok := a.Distance(b)
	assert.False(t, ok)
}

func TestDistanceBetweenPoints(t *testing.T) {
	tokyoStation := node.NewGeoword("a", morpheme.Morpheme{}, node.GeowordProps{Latitude: 35.681236, Longitude: 139.767125})
	shinjukuStation := node.NewGeoword("b", morpheme.Morpheme{}, node.GeowordProps{Latitude: 35.690921, Longitude: 139.700258})
	d, ok := tokyoStation.Distance(shinjukuStation)
	require.True(t, ok)
	assert.Greater(t, d, 5000.0)
	assert.Less(t, d, 8000.0)
}

func TestSpan(t *testing.T) {
	normal := node.NewNormal("a", morpheme.Morpheme{})
	assert.Equal(t, 1, normal.Span())

	addr := node.NewAddress("東京都千代田区", []node.Node{normal, normal, normal}, 139.0, 35.0, node.AddressProps{})
	assert.Equal(t, 3, addr.Span())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NORMAL", node.Normal.String())
	assert.Equal(t, "GEOWORD", node.Geoword.String())
	assert.Equal(t, "ADDRESS", node.Address.String())
}
