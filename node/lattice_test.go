package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
)

func normalAt(surface string) node.Node {
	return node.NewNormal(surface, morpheme.Morpheme{Surface: surface})
}

func TestCombinationCount(t *testing.T) {
	l := node.New([][]node.Node{
		{normalAt("a")},
		{normalAt("b"), normalAt("b")},
		{normalAt("c"), normalAt("c"), normalAt("c")},
	})
	assert.Equal(t, int64(6), l.CombinationCount())
}

func TestValidateEmptyPositionFails(t *testing.T) {
	l := node.New([][]node.Node{{}})
	assert.Error(t, l.Validate())
}

func TestValidateMismatchedSurfaceFails(t *testing.T) {
	l := node.New([][]node.Node{{normalAt("a"), normalAt("b")}})
	assert.Error(t, l.Validate())
}

func TestValidateAddressSurfaceExempt(t *testing.T) {
	inner := []node.Node{normalAt("東京都"), normalAt("千代田区")}
	addr := node.NewAddress("東京都千代田区", inner, 139.0, 35.0, node.AddressProps{})
	l := node.New([][]node.Node{{addr}})
	require.NoError(t, l.Validate())
}

func TestSliceAndConcat(t *testing.T) {
	l := node.New([][]node.Node{{normalAt("a")}, {normalAt("b")}, {normalAt("c")}})
	left := l.Slice(0, 1)
	right := l.Slice(1, 3)
	assert.Equal(t, 1, left.Len())
	assert.Equal(t, 2, right.Len())
	joined := left.Concat(right)
	assert.Equal(t, 3, joined.Len())
}
