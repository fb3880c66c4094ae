package addresstree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/addresstree"
)

func TestMemorySearchLongestMatchFirst(t *testing.T) {
	tree := addresstree.NewMemory()
	tree.Put("東京都", addresstree.AddressNode{ID: "1", Name: "東京都", Level: 1})
	tree.Put("東京都千代田区", addresstree.AddressNode{ID: "2", Name: "千代田区", Level: 2})

	matches, err := tree.Search("東京都千代田区一ツ橋2-1-2")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "東京都千代田区", matches[0].MatchedSurface)
	assert.Equal(t, "東京都", matches[1].MatchedSurface)
}

func TestMemoryTrieCommonPrefixes(t *testing.T) {
	tree := addresstree.NewMemory()
	tree.Put("横浜市", addresstree.AddressNode{ID: "1", Name: "横浜市"})
	tree.Put("横浜市緑区", addresstree.AddressNode{ID: "2", Name: "緑区"})

	prefixes := tree.TrieCommonPrefixes("横浜市緑区寺山町")
	assert.Contains(t, prefixes, "横浜市")
	assert.Contains(t, prefixes, "横浜市緑区")
	assert.Len(t, prefixes, 2)
}
