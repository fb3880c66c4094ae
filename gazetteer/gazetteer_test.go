package gazetteer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/gazetteer"
)

func TestActiveClassSetEmptyAllowsEverything(t *testing.T) {
	set, err := gazetteer.CompileActiveClassSet(nil)
	require.NoError(t, err)
	assert.True(t, set.Evaluate("鉄道施設/鉄道駅"))
}

func TestActiveClassSetReinstatesAfterNegation(t *testing.T) {
	// scenario from spec §8 #6: exclude all 鉄道施設/* except station names
	// ending in 駅.
	set, err := gazetteer.CompileActiveClassSet([]string{".*", "-鉄道施設/.*", ".*駅$"})
	require.NoError(t, err)

	assert.True(t, set.Evaluate("都道府県"))
	assert.False(t, set.Evaluate("鉄道施設/鉄道路線"))
	assert.True(t, set.Evaluate("鉄道施設/鉄道駅"))
}

func TestActiveClassSetSimpleExclusion(t *testing.T) {
	set, err := gazetteer.CompileActiveClassSet([]string{".*", "-鉄道施設/.*"})
	require.NoError(t, err)

	assert.True(t, set.Evaluate("市区町村/一般"))
	assert.False(t, set.Evaluate("鉄道施設/鉄道駅"))
}

func TestMemoryWordInfoRespectsActiveDictionaries(t *testing.T) {
	m := gazetteer.NewMemory()
	m.Put(gazetteer.Record{ID: "1", Body: "和歌山市", NEClass: "市区町村/一般", DictionaryID: "geoshape-city"})
	m.Put(gazetteer.Record{ID: "2", Body: "和歌山市", NEClass: "鉄道施設/鉄道駅", DictionaryID: "ksj-station"})

	require.NoError(t, m.SetActiveDictionaries([]string{"geoshape-city"}))

	_, ok := m.WordInfo("2")
	assert.False(t, ok)

	r, ok := m.WordInfo("1")
	require.True(t, ok)
	assert.Equal(t, "geoshape-city", r.DictionaryID)
}

func TestMemorySearchWordFiltersByActiveClasses(t *testing.T) {
	m := gazetteer.NewMemory()
	m.Put(gazetteer.Record{ID: "1", Body: "和歌山市", NEClass: "市区町村/一般", DictionaryID: "geoshape-city"})
	m.Put(gazetteer.Record{ID: "2", Body: "和歌山市", NEClass: "鉄道施設/鉄道駅", DictionaryID: "ksj-station"})

	require.NoError(t, m.SetActiveClasses([]string{".*", "-鉄道施設/.*"}))

	hits := m.SearchWord("和歌山市")
	require.Len(t, hits, 1)
	assert.Equal(t, "geoshape-city", hits["1"].DictionaryID)
}

func TestMemorySetActiveDictionariesRejectsEmpty(t *testing.T) {
	m := gazetteer.NewMemory()
	assert.Error(t, m.SetActiveDictionaries(nil))
}
