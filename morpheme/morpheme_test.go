package morpheme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoparse-go/geoparse/morpheme"
)

func TestGazetteerIDs(t *testing.T) {
	m := morpheme.Morpheme{SubClass3: "123:国会議事堂前/456:国会議事堂前駅"}
	assert.Equal(t, []string{"123", "456"}, m.GazetteerIDs())
}

func TestGazetteerIDsEmpty(t *testing.T) {
	assert.Nil(t, morpheme.Morpheme{}.GazetteerIDs())
}

func TestNarrowedSubClass3(t *testing.T) {
	m := morpheme.Morpheme{SubClass3: "123:a/456:b"}
	narrowed := m.NarrowedSubClass3("456", "b")
	assert.Equal(t, "456:b", narrowed.SubClass3)
	assert.Equal(t, "123:a/456:b", m.SubClass3, "original untouched")
}

func TestRestoreAlternativePOS(t *testing.T) {
	m := morpheme.Morpheme{InflectionForm: "名詞-固有名詞-地域-一般"}
	restored := m.RestoreAlternativePOS()
	assert.Equal(t, "名詞", restored.POS)
	assert.Equal(t, "固有名詞", restored.SubClass1)
	assert.Equal(t, "地域", restored.SubClass2)
	assert.Equal(t, "一般", restored.SubClass3)
}

func TestRestoreAlternativePOSMissingPositions(t *testing.T) {
	m := morpheme.Morpheme{InflectionForm: "名詞"}
	restored := m.RestoreAlternativePOS()
	assert.Equal(t, "名詞", restored.POS)
	assert.Equal(t, "*", restored.SubClass1)
	assert.Equal(t, "*", restored.SubClass2)
	assert.Equal(t, "*", restored.SubClass3)
}

func TestHasAlternativePOS(t *testing.T) {
	assert.False(t, morpheme.Morpheme{}.HasAlternativePOS())
	assert.False(t, morpheme.Morpheme{InflectionForm: "*"}.HasAlternativePOS())
	assert.True(t, morpheme.Morpheme{InflectionForm: "名詞-一般"}.HasAlternativePOS())
}

func TestIsBOSEOS(t *testing.T) {
	assert.True(t, morpheme.Morpheme{}.IsBOSEOS())
	assert.False(t, morpheme.Morpheme{Surface: "x"}.IsBOSEOS())
}
