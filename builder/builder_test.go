package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/builder"
	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/gazetteer"
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
)

func TestBuildSkipsBOSEOS(t *testing.T) {
	b := builder.New(gazetteer.NewMemory(), nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: ""},
		{Surface: "今日", POS: "名詞"},
		{Surface: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, lat.Len())
}

func TestPersonalNameRuleA(t *testing.T) {
	b := builder.New(gazetteer.NewMemory(), nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "山田", InflectionType: "名詞-固有名詞-人名-姓"},
		{Surface: "太郎", SubClass2: "人名"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, lat.Len())
	assert.Equal(t, node.Normal, lat.At(0)[0].Kind)
	assert.Equal(t, "山田", lat.At(0)[0].Surface)
	assert.Equal(t, "太郎", lat.At(1)[0].Surface)
}

func TestEraRuleValidSpan(t *testing.T) {
	b := builder.New(gazetteer.NewMemory(), nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "平成"},
		{Surface: "1", SubClass1: "数"},
		{Surface: "年"},
		{Surface: "です", POS: "助動詞"},
	})
	require.NoError(t, err)
	require.Equal(t, 4, lat.Len())
	assert.Equal(t, "平成", lat.At(0)[0].Surface)
	assert.Equal(t, "年", lat.At(2)[0].Surface)
	assert.Equal(t, "です", lat.At(3)[0].Surface)
}

func TestEraRuleWithoutTerminatorFallsThrough(t *testing.T) {
	b := builder.New(gazetteer.NewMemory(), nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "平成"},
		{Surface: "です", POS: "助動詞"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, lat.Len())
	assert.Equal(t, "平成", lat.At(0)[0].Surface)
}

func TestGeowordExpansion(t *testing.T) {
	gz := gazetteer.NewMemory()
	gz.Put(gazetteer.Record{ID: "1000", Body: "国会議事堂前", NEClass: "鉄道施設/鉄道駅", Latitude: 35.67354, Longitude: 139.74305})

	b := builder.New(gz, nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "国会議事堂前", SubClass2: "地名語", SubClass3: "1000:国会議事堂前"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, lat.Len())
	require.Len(t, lat.At(0), 1)
	gw := lat.At(0)[0]
	assert.Equal(t, node.Geoword, gw.Kind)
	lon, lat2, ok := gw.LonLat()
	require.True(t, ok)
	assert.InDelta(t, 139.74305, lon, 0.0001)
	assert.InDelta(t, 35.67354, lat2, 0.0001)
}

func TestGeowordExpansionMultipleCandidates(t *testing.T) {
	gz := gazetteer.NewMemory()
	gz.Put(gazetteer.Record{ID: "1", Body: "府中", NEClass: "鉄道施設/鉄道駅", Latitude: 35.67, Longitude: 139.47})
	gz.Put(gazetteer.Record{ID: "2", Body: "府中", NEClass: "鉄道施設/鉄道駅", Latitude: 34.5, Longitude: 133.2})

	b := builder.New(gz, nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "府中", SubClass2: "地名語", SubClass3: "1:府中/2:府中"},
	})
	require.NoError(t, err)
	require.Len(t, lat.At(0), 2)
}

func TestGeowordExpansionMissingGazetteerIDFails(t *testing.T) {
	b := builder.New(gazetteer.NewMemory(), nil)
	_, err := b.Build([]morpheme.Morpheme{
		{Surface: "府中", SubClass2: "地名語", SubClass3: "999:府中"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDataIntegrity))
}

func TestExcludedWordNeverBecomesGeoword(t *testing.T) {
	gz := gazetteer.NewMemory()
	gz.Put(gazetteer.Record{ID: "1", Body: "本部", NEClass: "施設/本部"})

	b := builder.New(gz, []string{"本部", "一部", "月"})
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "本部", SubClass2: "地名語", SubClass3: "1:本部"},
	})
	require.NoError(t, err)
	require.Len(t, lat.At(0), 1)
	assert.Equal(t, node.Normal, lat.At(0)[0].Kind)
}

func TestAlternativePOSRestoredAlongsideGeoword(t *testing.T) {
	gz := gazetteer.NewMemory()
	gz.Put(gazetteer.Record{ID: "1", Body: "中野", NEClass: "市区町村/一般", Latitude: 35.0, Longitude: 139.0})

	b := builder.New(gz, nil)
	lat, err := b.Build([]morpheme.Morpheme{
		{Surface: "中野", SubClass2: "地名語", SubClass3: "1:中野", InflectionForm: "名詞-固有名詞-人名-姓"},
	})
	require.NoError(t, err)
	require.Len(t, lat.At(0), 2)
	assert.Equal(t, node.Normal, lat.At(0)[0].Kind)
	assert.Equal(t, "固有名詞", lat.At(0)[0].Morpheme.SubClass1)
	assert.Equal(t, node.Geoword, lat.At(0)[1].Kind)
}
