package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/gazetteer"
	"github.com/geoparse-go/geoparse/metrics"
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/workflow"
)

type stubTokenizer struct {
	morphemes []morpheme.Morpheme
}

func (s stubTokenizer) Tokenize(text string) []morpheme.Morpheme {
	return s.morphemes
}

func m(surface string) morpheme.Morpheme {
	return morpheme.Morpheme{Surface: surface, POS: "名詞"}
}

func geowordMorpheme(surface, subclass3 string) morpheme.Morpheme {
	return morpheme.Morpheme{Surface: surface, SubClass2: "地名語", SubClass3: subclass3}
}

func TestNewRequiresTokenizer(t *testing.T) {
	_, err := workflow.New()
	assert.Error(t, err)
}

func TestParsePlainTextProducesNormalNodes(t *testing.T) {
	tk := stubTokenizer{morphemes: []morpheme.Morpheme{m("今日"), m("は")}}
	w, err := workflow.New(workflow.WithTokenizer(tk))
	require.NoError(t, err)

	result, err := w.Parse(context.Background())("今日は")
	require.NoError(t, err)
	require.Len(t, result.Nodes, 2)
	assert.Equal(t, "今日", result.Nodes[0].Surface)
	assert.NotEmpty(t, result.RequestID)
}

func TestParseExpandsGeoword(t *testing.T) {
	gz := gazetteer.NewMemory()
	gz.Put(gazetteer.Record{ID: "1", Body: "国会議事堂前", NEClass: "鉄道施設/鉄道駅", Latitude: 35.67354, Longitude: 139.74305})

	tk := stubTokenizer{morphemes: []morpheme.Morpheme{geowordMorpheme("国会議事堂前", "1:国会議事堂前")}}
	w, err := workflow.New(workflow.WithTokenizer(tk), workflow.WithGazetteer(gz))
	require.NoError(t, err)

	result, err := w.Parse(context.Background())("国会議事堂前")
	require.NoError(t, err)
	require.Len(t, result.Nodes, 1)
	lon, lat, ok := result.Nodes[0].LonLat()
	require.True(t, ok)
	assert.InDelta(t, 139.74305, lon, 0.0001)
	assert.InDelta(t, 35.67354, lat, 0.0001)
}

func TestParseProducesFeatureCollection(t *testing.T) {
	tk := stubTokenizer{morphemes: []morpheme.Morpheme{m("今日")}}
	w, err := workflow.New(workflow.WithTokenizer(tk))
	require.NoError(t, err)

	result, err := w.Parse(context.Background())("今日")
	require.NoError(t, err)
	assert.NotNil(t, result.GeoJSON)
}

func TestParseReportsStagesToReporter(t *testing.T) {
	var stages []string
	reporter := metrics.LoggingReporter{Observe: func(name string, _ time.Duration, _ error) {
		stages = append(stages, name)
	}}

	tk := stubTokenizer{morphemes: []morpheme.Morpheme{m("今日")}}
	w, err := workflow.New(workflow.WithTokenizer(tk), workflow.WithReporter(reporter))
	require.NoError(t, err)

	_, err = w.Parse(context.Background())("今日")
	require.NoError(t, err)
	assert.Contains(t, stages, "build")
	assert.Contains(t, stages, "evaluate")
	assert.Contains(t, stages, "encode")
}
