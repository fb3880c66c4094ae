package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoparse-go/geoparse/config"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Scoring.NLookup)
	assert.Equal(t, 256, cfg.MaxCombinations)
	assert.Equal(t, "replace", cfg.CollapsePolicy)
	assert.Contains(t, cfg.ExcludedWords, "本部")
}

func TestValidateRejectsBadNLookup(t *testing.T) {
	cfg := config.Defaults()
	cfg.Scoring.NLookup = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadRegex(t *testing.T) {
	cfg := config.Defaults()
	cfg.AddressClass = "(unterminated"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadCollapsePolicy(t *testing.T) {
	cfg := config.Defaults()
	cfg.CollapsePolicy = "delete"
	assert.Error(t, cfg.Validate())
}

func TestAddressClassPatternMatches(t *testing.T) {
	cfg := config.Defaults()
	re, err := cfg.AddressClassPattern()
	require.NoError(t, err)
	assert.True(t, re.MatchString("都道府県"))
	assert.True(t, re.MatchString("市区町村/一般"))
	assert.False(t, re.MatchString("鉄道施設/鉄道駅"))
}
