// Package config loads the geoparse configuration surface from environment
// variables, in the same shape liverty-music-backend's pkg/config loads its
// envconfig-tagged structs: a struct per concern, defaults on the tags, and
// a Validate method that reports BadConfig rather than letting a zero value
// silently misbehave.
package config

import (
	"regexp"

	"github.com/kelseyhightower/envconfig"

	"github.com/geoparse-go/geoparse/errs"
)

// DefaultAddressClass is the default regex matching address-prefix-eligible
// ne_class values (§6).
const DefaultAddressClass = `^(都道府県|市区町村|行政地域|居住地名)(/.+|)`

// SuffixEntry is one row of the geoword_rules.suffix configuration list
// (§6): a surface/reading/pronunciation triple recognized as an address
// suffix morpheme ("前", "内", …).
type SuffixEntry struct {
	Surface       string
	Reading       string
	Pronunciation string
}

// DefaultSuffixes is the default geoword_rules.suffix list (§6).
func DefaultSuffixes() []SuffixEntry {
	return []SuffixEntry{
		{Surface: "前", Reading: "マエ", Pronunciation: "マエ"},
		{Surface: "内", Reading: "ナイ", Pronunciation: "ナイ"},
		{Surface: "立", Reading: "リツ", Pronunciation: "リツ"},
		{Surface: "境", Reading: "サカイ", Pronunciation: "サカイ"},
		{Surface: "東", Reading: "ヒガシ", Pronunciation: "ヒガシ"},
		{Surface: "西", Reading: "ニシ", Pronunciation: "ニシ"},
		{Surface: "南", Reading: "ミナミ", Pronunciation: "ミナミ"},
		{Surface: "北", Reading: "キタ", Pronunciation: "キタ"},
	}
}

// DefaultExcludedWords is the default geoword_rules.excluded_word list (§6):
// surfaces never treated as geowords even if the tokenizer's user-dictionary
// layer tags them as one.
func DefaultExcludedWords() []string {
	return []string{"本部", "一部", "月"}
}

// Config is the process-level configuration surface described in §6.
type Config struct {
	// Scoring holds the pluggable scorer's tunables.
	Scoring struct {
		NLookup int `envconfig:"SCORING_NLOOKUP" default:"5"`
	}

	// MaxCombinations bounds the path evaluator's combinatorial guard
	// (§4.5); the Workflow recovers TooManyCombinations by chunking.
	MaxCombinations int `envconfig:"MAX_COMBINATIONS" default:"256"`

	// AddressClass is the regex identifying address-prefix-eligible
	// ne_class values (§4.3, §6).
	AddressClass string `envconfig:"ADDRESS_CLASS" default:"^(都道府県|市区町村|行政地域|居住地名)(/.+|)"`

	// ExcludedWords lists surfaces never treated as geowords (§6).
	ExcludedWords []string `envconfig:"EXCLUDED_WORDS" default:"本部,一部,月"`

	// CollapsePolicy selects the Address resolver's span-collapse mode
	// (§4.3): "replace" (default) or "keep".
	CollapsePolicy string `envconfig:"COLLAPSE_POLICY" default:"replace"`
}

// Load loads configuration from environment variables prefixed with prefix,
// the way config.Load("APP") does in liverty-music-backend.
func Load(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrBadConfig, err, "loading geoparse configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns a Config populated with the exact defaults named in §6,
// without touching the environment. Useful for tests and for callers that
// want the built-in behavior without a process environment.
func Defaults() *Config {
	cfg := &Config{
		AddressClass:    DefaultAddressClass,
		ExcludedWords:   DefaultExcludedWords(),
		CollapsePolicy:  "replace",
		MaxCombinations: 256,
	}
	cfg.Scoring.NLookup = 5
	return cfg
}

// Validate checks the configuration for the constraints §6/§7 imply:
// nlookup must be positive, max_combinations must be positive, the
// address-class pattern must compile, and the collapse policy must be one
// of the two defined modes.
func (c *Config) Validate() error {
	if c.Scoring.NLookup < 1 {
		return errs.Newf(errs.ErrBadConfig, "scoring.nlookup must be >= 1, got %d", c.Scoring.NLookup)
	}
	if c.MaxCombinations < 1 {
		return errs.Newf(errs.ErrBadConfig, "max_combinations must be >= 1, got %d", c.MaxCombinations)
	}
	if _, err := regexp.Compile(c.AddressClass); err != nil {
		return errs.Wrap(errs.ErrBadConfig, err, "address_class does not compile")
	}
	switch c.CollapsePolicy {
	case "replace", "keep":
	default:
		return errs.Newf(errs.ErrBadConfig, "collapse_policy must be \"replace\" or \"keep\", got %q", c.CollapsePolicy)
	}
	return nil
}

// AddressClassPattern compiles the configured address-class regex. Callers
// hold onto the *regexp.Regexp rather than recompiling per lookup.
func (c *Config) AddressClassPattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.AddressClass)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBadConfig, err, "address_class does not compile")
	}
	return re, nil
}
