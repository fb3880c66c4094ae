// Package workflow implements the Workflow (C7, §4.7): it wires the
// lattice builder, filter stack, address resolver and path evaluator into
// the single request-level operation text -> GeoJSON features, following
// the functional-options constructor shape googlemaps-go's NewClient(...)
// uses for its own Client.
package workflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geoparse-go/geoparse/address"
	"github.com/geoparse-go/geoparse/addresstree"
	"github.com/geoparse-go/geoparse/builder"
	"github.com/geoparse-go/geoparse/config"
	"github.com/geoparse-go/geoparse/encode"
	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/filter"
	"github.com/geoparse-go/geoparse/gazetteer"
	"github.com/geoparse-go/geoparse/linker"
	"github.com/geoparse-go/geoparse/metrics"
	"github.com/geoparse-go/geoparse/morpheme"
	"github.com/geoparse-go/geoparse/node"
	"github.com/geoparse-go/geoparse/scorer"
)

// decorativeSymbols is the §4.7 chunking step 6 decorative-symbol set.
const decorativeSymbols = "／/★●○◎■□◇"

// dominantClasses are the ne_class top-level labels whose dominance
// triggers the auto-filter heuristic (§4.7 step 3).
var dominantClasses = map[string]struct{}{
	"都道府県": {}, "市区町村": {}, "鉄道施設": {},
}

// Tokenizer is the external tokenizer contract (§6): tokenize(text) ->
// [Morpheme].
type Tokenizer interface {
	Tokenize(text string) []morpheme.Morpheme
}

// Workflow is the Workflow component (C7). It is safe for concurrent use
// once built: every field is either immutable or a read-only external
// collaborator (§5).
type Workflow struct {
	tokenizer   Tokenizer
	gazetteer   gazetteer.Gazetteer
	addressTree addresstree.AddressTree
	cfg         *config.Config
	scorer      scorer.Scorer
	userFilters []filter.Filter
	logger      zerolog.Logger
	reporter    metrics.Reporter
}

// Option configures a Workflow (the googlemaps-go ClientOption shape).
type Option func(*Workflow) error

// New builds a Workflow. A Tokenizer is required; everything else,
// including Config (config.Defaults()), defaults sensibly.
func New(options ...Option) (*Workflow, error) {
	w := &Workflow{logger: log.Logger}
	for _, opt := range options {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.tokenizer == nil {
		return nil, errs.New(errs.ErrBadConfig, "workflow: a tokenizer is required")
	}
	if w.cfg == nil {
		w.cfg = config.Defaults()
	}
	if w.scorer == nil {
		w.scorer = scorer.New(w.cfg.Scoring.NLookup)
	}
	if w.reporter == nil {
		w.reporter = metrics.NoOpReporter{}
	}
	return w, nil
}

// WithTokenizer sets the external tokenizer (§6 "tokenize(text) ->
// [Morpheme]").
func WithTokenizer(t Tokenizer) Option {
	return func(w *Workflow) error {
		w.tokenizer = t
		return nil
	}
}

// WithGazetteer attaches a gazetteer capability (§6).
func WithGazetteer(gz gazetteer.Gazetteer) Option {
	return func(w *Workflow) error {
		w.gazetteer = gz
		return nil
	}
}

// WithAddressTree attaches an address-tree capability (§6); omitting it
// means the Address resolver is skipped (§4.7 step 5).
func WithAddressTree(tree addresstree.AddressTree) Option {
	return func(w *Workflow) error {
		w.addressTree = tree
		return nil
	}
}

// WithConfig sets the process configuration (§6); defaults to
// config.Defaults() when omitted.
func WithConfig(cfg *config.Config) Option {
	return func(w *Workflow) error {
		w.cfg = cfg
		return nil
	}
}

// WithScorer overrides the default scorer (§4.6 "Custom scorers override
// either function").
func WithScorer(sc scorer.Scorer) Option {
	return func(w *Workflow) error {
		w.scorer = sc
		return nil
	}
}

// WithFilters adds user-supplied filters, applied in order after the
// auto-selected EntityClassFilter and before the auto-selected
// GreedySearchFilter, when those are chosen (§4.7 step 3).
func WithFilters(filters ...filter.Filter) Option {
	return func(w *Workflow) error {
		w.userFilters = append(w.userFilters, filters...)
		return nil
	}
}

// WithLogger overrides the zerolog logger (defaults to the package
// global).
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Workflow) error {
		w.logger = logger
		return nil
	}
}

// WithReporter attaches a metrics.Reporter for per-stage timing;
// defaults to metrics.NoOpReporter.
func WithReporter(reporter metrics.Reporter) Option {
	return func(w *Workflow) error {
		w.reporter = reporter
		return nil
	}
}

// Statistics is the §4.7 step 2 computation over a built lattice.
type Statistics struct {
	NumGeowords      int
	NumAddresses     int
	ClassHistogram   map[string]int
	dominantClass    string
	dominantFraction float64
}

// Parse runs the full Workflow (§4.7) over text: build, auto-select
// filters, apply them, resolve addresses, chunk, evaluate, encode.
func (w *Workflow) Parse(ctx context.Context) func(text string) (*FeatureResult, error) {
	return func(text string) (*FeatureResult, error) {
		return w.parse(ctx, text)
	}
}

// FeatureResult is Parse's return value: the resolved node sequence plus
// its encoded GeoJSON (§4.7 step 7, §4.8).
type FeatureResult struct {
	Nodes      []node.Node
	GeoJSON    any
	RequestID  string
	Statistics Statistics
}

func (w *Workflow) parse(ctx context.Context, text string) (*FeatureResult, error) {
	requestID := uuid.NewString()
	logger := w.logger.With().Str("request_id", requestID).Logger()
	logger.Debug().Int("text_length", len([]rune(text))).Msg("geoparse: starting workflow")

	morphemes := w.tokenizer.Tokenize(text)

	buildStage := w.reporter.NewStage("build")
	b := builder.New(w.gazetteer, w.cfg.ExcludedWords)
	lat, err := b.Build(morphemes)
	buildStage.EndStage(err)
	if err != nil {
		return nil, errors.Wrap(err, "geoparse: building lattice")
	}

	stats := computeStatistics(lat)
	logger.Debug().Int("num_geowords", stats.NumGeowords).Int("num_addresses", stats.NumAddresses).Msg("geoparse: statistics computed")

	filters, err := w.selectFilters(stats)
	if err != nil {
		return nil, err
	}
	filterStage := w.reporter.NewStage("filter")
	for _, f := range filters {
		lat = f.Apply(lat)
	}
	filterStage.EndStage(nil)

	if w.addressTree != nil {
		resolveStage := w.reporter.NewStage("resolve_addresses")
		pattern, err := w.cfg.AddressClassPattern()
		if err != nil {
			resolveStage.EndStage(err)
			return nil, err
		}
		resolver := address.New(w.addressTree, w.gazetteer, pattern, w.cfg.CollapsePolicy, w.scorer)
		lat, err = resolver.Resolve(lat)
		resolveStage.EndStage(err)
		if err != nil {
			return nil, errors.Wrap(err, "geoparse: resolving addresses")
		}
	}

	evaluateStage := w.reporter.NewStage("evaluate")
	path, err := w.evaluateChunked(ctx, lat, &logger)
	evaluateStage.EndStage(err)
	if err != nil {
		return nil, err
	}

	encodeStage := w.reporter.NewStage("encode")
	fc := encode.AsFeatureCollection(path)
	encodeStage.EndStage(nil)
	logger.Debug().Int("node_count", len(path)).Msg("geoparse: workflow complete")

	return &FeatureResult{Nodes: path, GeoJSON: fc, RequestID: requestID, Statistics: stats}, nil
}

// selectFilters implements §4.7 step 3.
func (w *Workflow) selectFilters(stats Statistics) ([]filter.Filter, error) {
	if stats.NumGeowords >= 5 && stats.dominantFraction >= 0.75 {
		if _, ok := dominantClasses[stats.dominantClass]; ok {
			entityFilter, err := filter.NewEntityClassFilter("^" + regexpQuote(stats.dominantClass))
			if err != nil {
				return nil, err
			}
			greedy := filter.NewGreedySearchFilter(w.scorer)
			out := make([]filter.Filter, 0, len(w.userFilters)+2)
			out = append(out, entityFilter)
			out = append(out, w.userFilters...)
			out = append(out, greedy)
			return out, nil
		}
	}
	return w.userFilters, nil
}

func regexpQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// computeStatistics implements §4.7 step 2.
func computeStatistics(lat node.Lattice) Statistics {
	histogram := make(map[string]int)
	numGeowords, numAddresses := 0, 0

	for p := 0; p < lat.Len(); p++ {
		hasGeoword, hasAddress := false, false
		for _, n := range lat.At(p) {
			switch n.Kind {
			case node.Geoword:
				hasGeoword = true
				if n.Geowd != nil {
					histogram[topLevelClass(n.Geowd.NEClass)]++
				}
			case node.Address:
				hasAddress = true
			}
		}
		if hasGeoword {
			numGeowords++
		}
		if hasAddress {
			numAddresses++
		}
	}

	dominantClass, dominantCount := "", 0
	for class, count := range histogram {
		if count > dominantCount {
			dominantClass, dominantCount = class, count
		}
	}
	fraction := 0.0
	if numGeowords > 0 {
		fraction = float64(dominantCount) / float64(numGeowords)
	}

	return Statistics{
		NumGeowords: numGeowords, NumAddresses: numAddresses, ClassHistogram: histogram,
		dominantClass: dominantClass, dominantFraction: fraction,
	}
}

func topLevelClass(neClass string) string {
	if i := strings.IndexByte(neClass, '/'); i >= 0 {
		return neClass[:i]
	}
	return neClass
}
