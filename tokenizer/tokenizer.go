// Package tokenizer adapts kagome, the pure-Go MeCab-compatible tokenizer
// used across the retrieved example pack (williambechard-japaneseparse),
// to the core's tokenizer contract (§6): a function from text to a
// morpheme stream.
package tokenizer

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/geoparse-go/geoparse/morpheme"
)

// Tokenizer wraps a kagome tokenizer.Tokenizer, built once against the
// IPA dictionary and reused across requests (§5: read-only after init).
type Tokenizer struct {
	t *tokenizer.Tokenizer
}

// New builds a Tokenizer against kagome's bundled IPA dictionary, the
// dictionary williambechard-japaneseparse itself initializes with.
func New() (*Tokenizer, error) {
	t, err := tokenizer.New(ipa.Dict())
	if err != nil {
		return nil, err
	}
	return &Tokenizer{t: t}, nil
}

// Tokenize implements the tokenizer contract (§6): tokenize(text) ->
// [Morpheme]. kagome's BOS/EOS dummy nodes come back in the stream;
// morpheme.FromKagome strips them (§6 "empty surface").
func (tk *Tokenizer) Tokenize(text string) []morpheme.Morpheme {
	tokens := tk.t.Tokenize(text)
	return morpheme.FromKagome(tokens)
}
