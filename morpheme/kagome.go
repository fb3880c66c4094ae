package morpheme

import (
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// FromKagome converts a kagome tokenizer.Token stream into the core's
// Morpheme records, the way williambechard-japaneseparse's
// convertKagomeTokens converts kagome tokens into its own Token model: it
// reads POS, subclass 1-3, inflection type and inflection form from the
// first six slots of the IPADic feature vector ("*" for a missing slot),
// and base form, reading and pronunciation from the token's own accessors
// (base form falls back to the surface, reading and pronunciation to "").
//
// kagome's BOS/EOS dummy nodes are recognized by tokenizer.Token.Class ==
// tokenizer.DUMMY and are skipped, since the core's BOS/EOS contract (§6)
// is "empty surface" — the kagome dummy nodes carry no surface either.
func FromKagome(tokens []tokenizer.Token) []Morpheme {
	out := make([]Morpheme, 0, len(tokens))
	for _, kt := range tokens {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		out = append(out, morphemeFromToken(kt))
	}
	return out
}

func morphemeFromToken(kt tokenizer.Token) Morpheme {
	features := kt.Features()

	field := func(i int) string {
		if i < len(features) {
			return features[i]
		}
		return "*"
	}

	baseForm, ok := kt.BaseForm()
	if !ok || baseForm == "" {
		baseForm = kt.Surface
	}
	reading, ok := kt.Reading()
	if !ok {
		reading = ""
	}
	pron, ok := kt.Pronunciation()
	if !ok {
		pron = ""
	}

	return Morpheme{
		Surface:        kt.Surface,
		BaseForm:       baseForm,
		Reading:        reading,
		Pronunciation:  pron,
		POS:            field(0),
		SubClass1:      field(1),
		SubClass2:      field(2),
		SubClass3:      field(3),
		InflectionType: field(4),
		InflectionForm: field(5),
		OriginalForm:   kt.Surface,
	}
}
