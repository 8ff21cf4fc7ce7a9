package lexical

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// kagomeTokenizer adapts the kagome morphological analyzer with the IPA
// dictionary to the Tokenizer interface.
type kagomeTokenizer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeTokenizer initializes the morphological analyzer. An
// initialization failure aborts only the lexical component, so the error
// is returned rather than handled here.
func NewKagomeTokenizer() (Tokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return &kagomeTokenizer{t: t}, nil
}

func (k *kagomeTokenizer) Tokenize(text string) []Word {
	tokens := k.t.Tokenize(text)
	words := make([]Word, 0, len(tokens))
	for _, tok := range tokens {
		w := Word{Surface: tok.Surface}
		if features := tok.Features(); len(features) > 0 {
			w.POS = features[0]
		}
		if base, ok := tok.BaseForm(); ok {
			w.Base = base
		}
		words = append(words, w)
	}
	return words
}
