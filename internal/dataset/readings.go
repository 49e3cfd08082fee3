package dataset

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

// ReadingFiller derives hiragana readings for words and example sentences that
// arrive without one.
type ReadingFiller struct {
	t *tokenizer.Tokenizer
}

func NewReadingFiller() (*ReadingFiller, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &ReadingFiller{t: t}, nil
}

// Reading returns the hiragana reading of text. Tokens the dictionary has no
// reading for keep their surface form.
func (f *ReadingFiller) Reading(text string) string {
	var sb strings.Builder
	for _, token := range f.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		// IPA features: 7 is the katakana reading.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			sb.WriteString(toHiragana(features[7]))
			continue
		}
		sb.WriteString(token.Surface)
	}
	return sb.String()
}

// Fill sets missing readings in place and returns how many were filled.
func (f *ReadingFiller) Fill(entries []kanji.Entry) int {
	filled := 0
	for i := range entries {
		for j := range entries[i].Words {
			w := &entries[i].Words[j]
			if w.Reading == "" && w.Word != "" {
				w.Reading = f.Reading(w.Word)
				filled++
			}
		}
		for j := range entries[i].ExampleSentences {
			s := &entries[i].ExampleSentences[j]
			if s.Reading == "" && s.Sentence != "" {
				s.Reading = f.Reading(s.Sentence)
				filled++
			}
		}
	}
	return filled
}

// toHiragana maps katakana ァ..ヶ onto hiragana; the prolonged sound mark and
// everything else pass through.
func toHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}
