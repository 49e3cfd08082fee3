package kanji

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// Entry is one record of the dataset file. It accepts the column names used by
// every revision of the dataset (kanji/character, korean_meaning/meaning/meanings,
// strokes/stroke_count, level/jlpt_level).
type Entry struct {
	Character        string
	KoreanMeaning    *string
	Onyomi           []string
	Kunyomi          []string
	Strokes          *int
	Level            *string
	Radical          *string
	Words            []Word
	ExampleSentences []ExampleSentence
}

type rawEntry struct {
	Kanji            string            `json:"kanji"`
	Character        string            `json:"character"`
	KoreanMeaning    *string           `json:"korean_meaning"`
	Meaning          *string           `json:"meaning"`
	Meanings         []string          `json:"meanings"`
	Onyomi           []string          `json:"onyomi"`
	Kunyomi          []string          `json:"kunyomi"`
	Strokes          flexInt           `json:"strokes"`
	StrokeCount      flexInt           `json:"stroke_count"`
	Level            flexLevel         `json:"level"`
	JLPTLevel        flexLevel         `json:"jlpt_level"`
	Radical          *string           `json:"radical"`
	Words            []Word            `json:"words"`
	ExampleSentences []ExampleSentence `json:"example_sentences"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Entry{
		Character:        strings.TrimSpace(firstNonEmpty(raw.Kanji, raw.Character)),
		Onyomi:           raw.Onyomi,
		Kunyomi:          raw.Kunyomi,
		Radical:          trimmedPtr(raw.Radical),
		Words:            raw.Words,
		ExampleSentences: raw.ExampleSentences,
	}
	switch {
	case raw.KoreanMeaning != nil:
		out.KoreanMeaning = raw.KoreanMeaning
	case raw.Meaning != nil:
		out.KoreanMeaning = raw.Meaning
	case raw.Meanings != nil:
		joined := strings.Join(compact(raw.Meanings), MeaningSeparator)
		out.KoreanMeaning = &joined
	}
	if raw.Strokes.value != nil {
		out.Strokes = raw.Strokes.value
	} else {
		out.Strokes = raw.StrokeCount.value
	}
	if raw.Level.value != nil {
		out.Level = raw.Level.value
	} else {
		out.Level = raw.JLPTLevel.value
	}
	*e = out
	return nil
}

// Model builds the table row, defaulting absent lists to empty and absent
// scalars to null.
func (e Entry) Model() *Kanji {
	row := &Kanji{
		Character:        e.Character,
		Onyomi:           datatypes.JSONSlice[string](compact(e.Onyomi)),
		Kunyomi:          datatypes.JSONSlice[string](compact(e.Kunyomi)),
		Strokes:          e.Strokes,
		Level:            e.Level,
		Radical:          e.Radical,
		Words:            datatypes.JSONSlice[Word](append([]Word{}, e.Words...)),
		ExampleSentences: datatypes.JSONSlice[ExampleSentence](append([]ExampleSentence{}, e.ExampleSentences...)),
	}
	if e.KoreanMeaning != nil {
		row.KoreanMeaning = strings.TrimSpace(*e.KoreanMeaning)
	}
	row.Normalize()
	return row
}

// flexInt accepts a JSON number or a numeric string.
type flexInt struct {
	value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		fl, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("stroke count %q: %w", n.String(), err)
		}
		i = int(fl)
	}
	f.value = &i
	return nil
}

// flexLevel accepts "N5", 5 (coerced to "N5") or null.
type flexLevel struct {
	value *string
}

func (f *flexLevel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s != "" {
			f.value = &s
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	s := "N" + n.String()
	f.value = &s
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
