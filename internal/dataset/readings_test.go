package dataset

import (
	"testing"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

func TestToHiragana(t *testing.T) {
	if got := toHiragana("ベンキョウ"); got != "べんきょう" {
		t.Fatalf("got %q", got)
	}
	if got := toHiragana("ラーメン"); got != "らーめん" {
		t.Fatalf("prolonged mark must pass through, got %q", got)
	}
}

func TestReadingFillerFillsOnlyMissing(t *testing.T) {
	f, err := NewReadingFiller()
	if err != nil {
		t.Fatalf("NewReadingFiller: %v", err)
	}

	entries := []kanji.Entry{{
		Character: "勉",
		Words: []kanji.Word{
			{Word: "勉強", Meaning: "study"},
			{Word: "勉める", Reading: "つとめる"},
		},
		ExampleSentences: []kanji.ExampleSentence{
			{Sentence: "勉強する"},
		},
	}}

	if n := f.Fill(entries); n != 2 {
		t.Fatalf("filled %d readings, want 2", n)
	}
	if got := entries[0].Words[0].Reading; got != "べんきょう" {
		t.Fatalf("word reading: %q", got)
	}
	if got := entries[0].Words[1].Reading; got != "つとめる" {
		t.Fatalf("existing reading overwritten: %q", got)
	}
	if got := entries[0].ExampleSentences[0].Reading; got != "べんきょうする" {
		t.Fatalf("sentence reading: %q", got)
	}
}
