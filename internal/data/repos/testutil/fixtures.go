package testutil

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

func IntPtr(v int) *int { return &v }

func StrPtr(v string) *string { return &v }

// NewKanji builds an unsaved row with every list populated.
func NewKanji(character, meaning string, strokes int, level string) *kanji.Kanji {
	row := &kanji.Kanji{
		Character:     character,
		KoreanMeaning: meaning,
		Onyomi:        datatypes.JSONSlice[string]{"オン"},
		Kunyomi:       datatypes.JSONSlice[string]{"くん"},
		Strokes:       IntPtr(strokes),
		Words: datatypes.JSONSlice[kanji.Word]{
			{Word: character + "曜日", Reading: "ようび", Meaning: meaning},
		},
		ExampleSentences: datatypes.JSONSlice[kanji.ExampleSentence]{},
	}
	if level != "" {
		row.Level = StrPtr(level)
	}
	return row
}

func SeedKanji(tb testing.TB, ctx context.Context, tx *gorm.DB, row *kanji.Kanji) *kanji.Kanji {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed kanji %s: %v", row.Character, err)
	}
	return row
}
