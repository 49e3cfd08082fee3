package kanji

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MeaningSeparator joins list-shaped meanings into the korean_meaning column.
const MeaningSeparator = ", "

type Word struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
}

type ExampleSentence struct {
	Sentence    string `json:"sentence"`
	Reading     string `json:"reading"`
	Translation string `json:"translation"`
}

// Kanji is one row of the kanji table. The dataset file owns every row; the
// table is rebuilt from it on startup and never written through the API.
type Kanji struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Character string `gorm:"column:kanji;type:varchar(10);not null;uniqueIndex" json:"kanji"`

	KoreanMeaning string   `gorm:"column:korean_meaning;type:text" json:"korean_meaning"`
	Meanings      []string `gorm:"-" json:"meanings"`

	Onyomi  datatypes.JSONSlice[string] `gorm:"column:onyomi;default:'[]'" json:"onyomi"`
	Kunyomi datatypes.JSONSlice[string] `gorm:"column:kunyomi;default:'[]'" json:"kunyomi"`
	Strokes *int                        `gorm:"column:strokes" json:"strokes"`
	Level   *string                     `gorm:"column:level;type:varchar(10);index" json:"level,omitempty"`
	Radical *string                     `gorm:"column:radical;type:varchar(10)" json:"radical,omitempty"`

	Words            datatypes.JSONSlice[Word]            `gorm:"column:words;default:'[]'" json:"words"`
	ExampleSentences datatypes.JSONSlice[ExampleSentence] `gorm:"column:example_sentences;default:'[]'" json:"example_sentences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Kanji) TableName() string { return "kanji" }

// AfterFind restores the API shape of a stored row.
func (k *Kanji) AfterFind(tx *gorm.DB) error {
	k.Normalize()
	return nil
}

// Normalize replaces null lists with empty ones and derives Meanings.
func (k *Kanji) Normalize() {
	if k == nil {
		return
	}
	if k.Onyomi == nil {
		k.Onyomi = datatypes.JSONSlice[string]{}
	}
	if k.Kunyomi == nil {
		k.Kunyomi = datatypes.JSONSlice[string]{}
	}
	if k.Words == nil {
		k.Words = datatypes.JSONSlice[Word]{}
	}
	if k.ExampleSentences == nil {
		k.ExampleSentences = datatypes.JSONSlice[ExampleSentence]{}
	}
	k.Meanings = SplitMeanings(k.KoreanMeaning)
}

// LevelLabel returns the level or "" when unset.
func (k *Kanji) LevelLabel() string {
	if k == nil || k.Level == nil {
		return ""
	}
	return *k.Level
}

func SplitMeanings(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, MeaningSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
