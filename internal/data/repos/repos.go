// Package repos re-exports the storage repositories so callers wire them from
// one import.
package repos

import (
	"gorm.io/gorm"

	"github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

type KanjiRepo = kanji.KanjiRepo

type ConflictPolicy = kanji.ConflictPolicy

const (
	ConflictSkip      = kanji.ConflictSkip
	ConflictOverwrite = kanji.ConflictOverwrite
)

func NewKanjiRepo(db *gorm.DB, baseLog *logger.Logger) KanjiRepo {
	return kanji.NewKanjiRepo(db, baseLog)
}
