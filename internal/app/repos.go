package app

import (
	"gorm.io/gorm"

	"github.com/cocacoran-1/kanji/internal/data/repos"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

type Repos struct {
	Kanji repos.KanjiRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Kanji: repos.NewKanjiRepo(db, log),
	}
}
