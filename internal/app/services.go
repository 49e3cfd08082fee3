package app

import (
	"github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
	"github.com/cocacoran-1/kanji/internal/services"
)

type Services struct {
	Seed  services.SeedService
	Kanji services.KanjiService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, entries []kanji.Entry) Services {
	log.Info("Wiring services...")
	return Services{
		Seed:  services.NewSeedService(log, repos.Kanji, entries, cfg.Seed),
		Kanji: services.NewKanjiService(log, repos.Kanji),
	}
}
