package app

import (
	httpx "github.com/cocacoran-1/kanji/internal/http"
	httpH "github.com/cocacoran-1/kanji/internal/http/handlers"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Kanji  *httpH.KanjiHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Kanji:  httpH.NewKanjiHandler(log, services.Kanji),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *httpx.Server {
	rc := httpx.RouterConfig{
		Log:           log,
		KanjiHandler:  handlers.Kanji,
		HealthHandler: handlers.Health,
		CORSOrigins:   cfg.CORSOrigins,
	}
	if cfg.Otel.Enabled {
		rc.OtelServiceName = cfg.Otel.ServiceName
	}
	return httpx.NewServer(rc)
}
