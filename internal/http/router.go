package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/cocacoran-1/kanji/internal/http/handlers"
	httpMW "github.com/cocacoran-1/kanji/internal/http/middleware"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	KanjiHandler  *httpH.KanjiHandler
	HealthHandler *httpH.HealthHandler

	CORSOrigins []string
	// OtelServiceName enables gin tracing when non-empty.
	OtelServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OtelServiceName != "" {
		r.Use(otelgin.Middleware(cfg.OtelServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.KanjiHandler != nil {
			api.GET("/kanji", cfg.KanjiHandler.ListKanji)
			api.GET("/kanji/:character", cfg.KanjiHandler.GetKanji)
		}
	}
	return r
}
