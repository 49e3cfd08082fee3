package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cocacoran-1/kanji/internal/data/db"
	"github.com/cocacoran-1/kanji/internal/dataset"
	"github.com/cocacoran-1/kanji/internal/domain/kanji"
	httpx "github.com/cocacoran-1/kanji/internal/http"
	"github.com/cocacoran-1/kanji/internal/observability"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
	"github.com/cocacoran-1/kanji/internal/services"
)

const pingTimeout = 5 * time.Second

// App owns the loaded dataset, the connection pool and the HTTP server from
// startup until Close.
type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.Service
	Entries  []kanji.Entry
	Repos    Repos
	Services Services
	Server   *httpx.Server

	otelShutdown func(context.Context) error
}

// New builds the logger and config from the environment.
func New(ctx context.Context, logMode string) (*App, error) {
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Loading environment variables...")
	return NewWithConfig(ctx, log, LoadConfig(log))
}

// NewWithConfig wires every component. Only an unusable database config is an
// error; dataset problems leave the app with an empty dataset.
func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	entries := loadDataset(ctx, log, cfg)

	dbService, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	reposet := wireRepos(dbService.DB(), log)
	serviceset := wireServices(log, cfg, reposet, entries)
	handlerset := wireHandlers(log, serviceset)
	server := wireServer(log, cfg, handlerset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           dbService,
		Entries:      entries,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func loadDataset(ctx context.Context, log *logger.Logger, cfg Config) []kanji.Entry {
	entries, report, err := dataset.Load(ctx, cfg.DataPath)
	if err != nil {
		log.Error("Error loading kanji dataset, seeding will be skipped", "path", report.Source, "error", err)
		return nil
	}
	log.Info("Kanji data loaded",
		"path", report.Source,
		"entries", report.Entries,
		"dropped_entries", report.DroppedEntries,
		"dropped_words", report.DroppedWords,
		"dropped_examples", report.DroppedExamples,
	)
	if !cfg.FillReadings {
		return entries
	}
	filler, err := dataset.NewReadingFiller()
	if err != nil {
		log.Warn("Reading tokenizer unavailable, leaving readings as-is", "error", err)
		return entries
	}
	if n := filler.Fill(entries); n > 0 {
		log.Info("Filled missing readings", "count", n)
	}
	return entries
}

// Bootstrap verifies the connection, migrates (or resets) the schema and
// seeds. A dry run leaves the schema untouched. The server keeps running when
// this fails.
func (a *App) Bootstrap(ctx context.Context) (services.SeedReport, error) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.DB.Ping(pingCtx); err != nil {
		return services.SeedReport{}, fmt.Errorf("database unreachable: %w", err)
	}
	a.Log.Info("Database connection verified", "driver", a.DB.Driver())

	if a.Cfg.Seed.DryRun {
		a.logDryRunSchema()
		return a.Services.Seed.Run(ctx)
	}

	migrateFn := db.Migrate
	if a.Cfg.DBReset {
		migrateFn = db.Reset
	}
	if err := migrateFn(a.DB.DB().WithContext(ctx), a.Log); err != nil {
		return services.SeedReport{}, fmt.Errorf("migrate: %w", err)
	}

	report, err := a.Services.Seed.Run(ctx)
	if err != nil {
		return report, fmt.Errorf("seed: %w", err)
	}
	return report, nil
}

func (a *App) logDryRunSchema() {
	applied, err := db.AppliedVersion(a.DB.DB())
	if err != nil {
		a.Log.Warn("Dry run: schema version unknown", "error", err)
	}
	a.Log.Info("Dry run: schema left untouched",
		"would_reset", a.Cfg.DBReset,
		"applied_version", applied,
		"latest_version", db.LatestVersion(),
	)
}

// Run serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, a.Cfg.Addr())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
