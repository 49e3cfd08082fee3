package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cocacoran-1/kanji/internal/data/db"
	kanjirepo "github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	"github.com/cocacoran-1/kanji/internal/dataset"
	"github.com/cocacoran-1/kanji/internal/observability"
	"github.com/cocacoran-1/kanji/internal/platform/envutil"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
	"github.com/cocacoran-1/kanji/internal/services"
)

type Config struct {
	Port    string
	LogMode string

	DB      db.Config
	DBReset bool

	DataPath     string
	FillReadings bool

	Seed services.SeedConfig

	CORSOrigins []string
	Otel        observability.OtelConfig
}

// LoadConfig reads the process environment. Unknown seed policy or gate
// values fall back to the defaults with a warning.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.GetEnv("PORT", "3001", log),
		LogMode: envutil.GetEnv("LOG_MODE", "development", log),
		DB: db.Config{
			Driver:     envutil.GetEnv("DB_DRIVER", db.DriverPostgres, log),
			Host:       envutil.GetEnv("DB_HOST", "localhost", log),
			Port:       strconv.Itoa(envutil.GetEnvAsInt("DB_PORT", 5432, log)),
			User:       envutil.GetEnv("DB_USER", "postgres", log),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       envutil.GetEnv("DB_NAME", "kanji", log),
			SSLMode:    envutil.GetEnv("DB_SSLMODE", "disable", log),
			SQLitePath: envutil.GetEnv("DB_SQLITE_PATH", "kanji.db", log),
		},
		DBReset:      envutil.Bool("DB_RESET", false),
		DataPath:     envutil.GetEnv("KANJI_DATA_PATH", dataset.DefaultPath, log),
		FillReadings: envutil.Bool("KANJI_FILL_READINGS", true),
		CORSOrigins:  envutil.List("CORS_ALLOW_ORIGINS", []string{"*"}),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.GetEnv("OTEL_SERVICE_NAME", observability.DefaultServiceName, log),
			Environment: envutil.GetEnv("APP_ENV", "", log),
			Endpoint:    envutil.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: sampleRatio(os.Getenv("OTEL_SAMPLER_RATIO")),
		},
	}

	policy, err := kanjirepo.ParseConflictPolicy(os.Getenv("SEED_CONFLICT_POLICY"))
	if err != nil {
		if log != nil {
			log.Warn("Invalid SEED_CONFLICT_POLICY, using overwrite", "error", err)
		}
		policy = kanjirepo.ConflictOverwrite
	}
	gate, err := services.ParseSeedGate(os.Getenv("SEED_GATE"))
	if err != nil {
		if log != nil {
			log.Warn("Invalid SEED_GATE, using always", "error", err)
		}
		gate = services.SeedGateAlways
	}
	cfg.Seed = services.SeedConfig{Policy: policy, Gate: gate}
	return cfg
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%s", strings.TrimPrefix(c.Port, ":"))
}

func sampleRatio(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.1
	}
	return f
}
