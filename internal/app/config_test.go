package app

import (
	"testing"

	kanjirepo "github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	"github.com/cocacoran-1/kanji/internal/services"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PORT", "DB_NAME", "KANJI_DATA_PATH", "SEED_CONFLICT_POLICY", "SEED_GATE", "CORS_ALLOW_ORIGINS", "DB_RESET", "KANJI_FILL_READINGS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(nil)
	if cfg.Port != "3001" || cfg.Addr() != ":3001" {
		t.Fatalf("port: %q %q", cfg.Port, cfg.Addr())
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Port != "5432" || cfg.DB.Name != "kanji" {
		t.Fatalf("db defaults: %+v", cfg.DB)
	}
	if cfg.DataPath != "kanji_data.json" || !cfg.FillReadings || cfg.DBReset {
		t.Fatalf("dataset defaults: %+v", cfg)
	}
	if cfg.Seed.Policy != kanjirepo.ConflictOverwrite || cfg.Seed.Gate != services.SeedGateAlways {
		t.Fatalf("seed defaults: %+v", cfg.Seed)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors defaults: %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("SEED_CONFLICT_POLICY", "skip")
	t.Setenv("SEED_GATE", "bogus")
	t.Setenv("DB_RESET", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg := LoadConfig(nil)
	if cfg.Addr() != ":8080" || cfg.DB.Port != "5432" || !cfg.DBReset {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Seed.Policy != kanjirepo.ConflictSkip || cfg.Seed.Gate != services.SeedGateAlways {
		t.Fatalf("seed config: %+v", cfg.Seed)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors: %v", cfg.CORSOrigins)
	}
}
