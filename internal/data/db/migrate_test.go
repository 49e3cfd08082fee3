package db

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrateCreatesFinalSchema(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db, nil); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	m := db.Migrator()
	if !m.HasTable("kanji") {
		t.Fatalf("kanji table missing")
	}
	for _, col := range []string{"kanji", "korean_meaning", "onyomi", "kunyomi", "strokes", "radical", "level", "words", "example_sentences"} {
		if !m.HasColumn(&kanji.Kanji{}, col) {
			t.Fatalf("column %s missing", col)
		}
	}
	if !m.HasIndex(&kanji.Kanji{}, "idx_kanji_level") {
		t.Fatalf("level index missing")
	}
	if v, err := AppliedVersion(db); err != nil || v != 2 {
		t.Fatalf("AppliedVersion: v=%d err=%v", v, err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 2; i++ {
		if err := Migrate(db, nil); err != nil {
			t.Fatalf("Migrate #%d: %v", i, err)
		}
	}
	var n int64
	if err := db.Model(&SchemaMigration{}).Count(&n).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != int64(len(Migrations())) {
		t.Fatalf("schema_migrations rows: got=%d want=%d", n, len(Migrations()))
	}
}

func TestMigrateUpgradesV1Table(t *testing.T) {
	db := openTestDB(t)
	if err := migrate(db, nil, Migrations()[:1]); err != nil {
		t.Fatalf("migrate v1: %v", err)
	}
	if db.Migrator().HasColumn(&kanji.Kanji{}, "level") {
		t.Fatalf("v1 schema should not have level")
	}
	if err := db.Exec(`INSERT INTO kanji (kanji, korean_meaning, onyomi, kunyomi, strokes, created_at, updated_at) VALUES ('日', 'sun/day', '["ニチ"]', '["ひ"]', 4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error; err != nil {
		t.Fatalf("insert v1 row: %v", err)
	}

	if err := Migrate(db, nil); err != nil {
		t.Fatalf("Migrate to latest: %v", err)
	}
	var row kanji.Kanji
	if err := db.Where("kanji = ?", "日").First(&row).Error; err != nil {
		t.Fatalf("load upgraded row: %v", err)
	}
	if row.Level != nil || len(row.Words) != 0 || row.Words == nil {
		t.Fatalf("unexpected defaults after upgrade: level=%v words=%v", row.Level, row.Words)
	}
	if len(row.Onyomi) != 1 || row.Onyomi[0] != "ニチ" {
		t.Fatalf("v1 data lost: %v", row.Onyomi)
	}
}

func TestResetDropsRows(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db, nil); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := db.Create(&kanji.Kanji{Character: "月"}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := Reset(db, nil); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var n int64
	if err := db.Model(&kanji.Kanji{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows survived reset: %d", n)
	}
	if v, err := AppliedVersion(db); err != nil || v != 2 {
		t.Fatalf("AppliedVersion after reset: v=%d err=%v", v, err)
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Driver: DriverPostgres, Host: "localhost", Port: "5432", User: "postgres", Password: "pw", Name: "kanji"}
	if got := cfg.DSN(); got != "postgres://postgres:pw@localhost:5432/kanji?sslmode=disable" {
		t.Fatalf("DSN: %q", got)
	}
	escaped := Config{Host: "db", Port: "5432", User: "app", Password: "p@ss/word", Name: "kanji", SSLMode: "require"}
	if got := escaped.DSN(); got != "postgres://app:p%40ss%2Fword@db:5432/kanji?sslmode=require" {
		t.Fatalf("escaped DSN: %q", got)
	}
	if got := (Config{Driver: "SQLite", SQLitePath: "x.db"}).DSN(); got != "x.db" {
		t.Fatalf("sqlite DSN: %q", got)
	}
}
