package db

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

// SchemaMigration records one applied migration version.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string { return "schema_migrations" }

type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// kanjiV1 is the column set of the first schema revision. It is frozen here so
// v1 keeps creating the same table after the live model grows.
type kanjiV1 struct {
	ID            uint                        `gorm:"primaryKey;autoIncrement"`
	Character     string                      `gorm:"column:kanji;type:varchar(10);not null;uniqueIndex:idx_kanji_kanji"`
	KoreanMeaning string                      `gorm:"column:korean_meaning;type:text"`
	Onyomi        datatypes.JSONSlice[string] `gorm:"column:onyomi;default:'[]'"`
	Kunyomi       datatypes.JSONSlice[string] `gorm:"column:kunyomi;default:'[]'"`
	Strokes       *int                        `gorm:"column:strokes"`
	Radical       *string                     `gorm:"column:radical;type:varchar(10)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (kanjiV1) TableName() string { return "kanji" }

// Migrations is the ordered schema history. Append only.
func Migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_kanji",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&kanjiV1{})
			},
		},
		{
			Version: 2,
			Name:    "add_level_words_examples",
			Up: func(tx *gorm.DB) error {
				m := tx.Migrator()
				for _, field := range []string{"Level", "Words", "ExampleSentences"} {
					if m.HasColumn(&kanji.Kanji{}, field) {
						continue
					}
					if err := m.AddColumn(&kanji.Kanji{}, field); err != nil {
						return fmt.Errorf("add column %s: %w", field, err)
					}
				}
				if !m.HasIndex(&kanji.Kanji{}, "Level") {
					if err := m.CreateIndex(&kanji.Kanji{}, "Level"); err != nil {
						return fmt.Errorf("create level index: %w", err)
					}
				}
				return nil
			},
		},
	}
}

// Migrate applies every pending migration, each in its own transaction.
// Applied versions are skipped, so re-running is a no-op.
func Migrate(db *gorm.DB, log *logger.Logger) error {
	return migrate(db, log, Migrations())
}

func migrate(db *gorm.DB, log *logger.Logger, migrations []Migration) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []SchemaMigration
	if err := db.Order("version ASC").Find(&applied).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		m := m
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if log != nil {
			log.Info("Applied migration", "version", m.Version, "name", m.Name)
		}
	}
	if log != nil && len(pending) == 0 {
		log.Debug("Schema up to date", "version", latestVersion(migrations))
	}
	return nil
}

// Reset drops the kanji table and its migration history, then migrates from
// scratch. All seeded rows are lost.
func Reset(db *gorm.DB, log *logger.Logger) error {
	if err := db.Migrator().DropTable(&kanji.Kanji{}, &SchemaMigration{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if log != nil {
		log.Warn("Dropped kanji table for reset")
	}
	return Migrate(db, log)
}

// AppliedVersion returns the highest applied migration version, 0 if none.
func AppliedVersion(db *gorm.DB) (int, error) {
	var version int
	err := db.Model(&SchemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&version).Error
	return version, err
}

// LatestVersion is the version Migrate brings the schema to.
func LatestVersion() int {
	return latestVersion(Migrations())
}

func latestVersion(migrations []Migration) int {
	latest := 0
	for _, m := range migrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}
