package kanji

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/pkg/dbctx"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

// ConflictPolicy decides what an upsert does when the character already exists.
type ConflictPolicy string

const (
	// ConflictOverwrite replaces every non-key column and keeps the row id.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictSkip leaves the existing row untouched.
	ConflictSkip ConflictPolicy = "skip"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictOverwrite:
		return ConflictOverwrite, nil
	case ConflictSkip:
		return ConflictSkip, nil
	default:
		return "", fmt.Errorf("%w: unknown conflict policy %q (want overwrite or skip)", pkgerrors.ErrInvalidArgument, s)
	}
}

// upsertColumns are the non-key columns rewritten under ConflictOverwrite.
var upsertColumns = []string{
	"korean_meaning",
	"onyomi",
	"kunyomi",
	"strokes",
	"level",
	"radical",
	"words",
	"example_sentences",
	"updated_at",
}

type KanjiRepo interface {
	Upsert(dbc dbctx.Context, row *types.Kanji, policy ConflictPolicy) error
	List(dbc dbctx.Context) ([]*types.Kanji, error)
	GetByCharacter(dbc dbctx.Context, character string) (*types.Kanji, error)
	Count(dbc dbctx.Context) (int64, error)
}

type kanjiRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKanjiRepo(db *gorm.DB, baseLog *logger.Logger) KanjiRepo {
	return &kanjiRepo{
		db:  db,
		log: baseLog.With("repo", "KanjiRepo"),
	}
}

func (r *kanjiRepo) Upsert(dbc dbctx.Context, row *types.Kanji, policy ConflictPolicy) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || strings.TrimSpace(row.Character) == "" {
		return fmt.Errorf("upsert kanji: %w: empty character", pkgerrors.ErrInvalidArgument)
	}

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "kanji"}},
	}
	switch policy {
	case ConflictSkip:
		onConflict.DoNothing = true
	default:
		onConflict.DoUpdates = clause.AssignmentColumns(upsertColumns)
	}

	if err := transaction.WithContext(dbc.Context()).
		Clauses(onConflict).
		Create(row).Error; err != nil {
		return fmt.Errorf("upsert kanji %s: %w", row.Character, err)
	}
	return nil
}

func (r *kanjiRepo) List(dbc dbctx.Context) ([]*types.Kanji, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Kanji{}
	if err := transaction.WithContext(dbc.Context()).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *kanjiRepo) GetByCharacter(dbc dbctx.Context, character string) (*types.Kanji, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if character == "" {
		return nil, nil
	}
	var rows []*types.Kanji
	if err := transaction.WithContext(dbc.Context()).
		Where("kanji = ?", character).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *kanjiRepo) Count(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(dbc.Context()).
		Model(&types.Kanji{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
