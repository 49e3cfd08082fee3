package services

import (
	"context"
	"fmt"
	"strings"

	kanjirepo "github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	types "github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/pkg/dbctx"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

type KanjiService interface {
	List(ctx context.Context) ([]*types.Kanji, error)
	Get(ctx context.Context, character string) (*types.Kanji, error)
}

type kanjiService struct {
	log  *logger.Logger
	repo kanjirepo.KanjiRepo
}

func NewKanjiService(log *logger.Logger, repo kanjirepo.KanjiRepo) KanjiService {
	return &kanjiService{
		log:  log.With("service", "KanjiService"),
		repo: repo,
	}
}

func (s *kanjiService) List(ctx context.Context) ([]*types.Kanji, error) {
	rows, err := s.repo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list kanji: %w", err)
	}
	return rows, nil
}

// Get matches the stored character exactly; a blank character never matches.
func (s *kanjiService) Get(ctx context.Context, character string) (*types.Kanji, error) {
	if strings.TrimSpace(character) == "" {
		return nil, pkgerrors.ErrNotFound
	}
	row, err := s.repo.GetByCharacter(dbctx.Context{Ctx: ctx}, character)
	if err != nil {
		return nil, fmt.Errorf("get kanji %s: %w", character, err)
	}
	if row == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return row, nil
}
