package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	kanjirepo "github.com/cocacoran-1/kanji/internal/data/repos/kanji"
	types "github.com/cocacoran-1/kanji/internal/domain/kanji"
	"github.com/cocacoran-1/kanji/internal/pkg/dbctx"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
)

// SeedGate decides whether a seeding pass runs at all.
type SeedGate string

const (
	// SeedGateAlways runs every pass.
	SeedGateAlways SeedGate = "always"
	// SeedGateCount runs only while the table holds fewer rows than the
	// dataset. Edits to existing entries are not picked up once the counts
	// match.
	SeedGateCount SeedGate = "count"
)

func ParseSeedGate(s string) (SeedGate, error) {
	switch SeedGate(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeedGateAlways:
		return SeedGateAlways, nil
	case SeedGateCount:
		return SeedGateCount, nil
	default:
		return "", fmt.Errorf("%w: unknown seed gate %q (want always or count)", pkgerrors.ErrInvalidArgument, s)
	}
}

type SeedConfig struct {
	Policy kanjirepo.ConflictPolicy
	Gate   SeedGate
	// DryRun evaluates the gate and builds every row without writing.
	DryRun bool
}

type SeedReport struct {
	Total   int
	Applied int
	Skipped bool
	Reason  string
}

type SeedService interface {
	Run(ctx context.Context) (SeedReport, error)
}

type seedService struct {
	log     *logger.Logger
	repo    kanjirepo.KanjiRepo
	entries []types.Entry
	cfg     SeedConfig
}

func NewSeedService(log *logger.Logger, repo kanjirepo.KanjiRepo, entries []types.Entry, cfg SeedConfig) SeedService {
	if cfg.Policy == "" {
		cfg.Policy = kanjirepo.ConflictOverwrite
	}
	if cfg.Gate == "" {
		cfg.Gate = SeedGateAlways
	}
	return &seedService{
		log:     log.With("service", "SeedService"),
		repo:    repo,
		entries: entries,
		cfg:     cfg,
	}
}

func (s *seedService) Run(ctx context.Context) (SeedReport, error) {
	report := SeedReport{Total: len(s.entries)}
	if len(s.entries) == 0 {
		report.Skipped = true
		report.Reason = "no dataset entries"
		s.log.Info("No kanji data loaded, skipping seeding")
		return report, nil
	}

	dbc := dbctx.Context{Ctx: ctx}
	if s.cfg.Gate == SeedGateCount {
		n, err := s.repo.Count(dbc)
		if err != nil {
			s.log.Error("Seed row count failed", "error", err)
			return report, fmt.Errorf("count kanji: %w", err)
		}
		if n >= int64(len(s.entries)) {
			report.Skipped = true
			report.Reason = "table already holds the dataset"
			s.log.Info("Kanji table is up to date, skipping seeding", "rows", n, "entries", len(s.entries))
			return report, nil
		}
	}

	if s.cfg.DryRun {
		for i := range s.entries {
			_ = s.entries[i].Model()
		}
		report.Skipped = true
		report.Reason = "dry run"
		s.log.Info("Dry run, no rows written", "entries", len(s.entries), "policy", s.cfg.Policy)
		return report, nil
	}

	s.log.Info("Seeding kanji table", "entries", len(s.entries), "policy", s.cfg.Policy, "gate", s.cfg.Gate)
	for i := range s.entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		row := s.entries[i].Model()
		if err := s.repo.Upsert(dbc, row, s.cfg.Policy); err != nil {
			kv := []interface{}{"kanji", row.Character, "index", i, "applied", report.Applied, "error", err}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				kv = append(kv, "sqlstate", pgErr.Code, "constraint", pgErr.ConstraintName)
			}
			s.log.Error("Seeding aborted", kv...)
			return report, fmt.Errorf("seed entry %d (%s): %w", i, row.Character, err)
		}
		report.Applied++
	}
	s.log.Info("Seeding completed", "applied", report.Applied)
	return report, nil
}
