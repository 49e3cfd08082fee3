package kanji

import (
	"context"
	"errors"
	"testing"

	"github.com/cocacoran-1/kanji/internal/data/repos/testutil"
	"github.com/cocacoran-1/kanji/internal/pkg/dbctx"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
)

func TestKanjiRepoUpsertOverwriteKeepsID(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewKanjiRepo(db, testutil.Logger(t))

	if err := repo.Upsert(dbc, testutil.NewKanji("日", "sun/day", 4, "N5"), ConflictOverwrite); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	first, err := repo.GetByCharacter(dbc, "日")
	if err != nil || first == nil {
		t.Fatalf("GetByCharacter: row=%v err=%v", first, err)
	}

	changed := testutil.NewKanji("日", "해, 날", 5, "N4")
	if err := repo.Upsert(dbc, changed, ConflictOverwrite); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}
	got, err := repo.GetByCharacter(dbc, "日")
	if err != nil || got == nil {
		t.Fatalf("GetByCharacter after overwrite: row=%v err=%v", got, err)
	}
	if got.ID != first.ID {
		t.Fatalf("identity changed: got=%d want=%d", got.ID, first.ID)
	}
	if got.KoreanMeaning != "해, 날" || got.Strokes == nil || *got.Strokes != 5 || got.LevelLabel() != "N4" {
		t.Fatalf("non-key columns not overwritten: %+v", got)
	}
	if len(got.Meanings) != 2 || got.Meanings[0] != "해" || got.Meanings[1] != "날" {
		t.Fatalf("unexpected meanings: %v", got.Meanings)
	}
	if n, err := repo.Count(dbc); err != nil || n != 1 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
}

func TestKanjiRepoUpsertSkipIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewKanjiRepo(db, testutil.Logger(t))

	for i := 0; i < 3; i++ {
		row := testutil.NewKanji("月", "moon", 4+i, "N5")
		if err := repo.Upsert(dbc, row, ConflictSkip); err != nil {
			t.Fatalf("Upsert #%d: %v", i, err)
		}
	}
	if n, err := repo.Count(dbc); err != nil || n != 1 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}
	got, err := repo.GetByCharacter(dbc, "月")
	if err != nil || got == nil {
		t.Fatalf("GetByCharacter: row=%v err=%v", got, err)
	}
	if got.Strokes == nil || *got.Strokes != 4 {
		t.Fatalf("skip policy modified row: strokes=%v", got.Strokes)
	}
}

func TestKanjiRepoListOrdersByID(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewKanjiRepo(db, testutil.Logger(t))

	for _, ch := range []string{"水", "火", "木"} {
		testutil.SeedKanji(t, ctx, tx, testutil.NewKanji(ch, ch, 4, ""))
	}
	rows, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("List len=%d", len(rows))
	}
	want := []string{"水", "火", "木"}
	for i, row := range rows {
		if row.Character != want[i] {
			t.Fatalf("row %d: got %s want %s", i, row.Character, want[i])
		}
		if i > 0 && rows[i-1].ID >= row.ID {
			t.Fatalf("ids not ascending: %d then %d", rows[i-1].ID, row.ID)
		}
		if row.Level != nil {
			t.Fatalf("expected null level, got %q", *row.Level)
		}
	}
}

func TestKanjiRepoGetMissing(t *testing.T) {
	db := testutil.DB(t)
	repo := NewKanjiRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	got, err := repo.GetByCharacter(dbc, "月")
	if err != nil {
		t.Fatalf("GetByCharacter: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil row, got %+v", got)
	}
	if err := repo.Upsert(dbc, testutil.NewKanji("", "", 0, ""), ConflictOverwrite); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty character, got %v", err)
	}
}

func TestParseConflictPolicy(t *testing.T) {
	cases := map[string]ConflictPolicy{"": ConflictOverwrite, "Overwrite": ConflictOverwrite, " skip ": ConflictSkip}
	for raw, want := range cases {
		got, err := ParseConflictPolicy(raw)
		if err != nil || got != want {
			t.Fatalf("ParseConflictPolicy(%q)=%q,%v want %q", raw, got, err, want)
		}
	}
	if _, err := ParseConflictPolicy("merge"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for unknown policy, got %v", err)
	}
}
