package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

type fakeAPI struct {
	records  []kanji.Kanji
	listErr  error
	getCalls []string
}

func (f *fakeAPI) ListKanji(ctx context.Context) ([]kanji.Kanji, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeAPI) GetKanji(ctx context.Context, character string) (*kanji.Kanji, error) {
	f.getCalls = append(f.getCalls, character)
	for i := range f.records {
		if f.records[i].Character == character {
			k := f.records[i]
			return &k, nil
		}
	}
	return nil, errors.New("Kanji not found")
}

func record(character, level string) kanji.Kanji {
	k := kanji.Kanji{Character: character, KoreanMeaning: character + " meaning"}
	if level != "" {
		k.Level = &level
	}
	k.Normalize()
	return k
}

// run executes cmd and feeds every resulting message except spinner ticks
// back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
		return m
	case spinner.TickMsg, nil:
		return m
	}
	next, follow := m.Update(msg)
	return run(t, next.(Model), follow)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, api *fakeAPI, opts ...Option) Model {
	t.Helper()
	m := New(api, opts...)
	m = run(t, m, m.Init())
	if m.ListState() != ListLoaded {
		t.Fatalf("list not loaded: state=%v", m.ListState())
	}
	return m
}

func TestModelLoadsList(t *testing.T) {
	m := loaded(t, &fakeAPI{records: []kanji.Kanji{record("日", "N5"), record("月", "N5")}})
	if m.Current() != "日" || m.DetailState() != DetailIdle {
		t.Fatalf("unexpected initial state: current=%q detail=%v", m.Current(), m.DetailState())
	}
	if !strings.Contains(m.View(), "月") {
		t.Fatalf("list view missing records:\n%s", m.View())
	}
}

func TestModelListFailure(t *testing.T) {
	m := New(&fakeAPI{listErr: errors.New("connection refused")})
	m = run(t, m, m.Init())
	if m.ListState() != ListFailed {
		t.Fatalf("want ListFailed, got %v", m.ListState())
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Fatalf("error not rendered:\n%s", m.View())
	}
}

func TestSelectThenReselectTogglesClosedWithoutRequest(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{record("日", "N5"), record("月", "N5")}}
	m := loaded(t, api)

	m = press(t, m, keyEnter)
	if m.DetailState() != DetailLoaded || m.Displayed() != "日" {
		t.Fatalf("detail not loaded: state=%v displayed=%q", m.DetailState(), m.Displayed())
	}
	if len(api.getCalls) != 1 {
		t.Fatalf("want 1 request, got %v", api.getCalls)
	}

	next, cmd := m.Update(keySpace)
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("toggle-close must not issue a command")
	}
	if m.DetailState() != DetailIdle || m.Displayed() != "" {
		t.Fatalf("detail not closed: state=%v displayed=%q", m.DetailState(), m.Displayed())
	}
	if len(api.getCalls) != 1 {
		t.Fatalf("toggle-close issued a request: %v", api.getCalls)
	}

	// Reopening fetches again; details are not cached.
	m = press(t, m, keyEnter)
	if len(api.getCalls) != 2 || m.DetailState() != DetailLoaded {
		t.Fatalf("reopen: calls=%v state=%v", api.getCalls, m.DetailState())
	}
}

func TestSelectionGatedWhileLoading(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{record("日", ""), record("月", "")}}
	m := loaded(t, api)

	next, cmd := m.Update(keyEnter)
	m = next.(Model)
	if cmd == nil || m.DetailState() != DetailLoading {
		t.Fatalf("expected loading with a pending command")
	}
	m = press(t, m, keyDown)
	next, cmd = m.Update(keyEnter)
	m = next.(Model)
	if cmd != nil || m.Displayed() != "日" {
		t.Fatalf("selection should be ignored while loading: displayed=%q", m.Displayed())
	}
}

func TestDetailFailure(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{record("日", "")}}
	m := loaded(t, api)
	api.records = nil

	m = press(t, m, keyEnter)
	if m.DetailState() != DetailFailed {
		t.Fatalf("want DetailFailed, got %v", m.DetailState())
	}
	if !strings.Contains(m.View(), "Kanji not found") {
		t.Fatalf("detail error not rendered:\n%s", m.View())
	}
}

func TestReselectAfterDetailFailureRetries(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{record("日", "")}}
	m := loaded(t, api)
	saved := api.records
	api.records = nil

	m = press(t, m, keyEnter)
	if m.DetailState() != DetailFailed || m.Displayed() != "" {
		t.Fatalf("failure: state=%v displayed=%q", m.DetailState(), m.Displayed())
	}
	if !strings.Contains(m.View(), "Failed to load 日") {
		t.Fatalf("failed character not rendered:\n%s", m.View())
	}

	api.records = saved
	m = press(t, m, keyEnter)
	if len(api.getCalls) != 2 {
		t.Fatalf("reselect should request again, calls=%v", api.getCalls)
	}
	if m.DetailState() != DetailLoaded || m.Displayed() != "日" {
		t.Fatalf("retry: state=%v displayed=%q", m.DetailState(), m.Displayed())
	}
}

func TestRightArrowWrapsWithinLevelGroup(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{
		record("日", "N5"),
		record("学", "N4"),
		record("月", "N5"),
		record("火", "N5"),
	}}
	m := loaded(t, api, WithGrouping(true))

	m = press(t, m, keyEnter)
	want := []string{"月", "火", "日", "月"}
	for i, w := range want {
		m = press(t, m, keyRight)
		if m.Displayed() != w || m.DetailState() != DetailLoaded {
			t.Fatalf("step %d: want %s got %q (state %v)", i, w, m.Displayed(), m.DetailState())
		}
		if m.Current() != w {
			t.Fatalf("step %d: cursor not following selection: %q", i, m.Current())
		}
	}

	m = press(t, m, keyLeft)
	if m.Displayed() != "日" {
		t.Fatalf("left: want 日 got %q", m.Displayed())
	}
	m = press(t, m, keyLeft)
	if m.Displayed() != "火" {
		t.Fatalf("left wrap: want 火 got %q", m.Displayed())
	}
}

func TestArrowWithoutDisplayedRecordIsNoop(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{record("日", "N5"), record("月", "N5")}}
	m := loaded(t, api, WithGrouping(true))
	next, cmd := m.Update(keyRight)
	if cmd != nil || next.(Model).Displayed() != "" || len(api.getCalls) != 0 {
		t.Fatalf("right arrow with nothing displayed should do nothing")
	}
}

func TestLevelJumpSelectsFirstRecordOfGroup(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{
		record("日", "N5"),
		record("学", "N4"),
		record("月", "N5"),
		record("何", ""),
		record("校", "N4"),
	}}
	m := loaded(t, api, WithGrouping(true))

	m = press(t, m, runes("]"))
	if m.Displayed() != "学" || m.Current() != "学" {
		t.Fatalf("] : want 学 got displayed=%q current=%q", m.Displayed(), m.Current())
	}
	m = press(t, m, runes("]"))
	if m.Displayed() != "何" {
		t.Fatalf("] : want unleveled 何 got %q", m.Displayed())
	}
	m = press(t, m, runes("]"))
	if m.Displayed() != "日" {
		t.Fatalf("] wrap: want 日 got %q", m.Displayed())
	}
	m = press(t, m, runes("["))
	if m.Displayed() != "何" {
		t.Fatalf("[ wrap: want 何 got %q", m.Displayed())
	}
	if !strings.Contains(m.View(), UnleveledLabel) {
		t.Fatalf("grouped view missing unleveled header:\n%s", m.View())
	}
}

func TestTabTogglesGroupingAndKeepsCursor(t *testing.T) {
	api := &fakeAPI{records: []kanji.Kanji{
		record("日", "N5"),
		record("学", "N4"),
		record("月", "N5"),
	}}
	m := loaded(t, api)
	m = press(t, m, keyDown)
	m = press(t, m, keyDown)
	if m.Current() != "月" {
		t.Fatalf("cursor: want 月 got %q", m.Current())
	}

	m = press(t, m, keyTab)
	if !m.Grouped() || m.Current() != "月" {
		t.Fatalf("tab: grouped=%v current=%q", m.Grouped(), m.Current())
	}
	// Grouped order is 日 月 学, so one more step down lands on 学.
	m = press(t, m, keyDown)
	if m.Current() != "学" {
		t.Fatalf("grouped order: want 学 got %q", m.Current())
	}
}

func TestGroupByLevelFirstAppearanceOrder(t *testing.T) {
	groups := GroupByLevel([]kanji.Kanji{
		record("学", "N4"),
		record("何", ""),
		record("日", "N5"),
		record("校", "N4"),
	})
	if len(groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(groups))
	}
	if groups[0].Level != "N4" || len(groups[0].Indexes) != 2 || groups[0].Indexes[1] != 3 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Label() != UnleveledLabel || groups[2].Level != "N5" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestQuitKey(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should quit")
	}
}

func TestReloadRecoversFromListFailure(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("connection refused")}
	m := New(api)
	m = run(t, m, m.Init())
	if m.ListState() != ListFailed {
		t.Fatalf("want ListFailed, got %v", m.ListState())
	}

	api.listErr = nil
	api.records = []kanji.Kanji{record("日", "N5")}
	m = press(t, m, runes("r"))
	if m.ListState() != ListLoaded || m.Current() != "日" {
		t.Fatalf("reload: state=%v current=%q", m.ListState(), m.Current())
	}
}
