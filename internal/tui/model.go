// Package tui is the terminal client: a kanji list with a detail pane backed
// by the kanji API.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

// API is the subset of the HTTP client the model needs.
type API interface {
	ListKanji(ctx context.Context) ([]kanji.Kanji, error)
	GetKanji(ctx context.Context, character string) (*kanji.Kanji, error)
}

type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListFailed
)

type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

type listLoadedMsg struct {
	records []kanji.Kanji
	err     error
}

type detailLoadedMsg struct {
	character string
	record    *kanji.Kanji
	err       error
}

type Model struct {
	api  API
	ctx  context.Context
	keys keyMap

	styles  Styles
	spinner spinner.Model
	help    help.Model

	listState ListState
	listErr   string
	records   []kanji.Kanji
	groups    []Group

	grouped bool
	// order is the display order as record indexes; cursor indexes into it.
	order  []int
	cursor int

	// displayed is the character whose detail is open, "" when closed.
	displayed   string
	detailState DetailState
	detail      *kanji.Kanji
	detailErr   string
	// failed is the character whose last detail request failed. A failed
	// record is not displayed, so selecting it again retries.
	failed string
	// loading gates selection while a detail request is in flight.
	loading bool

	width  int
	height int
}

type Option func(*Model)

func WithGrouping(on bool) Option {
	return func(m *Model) { m.grouped = on }
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

func New(api API, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DefaultStyles().Cursor

	m := Model{
		api:       api,
		ctx:       context.Background(),
		keys:      defaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   sp,
		help:      help.New(),
		listState: ListLoading,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchList())
}

func (m Model) ListState() ListState     { return m.listState }
func (m Model) DetailState() DetailState { return m.detailState }
func (m Model) Displayed() string        { return m.displayed }
func (m Model) Grouped() bool            { return m.grouped }

// Current returns the character under the cursor, "" when the list is empty.
func (m Model) Current() string {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return ""
	}
	return m.records[m.order[m.cursor]].Character
}

func (m Model) fetchList() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		records, err := api.ListKanji(ctx)
		return listLoadedMsg{records: records, err: err}
	}
}

func (m Model) fetchDetail(character string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		record, err := api.GetKanji(ctx, character)
		return detailLoadedMsg{character: character, record: record, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case listLoadedMsg:
		if msg.err != nil {
			m.listState = ListFailed
			m.listErr = msg.err.Error()
			return m, nil
		}
		m.listState = ListLoaded
		m.listErr = ""
		m.records = msg.records
		m.groups = GroupByLevel(m.records)
		m.rebuildOrder(-1)
		return m, nil

	case detailLoadedMsg:
		m.loading = false
		if msg.character != m.displayed {
			return m, nil
		}
		if msg.err != nil {
			m.detailState = DetailFailed
			m.detailErr = msg.err.Error()
			m.detail = nil
			m.failed = msg.character
			m.displayed = ""
			return m, nil
		}
		m.detailState = DetailLoaded
		m.detailErr = ""
		m.detail = msg.record
		return m, nil

	case spinner.TickMsg:
		if m.listState != ListLoading && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		if m.listState == ListLoading {
			return m, nil
		}
		m.listState = ListLoading
		return m, tea.Batch(m.spinner.Tick, m.fetchList())
	}

	if m.listState != ListLoaded || len(m.order) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m.selectRecord(m.order[m.cursor])
	case key.Matches(msg, m.keys.Next):
		return m.step(1)
	case key.Matches(msg, m.keys.Prev):
		return m.step(-1)
	case key.Matches(msg, m.keys.NextLevel):
		return m.jumpLevel(1)
	case key.Matches(msg, m.keys.PrevLevel):
		return m.jumpLevel(-1)
	case key.Matches(msg, m.keys.Group):
		m.grouped = !m.grouped
		m.rebuildOrder(m.order[m.cursor])
	}
	return m, nil
}

// selectRecord opens the detail of record idx, or closes it when that record
// is already displayed. Closing never issues a request.
func (m Model) selectRecord(idx int) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.moveCursorTo(idx)
	character := m.records[idx].Character
	m.failed = ""
	if character == m.displayed {
		m.displayed = ""
		m.detail = nil
		m.detailErr = ""
		m.detailState = DetailIdle
		return m, nil
	}
	m.displayed = character
	m.detail = nil
	m.detailErr = ""
	m.detailState = DetailLoading
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetchDetail(character))
}

// step moves to the next or previous record in the displayed record's level
// group, wrapping at either end, and opens it.
func (m Model) step(delta int) (tea.Model, tea.Cmd) {
	if m.displayed == "" || m.loading {
		return m, nil
	}
	current := m.indexOf(m.displayed)
	if current < 0 {
		return m, nil
	}
	members := m.order
	if m.grouped {
		gi, _ := groupOf(m.groups, current)
		if gi < 0 {
			return m, nil
		}
		members = m.groups[gi].Indexes
	}
	pos := 0
	for i, ri := range members {
		if ri == current {
			pos = i
			break
		}
	}
	next := members[wrap(pos+delta, len(members))]
	if next == current {
		return m, nil
	}
	return m.selectRecord(next)
}

// jumpLevel opens the first record of the neighbouring level group.
func (m Model) jumpLevel(delta int) (tea.Model, tea.Cmd) {
	if m.loading || len(m.groups) == 0 {
		return m, nil
	}
	gi, _ := groupOf(m.groups, m.order[m.cursor])
	if gi < 0 {
		gi = 0
	}
	target := m.groups[wrap(gi+delta, len(m.groups))]
	first := target.Indexes[0]
	if m.records[first].Character == m.displayed {
		m.moveCursorTo(first)
		return m, nil
	}
	return m.selectRecord(first)
}

func (m *Model) rebuildOrder(keep int) {
	m.order = make([]int, 0, len(m.records))
	if m.grouped {
		for _, g := range m.groups {
			m.order = append(m.order, g.Indexes...)
		}
	} else {
		for i := range m.records {
			m.order = append(m.order, i)
		}
	}
	m.cursor = 0
	if keep >= 0 {
		m.moveCursorTo(keep)
	}
}

func (m *Model) moveCursorTo(idx int) {
	for pos, ri := range m.order {
		if ri == idx {
			m.cursor = pos
			return
		}
	}
}

func (m Model) indexOf(character string) int {
	for i := range m.records {
		if m.records[i].Character == character {
			return i
		}
	}
	return -1
}
