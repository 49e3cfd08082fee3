package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cocacoran-1/kanji/internal/domain/kanji"
)

const sidebarWidth = 26

func (m Model) View() string {
	switch m.listState {
	case ListLoading:
		return m.spinner.View() + " Loading kanji..."
	case ListFailed:
		return m.styles.Error.Render("Failed to load kanji: "+m.listErr) + "\n" +
			m.styles.Muted.Render("press r to retry, q to quit")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewDetail())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func (m Model) viewSidebar() string {
	var sb strings.Builder
	if len(m.order) == 0 {
		sb.WriteString(m.styles.Muted.Render("No kanji."))
	}
	lastGroup := -1
	for pos, ri := range m.order {
		if m.grouped {
			if gi, _ := groupOf(m.groups, ri); gi != lastGroup {
				if lastGroup >= 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(m.styles.GroupTitle.Render(m.groups[gi].Label()))
				sb.WriteString("\n")
				lastGroup = gi
			}
		}
		sb.WriteString(m.viewItem(pos, &m.records[ri]))
		sb.WriteString("\n")
	}
	style := m.styles.Sidebar.Width(sidebarWidth)
	if m.height > 4 {
		style = style.Height(m.height - 4)
	}
	return style.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) viewItem(pos int, k *kanji.Kanji) string {
	line := k.Character
	if meaning := firstMeaning(k); meaning != "" {
		line += "  " + m.styles.Muted.Render(meaning)
	}
	if k.Character == m.displayed {
		line = m.styles.Displayed.Render(k.Character) + strings.TrimPrefix(line, k.Character)
	}
	if pos == m.cursor {
		return m.styles.Cursor.Render("> ") + line
	}
	return m.styles.Item.Render(line)
}

func (m Model) viewDetail() string {
	width := 48
	if m.width > sidebarWidth+10 {
		width = m.width - sidebarWidth - 8
	}
	style := m.styles.Detail.Width(width)

	switch m.detailState {
	case DetailLoading:
		return style.Render(m.spinner.View() + " Loading " + m.displayed + "...")
	case DetailFailed:
		return style.Render(m.styles.Error.Render(fmt.Sprintf("Failed to load %s: %s", m.failed, m.detailErr)))
	case DetailLoaded:
		if m.detail != nil {
			return style.Render(m.renderKanji(m.detail))
		}
	}
	return style.Render(m.styles.Muted.Render("Select a kanji to see its details."))
}

func (m Model) renderKanji(k *kanji.Kanji) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Character.Render(k.Character))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(m.styles.Label.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	row("Meaning", k.KoreanMeaning)
	row("On'yomi", strings.Join(k.Onyomi, "、"))
	row("Kun'yomi", strings.Join(k.Kunyomi, "、"))
	if k.Strokes != nil {
		row("Strokes", fmt.Sprint(*k.Strokes))
	} else {
		row("Strokes", "")
	}
	row("Level", k.LevelLabel())
	if k.Radical != nil {
		row("Radical", *k.Radical)
	}

	if len(k.Words) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.GroupTitle.Render("Words"))
		sb.WriteString("\n")
		for _, w := range k.Words {
			sb.WriteString(fmt.Sprintf("  %s (%s) %s\n", w.Word, w.Reading, m.styles.Muted.Render(w.Meaning)))
		}
	}
	if len(k.ExampleSentences) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.GroupTitle.Render("Examples"))
		sb.WriteString("\n")
		for _, s := range k.ExampleSentences {
			sb.WriteString("  " + s.Sentence + "\n")
			if s.Reading != "" {
				sb.WriteString("  " + m.styles.Muted.Render(s.Reading) + "\n")
			}
			if s.Translation != "" {
				sb.WriteString("  " + s.Translation + "\n")
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func firstMeaning(k *kanji.Kanji) string {
	if len(k.Meanings) > 0 {
		return k.Meanings[0]
	}
	return k.KoreanMeaning
}
