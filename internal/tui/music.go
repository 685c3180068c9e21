package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/media"
)

// musicModel is the curated playlist hub. The terminal cannot play media,
// so selecting an entry shows its embed link.
type musicModel struct {
	category   media.Category
	minMinutes int
	cursor     int
	selected   *media.Item
}

func newMusicModel() musicModel {
	return musicModel{category: media.CategoryCalm}
}

func (m musicModel) items() []media.Item {
	return media.Filter(m.category, m.minMinutes)
}

func (m musicModel) nextCategory() media.Category {
	for i, c := range media.Categories {
		if c == m.category {
			return media.Categories[(i+1)%len(media.Categories)]
		}
	}
	return media.CategoryCalm
}

func (m musicModel) update(msg tea.Msg) (musicModel, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msgKey, keys.Custom):
		m.category = m.nextCategory()
		m.cursor = 0
	case key.Matches(msgKey, keys.Right):
		m.minMinutes = media.NextFilter(m.minMinutes, 1)
		m.cursor = 0
	case key.Matches(msgKey, keys.Left):
		m.minMinutes = media.NextFilter(m.minMinutes, -1)
		m.cursor = 0
	case key.Matches(msgKey, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
	case key.Matches(msgKey, keys.Enter):
		items := m.items()
		if len(items) == 0 {
			return m, nil
		}
		it := items[clamp(m.cursor, 0, len(items)-1)]
		m.selected = &it
		return m, statusCmd("Now playing: " + it.Title)
	}
	return m, nil
}

func (m musicModel) view(w int) string {
	var cats []string
	for _, c := range media.Categories {
		style := chipStyle
		if c == m.category {
			style = activeChipStyle
		}
		cats = append(cats, style.Render(string(c)))
	}

	filter := "any length"
	if m.minMinutes > 0 {
		filter = fmt.Sprintf("at least %d min", m.minMinutes)
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cats...),
		mutedStyle.Render("Duration: " + filter),
		"",
	}
	items := m.items()
	if len(items) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing matches this filter"))
	}
	for i, it := range items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		meta := mutedStyle.Render(fmt.Sprintf("%d min · %s %s", it.Minutes, it.Provider, it.Kind))
		rows = append(rows, style.Render(cursor+it.Title)+"  "+meta)
	}

	if m.selected != nil {
		link := lipgloss.NewStyle().MaxWidth(w).Render(highlightStyle.Render(m.selected.EmbedURL()))
		rows = append(rows, "", titleStyle.Render("♪ "+m.selected.Title), link)
	}
	rows = append(rows, "", mutedStyle.Render("c: category  ←/→: duration  enter: play"))
	return strings.Join(rows, "\n")
}
