package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

const journalReliefLimit = 8

type journalModel struct {
	session *session.Session
	store   *store.Store
	width   int
	height  int

	cursor int
	relief []store.ReliefSession
}

func newJournalModel(sess *session.Session, s *store.Store) journalModel {
	return journalModel{session: sess, store: s}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

type journalDataMsg struct {
	relief []store.ReliefSession
	err    error
}

func (j journalModel) refresh() tea.Cmd {
	s := j.store
	return func() tea.Msg {
		list, err := s.ListReliefSessions(context.Background(), journalReliefLimit)
		return journalDataMsg{relief: list, err: err}
	}
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case journalDataMsg:
		if msg.err != nil {
			return j, errorCmd(msg.err)
		}
		j.relief = msg.relief
		return j, nil

	case sessionRefreshedMsg:
		j.cursor = 0
		return j, j.refresh()

	case tea.KeyMsg:
		n := len(j.session.Snapshot().Recent)
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < n-1 {
				j.cursor++
			}
		}
	}
	return j, nil
}

func (j journalModel) view() string {
	w := j.width - 4
	recent := j.session.Snapshot().Recent

	rows := []string{titleStyle.Render("Recent Check-Ins"), ""}
	if len(recent) == 0 {
		rows = append(rows, mutedStyle.Render("  No check-ins yet."))
	}
	for i, r := range recent {
		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		when := r.CreatedAt.Local().Format("Jan 02 15:04")
		ago := mutedStyle.Render(humanize.Time(r.CreatedAt))
		level := stressStyle(r.StressLevel).Render(fmt.Sprintf("Stress %d", r.StressLevel))
		rows = append(rows, fmt.Sprintf("%s%s  %s · %s  %s",
			style.Render(cursor), style.Render(when), level, r.Mode, ago))
	}

	if len(recent) > 0 {
		rows = append(rows, "", j.renderDetail(recent[clamp(j.cursor, 0, len(recent)-1)]))
	}

	rows = append(rows, "", titleStyle.Render("Relief History"), "")
	if len(j.relief) == 0 {
		rows = append(rows, mutedStyle.Render("  No relief sessions yet."))
	}
	for _, rs := range j.relief {
		name := rs.Kind
		if rs.Detail != "" {
			name += " (" + rs.Detail + ")"
		}
		st := mutedStyle
		switch rs.Status {
		case store.StatusCompleted:
			st = successStyle
		case store.StatusActive:
			st = highlightStyle
		}
		rows = append(rows, fmt.Sprintf("  %-32s %s  %s",
			name, st.Render(rs.Status), mutedStyle.Render(humanize.Time(rs.StartedAt))))
	}

	rows = append(rows, "", mutedStyle.Render("  ↑/↓: browse  e: export"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (j journalModel) renderDetail(r wellness.StressRecord) string {
	moods := "none"
	if len(r.MoodTags) > 0 {
		parts := make([]string, len(r.MoodTags))
		for i, m := range r.MoodTags {
			parts[i] = string(m)
		}
		moods = strings.Join(parts, ", ")
	}
	lines := []string{
		fmt.Sprintf("  %s %s", mutedStyle.Render("Label:"), wellness.StressLabel(r.StressLevel)),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Moods:"), moods),
	}
	if r.Notes != "" {
		lines = append(lines, fmt.Sprintf("  %s %s", mutedStyle.Render("Notes:"), r.Notes))
	}
	return lipgloss.NewStyle().MaxWidth(max(j.width-8, 20)).Render(strings.Join(lines, "\n"))
}
