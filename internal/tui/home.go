package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/wellness"
)

var stressPresets = []int{1, 3, 5, 7, 9}

type homeModel struct {
	session *session.Session
	width   int
	height  int

	moodCursor    int
	suggestCursor int

	formActive bool
	form       *huh.Form
	notes      *string // survives value copies
}

func newHomeModel(sess *session.Session) homeModel {
	notes := ""
	return homeModel{session: sess, notes: &notes}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

// nextPreset returns the first preset above level, wrapping to the lowest.
func nextPreset(level int) int {
	for _, p := range stressPresets {
		if p > level {
			return p
		}
	}
	return stressPresets[0]
}

func nextMode(m wellness.Mode) wellness.Mode {
	for i, v := range wellness.Modes {
		if v == m {
			return wellness.Modes[(i+1)%len(wellness.Modes)]
		}
	}
	return wellness.ModeQuick
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case checkinSavedMsg:
		h.suggestCursor = 0
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			return h, h.setStress(h.session.Stress() - 1)
		case key.Matches(msg, keys.Right):
			return h, h.setStress(h.session.Stress() + 1)
		case key.Matches(msg, keys.Preset):
			return h, h.setStress(nextPreset(h.session.Stress()))
		case key.Matches(msg, keys.Mode):
			h.session.SetMode(nextMode(h.session.Mode()))
			return h, nil
		case key.Matches(msg, keys.Up):
			if h.moodCursor > 0 {
				h.moodCursor--
			}
		case key.Matches(msg, keys.Down):
			if h.moodCursor < len(wellness.Moods)-1 {
				h.moodCursor++
			}
		case key.Matches(msg, keys.Toggle):
			h.session.ToggleMood(wellness.Moods[h.moodCursor])
			h.suggestCursor = 0
		case key.Matches(msg, keys.PrevItem):
			if h.suggestCursor > 0 {
				h.suggestCursor--
			}
		case key.Matches(msg, keys.NextItem):
			if h.suggestCursor < len(h.session.Suggestions())-1 {
				h.suggestCursor++
			}
		case key.Matches(msg, keys.Enter):
			return h, h.trySuggestion()
		case key.Matches(msg, keys.Notes):
			return h.showNotesForm()
		case key.Matches(msg, keys.Clear):
			h.session.Clear()
			h.suggestCursor = 0
			return h, statusCmd("Moods and notes cleared")
		case key.Matches(msg, keys.Save):
			return h, h.save()
		}
	}
	return h, nil
}

func (h homeModel) setStress(level int) tea.Cmd {
	if err := h.session.SetStress(clamp(level, wellness.MinStress, wellness.MaxStress)); err != nil {
		return errorCmd(err)
	}
	return nil
}

func (h homeModel) trySuggestion() tea.Cmd {
	list := h.session.Suggestions()
	if len(list) == 0 {
		return nil
	}
	s := list[clamp(h.suggestCursor, 0, len(list)-1)]
	if s.Action == wellness.ActionNone {
		return statusCmd(fmt.Sprintf("Try it now: %s (%s)", s.Title, s.Duration))
	}
	return func() tea.Msg { return trySuggestionMsg{suggestion: s} }
}

func (h homeModel) save() tea.Cmd {
	sess := h.session
	return func() tea.Msg {
		id, err := sess.Save(context.Background())
		return checkinSavedMsg{id: id, err: err}
	}
}

func (h homeModel) showNotesForm() (homeModel, tea.Cmd) {
	if h.session.Mode() == wellness.ModeQuick {
		return h, statusCmd("Quick check-ins skip notes. Press m to switch mode.")
	}
	*h.notes = h.session.Snapshot().Notes
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Notes").
				Description("What's on your mind? Optional.").
				CharLimit(2000).
				Value(h.notes),
		),
	).WithShowHelp(true)
	h.formActive = true
	return h, h.form.Init()
}

func (h homeModel) updateForm(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		h.session.SetNotes(strings.TrimSpace(*h.notes))
		return h, nil
	}
	return h, cmd
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}
	w := h.width - 4
	st := h.session.Snapshot()

	if h.formActive && h.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Check-in notes"), "", h.form.View()),
		)
	}

	panels := []string{
		h.renderMeter(w, st),
		h.renderCheckIn(w, st),
		h.renderSuggestions(w),
	}
	if st.Advisory != nil {
		panels = append([]string{advisoryStyle.Width(w).Render("⚑ " + st.Advisory.Message)}, panels...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (h homeModel) renderMeter(w int, st session.State) string {
	level := stressStyle(st.Stress).Render(fmt.Sprintf("%2d", st.Stress))
	label := stressStyle(st.Stress).Render(wellness.StressLabel(st.Stress))

	barWidth := clamp(w-30, 10, 50)
	filled := barWidth * st.Stress / wellness.MaxStress
	bar := stressStyle(st.Stress).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	var presets []string
	for _, p := range stressPresets {
		style := chipStyle
		if p == st.Stress {
			style = activeChipStyle
		}
		presets = append(presets, style.Render(fmt.Sprint(p)))
	}

	header := fmt.Sprintf("%s  %s %s", titleStyle.Render("Stress"), level, label)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"0 "+bar+" 10",
		lipgloss.JoinHorizontal(lipgloss.Top, presets...),
		mutedStyle.Render("←/→: adjust  p: preset"),
	))
}

func (h homeModel) renderCheckIn(w int, st session.State) string {
	var modes []string
	for _, m := range wellness.Modes {
		style := chipStyle
		if m == st.Mode {
			style = activeChipStyle
		}
		modes = append(modes, style.Render(string(m)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Mood Check-In  "),
		lipgloss.JoinHorizontal(lipgloss.Top, modes...),
	)

	var rows []string
	for i, m := range wellness.Moods {
		cursor := "  "
		style := normalItemStyle
		if i == h.moodCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		box := "[ ]"
		if st.Moods.Has(m) {
			box = successStyle.Render("[x]")
		}
		rows = append(rows, style.Render(cursor)+box+" "+style.Render(string(m)))
	}

	notes := mutedStyle.Render("Notes are skipped for quick check-ins")
	if st.Mode != wellness.ModeQuick {
		notes = mutedStyle.Render("No notes yet. Press n to add.")
		if st.Notes != "" {
			notes = "Notes: " + highlightStyle.Render(st.Notes)
		}
	}

	action := mutedStyle.Render("s: save  m: mode  space: toggle  n: notes  r: reset")
	if st.Saving {
		action = warningStyle.Render("Saving...")
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(rows, "\n"), "", notes, "", action,
	))
}

func (h homeModel) renderSuggestions(w int) string {
	list := h.session.Suggestions()
	rows := []string{titleStyle.Render("Suggestions"), ""}
	for i, s := range list {
		cursor := "  "
		style := normalItemStyle
		if i == h.suggestCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		meta := mutedStyle.Render(fmt.Sprintf("%s · %s · %s", s.Subtitle, s.Duration, s.Intensity))
		rows = append(rows, style.Render(cursor+s.Title)+"  "+meta)
	}
	rows = append(rows, "", mutedStyle.Render("[/]: choose  enter: try it"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
