package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

type reliefTool int

const (
	toolBreathing reliefTool = iota
	toolPuzzle
	toolSoothe
	toolMusic
)

var reliefToolNames = []string{"Breathing", "Focus Puzzle", "Color Soothe", "Music"}

// reliefModel hosts the relief tools. Every tool keeps running while the
// user looks at another tool or tab.
type reliefModel struct {
	store  *store.Store
	width  int
	height int

	tool   reliefTool
	breath breathModel
	puzzle puzzleModel
	soothe sootheModel
	music  musicModel
}

func newReliefModel(s *store.Store) reliefModel {
	return reliefModel{
		store:  s,
		breath: newBreathModel(s),
		puzzle: newPuzzleModel(s),
		soothe: newSootheModel(s),
		music:  newMusicModel(),
	}
}

func (r *reliefModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

// capturing reports whether the active tool needs every key, including
// the digits and letters the app binds globally.
func (r reliefModel) capturing() bool {
	switch r.tool {
	case toolBreathing:
		return r.breath.formActive
	case toolPuzzle:
		return r.puzzle.puzzle.Active()
	}
	return false
}

// loadSettings reads the stored breathing and soothe preferences.
func (r reliefModel) loadSettings() tea.Cmd {
	s := r.store
	return func() tea.Msg {
		ctx := context.Background()
		msg := reliefSettingsMsg{
			preset: wellness.PresetBox,
			custom: wellness.DefaultCustomPattern,
			soothe: wellness.NewSoothe(),
		}
		if v, err := s.GetSetting(ctx, store.SettingBreathPreset); err == nil {
			if p, err := wellness.ParsePreset(v); err == nil {
				msg.preset = p
			}
		}
		if v, err := s.GetSetting(ctx, store.SettingBreathCustom); err == nil {
			if p, err := wellness.ParsePattern(v); err == nil {
				msg.custom = p
			}
		}
		if v, err := s.GetSetting(ctx, store.SettingSootheHue); err == nil {
			if n, err := strconv.Atoi(v); err == nil {
				msg.soothe.Hue = n
			}
		}
		if v, err := s.GetSetting(ctx, store.SettingSootheSpeed); err == nil {
			if n, err := strconv.Atoi(v); err == nil {
				msg.soothe.Speed = n
			}
		}
		msg.soothe = msg.soothe.Normalize()
		return msg
	}
}

// try opens the tool behind a suggestion. Breathing and the puzzle start
// right away; the color tool only opens.
func (r reliefModel) try(s wellness.Suggestion) (reliefModel, tea.Cmd) {
	switch s.Action {
	case wellness.ActionBreathe:
		r.tool = toolBreathing
		preset := s.Preset
		if preset == "" {
			preset = wellness.PresetBox
		}
		var stopCmd, startCmd tea.Cmd
		r.breath, stopCmd = r.breath.setPreset(preset)
		r.breath, startCmd = r.breath.start()
		return r, tea.Batch(stopCmd, startCmd)
	case wellness.ActionPuzzle:
		r.tool = toolPuzzle
		var cmd tea.Cmd
		r.puzzle, cmd = r.puzzle.start()
		return r, cmd
	case wellness.ActionSoothe:
		r.tool = toolSoothe
	}
	return r, nil
}

func (r reliefModel) update(msg tea.Msg) (reliefModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case reliefSettingsMsg:
		r.breath, cmd = r.breath.applySettings(msg)
		r.soothe = r.soothe.applySettings(msg)
		return r, cmd

	case breathTickMsg:
		r.breath, cmd = r.breath.update(msg)
		return r, cmd

	case tickMsg:
		r.soothe, cmd = r.soothe.update(msg)
		return r, cmd

	case reliefStartedMsg:
		switch msg.kind {
		case store.KindBreathing:
			r.breath, cmd = r.breath.update(msg)
		case store.KindPuzzle:
			r.puzzle, cmd = r.puzzle.update(msg)
		case store.KindSoothe:
			r.soothe, cmd = r.soothe.update(msg)
		}
		return r, cmd

	case tea.KeyMsg:
		if !r.capturing() {
			switch {
			case key.Matches(msg, keys.PrevItem):
				r.tool = (r.tool + reliefTool(len(reliefToolNames)) - 1) % reliefTool(len(reliefToolNames))
				return r, nil
			case key.Matches(msg, keys.NextItem):
				r.tool = (r.tool + 1) % reliefTool(len(reliefToolNames))
				return r, nil
			}
		}
		return r.updateTool(msg)
	}

	// Form internals (cursor blink and the like) go to the active tool.
	return r.updateTool(msg)
}

func (r reliefModel) updateTool(msg tea.Msg) (reliefModel, tea.Cmd) {
	var cmd tea.Cmd
	switch r.tool {
	case toolBreathing:
		r.breath, cmd = r.breath.update(msg)
	case toolPuzzle:
		r.puzzle, cmd = r.puzzle.update(msg)
	case toolSoothe:
		r.soothe, cmd = r.soothe.update(msg)
	case toolMusic:
		r.music, cmd = r.music.update(msg)
	}
	return r, cmd
}

func (r reliefModel) view() string {
	w := r.width - 4

	var tabs []string
	for i, name := range reliefToolNames {
		if reliefTool(i) == r.tool {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Relief"), "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	var body string
	switch r.tool {
	case toolBreathing:
		body = r.breath.view(w - 6)
	case toolPuzzle:
		body = r.puzzle.view(w - 6)
	case toolSoothe:
		body = r.soothe.view(w - 6)
	case toolMusic:
		body = r.music.view(w - 6)
	}

	nav := mutedStyle.Render("[/]: switch tool")
	if r.capturing() {
		nav = mutedStyle.Render("esc: leave")
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav))
}
