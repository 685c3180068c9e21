package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

// breathModel drives a wellness.Cycle with one second breathTickMsgs. Every
// start, stop and preset change bumps gen so that a tick scheduled for an
// earlier run is ignored and only one tick chain is ever live.
type breathModel struct {
	store *store.Store

	cycle     *wellness.Cycle
	preset    wellness.Preset
	custom    wellness.Pattern
	gen       int
	sessionID string

	formActive bool
	form       *huh.Form
	fields     *[4]string // custom form values, survive value copies
}

func newBreathModel(s *store.Store) breathModel {
	c, _ := wellness.NewCycle(wellness.BoxPattern)
	return breathModel{
		store:  s,
		cycle:  c,
		preset: wellness.PresetBox,
		custom: wellness.DefaultCustomPattern,
		fields: &[4]string{},
	}
}

func breathTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return breathTickMsg{gen: gen}
	})
}

func (b breathModel) running() bool { return b.cycle.Running() }

func (b breathModel) applySettings(msg reliefSettingsMsg) (breathModel, tea.Cmd) {
	b.custom = msg.custom
	if b.running() {
		return b, nil
	}
	return b.setPreset(msg.preset)
}

// setPreset stops any running cycle and loads the preset from Inhale.
func (b breathModel) setPreset(p wellness.Preset) (breathModel, tea.Cmd) {
	b, cmd := b.stop()
	b.preset = p
	if err := b.cycle.SetPattern(wellness.PatternFor(p, b.custom)); err != nil {
		return b, tea.Batch(cmd, errorCmd(err))
	}
	return b, cmd
}

func (b breathModel) nextPreset() wellness.Preset {
	for i, p := range wellness.Presets {
		if p == b.preset {
			return wellness.Presets[(i+1)%len(wellness.Presets)]
		}
	}
	return wellness.PresetBox
}

func (b breathModel) start() (breathModel, tea.Cmd) {
	if b.running() {
		return b, nil
	}
	if err := b.cycle.Start(); err != nil {
		return b, errorCmd(err)
	}
	b.gen++
	detail := fmt.Sprintf("%s %s", b.preset, b.cycle.Pattern())
	return b, tea.Batch(
		breathTickCmd(b.gen),
		startReliefCmd(b.store, store.KindBreathing, detail, b.gen),
	)
}

// stop ends the run. A run with at least one full round counts as completed.
func (b breathModel) stop() (breathModel, tea.Cmd) {
	if !b.running() {
		return b, nil
	}
	rounds := b.cycle.Rounds()
	b.cycle.Stop()
	b.gen++

	status := store.StatusCancelled
	if rounds > 0 {
		status = store.StatusCompleted
	}
	cmd := finishReliefCmd(b.store, b.sessionID, status, rounds)
	b.sessionID = ""
	return b, cmd
}

func (b breathModel) update(msg tea.Msg) (breathModel, tea.Cmd) {
	switch msg := msg.(type) {
	case breathTickMsg:
		if msg.gen != b.gen {
			return b, nil
		}
		if _, ok := b.cycle.Tick(); !ok {
			return b, nil
		}
		return b, breathTickCmd(b.gen)

	case reliefStartedMsg:
		if msg.gen == b.gen && b.running() {
			b.sessionID = msg.id
			return b, nil
		}
		// The run ended before the store answered.
		return b, finishReliefCmd(b.store, msg.id, store.StatusCancelled, 0)
	}

	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Start):
			return b.start()
		case key.Matches(msg, keys.Stop):
			return b.stop()
		case key.Matches(msg, keys.Preset):
			return b.setPreset(b.nextPreset())
		case key.Matches(msg, keys.Custom):
			return b.showForm()
		}
	}
	return b, nil
}

func validatePhase(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter whole seconds")
	}
	if n < 0 || n > wellness.MaxPhaseSeconds {
		return fmt.Errorf("0 to %d seconds", wellness.MaxPhaseSeconds)
	}
	return nil
}

func (b breathModel) showForm() (breathModel, tea.Cmd) {
	for i, d := range b.custom {
		b.fields[i] = strconv.Itoa(d)
	}
	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Inhale (s)").Value(&b.fields[0]).Validate(validatePhase),
			huh.NewInput().Title("Hold (s)").Value(&b.fields[1]).Validate(validatePhase),
			huh.NewInput().Title("Exhale (s)").Value(&b.fields[2]).Validate(validatePhase),
			huh.NewInput().Title("Hold (s)").Value(&b.fields[3]).Validate(validatePhase),
		).Title("Custom pattern"),
	).WithShowHelp(true).WithShowErrors(true)
	b.formActive = true
	return b, b.form.Init()
}

func (b breathModel) updateForm(msg tea.Msg) (breathModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		var p wellness.Pattern
		for i, v := range b.fields {
			n, _ := strconv.Atoi(strings.TrimSpace(v))
			p[i] = wellness.ClampPhase(n)
		}
		b.custom = p
		var stopCmd tea.Cmd
		b, stopCmd = b.setPreset(wellness.PresetCustom)
		return b, tea.Batch(stopCmd, saveSettingsCmd(b.store, map[string]string{
			store.SettingBreathPreset: string(wellness.PresetCustom),
			store.SettingBreathCustom: p.String(),
		}))
	}
	return b, cmd
}

func (b breathModel) view(w int) string {
	if b.formActive && b.form != nil {
		return b.form.View()
	}

	var presets []string
	for _, p := range wellness.Presets {
		style := chipStyle
		if p == b.preset {
			style = activeChipStyle
		}
		presets = append(presets, style.Render(string(p)))
	}
	pattern := mutedStyle.Render("Pattern " + b.cycle.Pattern().String())

	phase := b.cycle.Phase()
	remaining := b.cycle.Remaining()
	var countdown, label, controls string
	if b.running() {
		countdown = timerRunningStyle.Width(w).Render(formatClock(remaining))
		label = lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(
			highlightStyle.Bold(true).Render(strings.ToUpper(phase.String())) +
				mutedStyle.Render(fmt.Sprintf("  round %d", b.cycle.Rounds()+1)),
		)
		controls = "x: stop"
	} else {
		countdown = timerStyle.Width(w).Render(formatClock(remaining))
		label = lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(mutedStyle.Render("Ready"))
		controls = "s: start  p: preset  c: customize"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, presets...), "  ", pattern),
		"",
		countdown,
		label,
		"",
		b.renderPhases(),
		"",
		mutedStyle.Render("Tip: Breathe gently. Comfort over intensity."),
		mutedStyle.Render(controls),
	)
}

// renderPhases lists the pattern with the current phase marked.
func (b breathModel) renderPhases() string {
	p := b.cycle.Pattern()
	var parts []string
	for ph := wellness.PhaseInhale; ph <= wellness.PhaseHold2; ph++ {
		if p.Duration(ph) == 0 {
			continue
		}
		text := fmt.Sprintf("%s %ds", ph, p.Duration(ph))
		if b.running() && ph == b.cycle.Phase() {
			parts = append(parts, selectedItemStyle.Render("● "+text))
		} else {
			parts = append(parts, mutedStyle.Render("○ "+text))
		}
	}
	return strings.Join(parts, "   ")
}
