package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

var settingLabels = map[string]string{
	store.SettingNotificationPermission: "Notifications",
	store.SettingBreathPreset:           "Breathing preset",
	store.SettingBreathCustom:           "Custom pattern",
	store.SettingSootheHue:              "Soothe hue",
	store.SettingSootheSpeed:            "Soothe speed",
}

type profileModel struct {
	store    *store.Store
	notifier notify.Notifier
	width    int
	height   int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	preset *string
	custom *string
	hue    *string
	speed  *string
}

func newProfileModel(s *store.Store, n notify.Notifier) profileModel {
	preset, custom, hue, speed := "", "", "", ""
	return profileModel{
		store:    s,
		notifier: n,
		preset:   &preset,
		custom:   &custom,
		hue:      &hue,
		speed:    &speed,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	settings []store.Setting
}

type permissionMsg struct {
	permission notify.Permission
	err        error
}

func (p profileModel) refresh() tea.Cmd {
	s := p.store
	return func() tea.Msg {
		settings, _ := s.GetAllSettings(context.Background())
		return profileDataMsg{settings: settings}
	}
}

func (p profileModel) requestPermission() tea.Cmd {
	n := p.notifier
	if n == nil {
		return statusCmd("Notifications are not available")
	}
	return func() tea.Msg {
		perm, err := n.RequestPermission()
		return permissionMsg{permission: perm, err: err}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		p.settings = msg.settings
		return p, nil

	case settingsSavedMsg:
		return p, p.refresh()

	case permissionMsg:
		if msg.err != nil && !errors.Is(msg.err, notify.ErrPermissionDenied) {
			return p, errorCmd(msg.err)
		}
		text := "Notifications enabled"
		if msg.permission != notify.PermissionGranted {
			text = "Notifications are blocked. Run `unwind notifications enable` to allow them."
		}
		return p, tea.Batch(statusCmd(text), p.refresh())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Custom):
			return p.showForm()
		case key.Matches(msg, keys.Notify):
			return p, p.requestPermission()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	*p.preset = p.getVal(store.SettingBreathPreset, string(wellness.PresetBox))
	*p.custom = p.getVal(store.SettingBreathCustom, wellness.DefaultCustomPattern.String())
	*p.hue = p.getVal(store.SettingSootheHue, strconv.Itoa(wellness.DefaultHue))
	*p.speed = p.getVal(store.SettingSootheSpeed, strconv.Itoa(wellness.DefaultSpeed))

	var presetOpts []huh.Option[string]
	for _, pr := range wellness.Presets {
		presetOpts = append(presetOpts, huh.NewOption(string(pr), string(pr)))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default preset").Options(presetOpts...).Value(p.preset),
			huh.NewInput().Title("Custom pattern (inhale-hold-exhale-hold)").Value(p.custom).
				Validate(func(s string) error {
					_, err := wellness.ParsePattern(s)
					return err
				}),
		).Title("Breathing"),
		huh.NewGroup(
			huh.NewInput().Title("Hue (0-359)").Value(p.hue).Validate(validateInt(0, 359)),
			huh.NewInput().Title(fmt.Sprintf("Speed in seconds (%d-%d)", wellness.MinSpeed, wellness.MaxSpeed)).
				Value(p.speed).Validate(validateInt(wellness.MinSpeed, wellness.MaxSpeed)),
		).Title("Color Soothe"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func validateInt(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p, p.saveSettings()
	}
	return p, cmd
}

func (p profileModel) saveSettings() tea.Cmd {
	pattern, err := wellness.ParsePattern(*p.custom)
	if err != nil {
		return errorCmd(err)
	}
	return saveSettingsCmd(p.store, map[string]string{
		store.SettingBreathPreset: *p.preset,
		store.SettingBreathCustom: pattern.String(),
		store.SettingSootheHue:    strings.TrimSpace(*p.hue),
		store.SettingSootheSpeed:  strings.TrimSpace(*p.speed),
	})
}

func (p profileModel) getVal(k, fallback string) string {
	for _, s := range p.settings {
		if s.Key == k {
			return s.Value
		}
	}
	return fallback
}

func (p profileModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Profile")

	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	rows := []string{title, "", p.renderNotifications(), ""}
	for _, setting := range p.settings {
		name, ok := settingLabels[setting.Key]
		if !ok {
			continue
		}
		label := lipgloss.NewStyle().Width(20).Render(name)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))))
	}
	rows = append(rows, "", mutedStyle.Render("enter: edit preferences  n: enable notifications"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p profileModel) renderNotifications() string {
	header := titleStyle.Render("Predictive Notifications")
	desc := subtitleStyle.Render("Gentle nudges at times you might need support, based on your patterns.")
	state := mutedStyle.Render("unavailable")
	if p.notifier != nil {
		switch p.notifier.Permission() {
		case notify.PermissionGranted:
			state = successStyle.Render("enabled")
		case notify.PermissionDenied:
			state = errorStyle.Render("blocked")
		default:
			state = warningStyle.Render("not enabled")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, desc, "  Status: "+state)
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingSootheSpeed:
		return v + "s"
	case store.SettingSootheHue:
		return v + "°"
	case store.SettingBreathCustom:
		if p, err := wellness.ParsePattern(v); err == nil {
			return fmt.Sprintf("%s (%ds per round)", p, p.Total())
		}
	}
	return v
}
