package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/wellness"
)

// Palette: soft blues and greens, warm tones only for stress.
var (
	colorPrimary   = lipgloss.Color("#7FB7BE")
	colorCalm      = lipgloss.Color("#A3BE8C")
	colorMuted     = lipgloss.Color("#6B7089")
	colorWarm      = lipgloss.Color("#EBCB8B")
	colorHot       = lipgloss.Color("#D08770")
	colorFg        = lipgloss.Color("#D8DEE9")
	colorSubtle    = lipgloss.Color("#3B4252")
	colorHighlight = lipgloss.Color("#B48EAD")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boxed(border lipgloss.Color, vpad, hpad int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(vpad, hpad)
}

var (
	activeTabStyle = fg(colorPrimary).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorMuted).Padding(0, 2)

	panelStyle       = boxed(colorSubtle, 1, 2)
	activePanelStyle = boxed(colorPrimary, 1, 2)
	advisoryStyle    = boxed(colorWarm, 0, 2).Foreground(colorWarm)

	// Breathing countdown
	timerStyle        = fg(colorPrimary).Bold(true).Align(lipgloss.Center)
	timerRunningStyle = fg(colorCalm).Bold(true).Align(lipgloss.Center)

	titleStyle     = fg(colorFg).Bold(true)
	subtitleStyle  = fg(colorMuted).Italic(true)
	successStyle   = fg(colorCalm)
	warningStyle   = fg(colorWarm)
	errorStyle     = fg(colorHot)
	mutedStyle     = fg(colorMuted)
	highlightStyle = fg(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorMuted).Padding(0, 1)

	// Chips: moods, modes, presets
	chipStyle       = boxed(colorSubtle, 0, 1).Foreground(colorMuted)
	activeChipStyle = boxed(colorPrimary, 0, 1).Foreground(colorPrimary).Bold(true)

	selectedItemStyle = fg(colorPrimary).Bold(true)
	normalItemStyle   = fg(colorFg)
)

var bandColors = map[wellness.StressBand]lipgloss.Color{
	wellness.BandLow:      colorCalm,
	wellness.BandModerate: colorWarm,
	wellness.BandHigh:     colorHot,
}

// stressColor is the band color for a level or a rounded average.
func stressColor(level float64) lipgloss.Color {
	return bandColors[wellness.BandFor(int(level+0.5))]
}

func stressStyle(level int) lipgloss.Style {
	return fg(stressColor(float64(level))).Bold(true)
}
