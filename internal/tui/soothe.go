package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

const hueStep = 10

type sootheModel struct {
	store *store.Store

	soothe    wellness.Soothe
	running   bool
	startedAt time.Time
	now       time.Time
	gen       int
	sessionID string
}

func newSootheModel(s *store.Store) sootheModel {
	return sootheModel{store: s, soothe: wellness.NewSoothe()}
}

func (s sootheModel) applySettings(msg reliefSettingsMsg) sootheModel {
	s.soothe = msg.soothe.Normalize()
	return s
}

func (s sootheModel) elapsed() float64 {
	if !s.running {
		return 0
	}
	return s.now.Sub(s.startedAt).Seconds()
}

func (s sootheModel) start() (sootheModel, tea.Cmd) {
	if s.running {
		return s, nil
	}
	s.running = true
	s.startedAt = time.Now()
	s.now = s.startedAt
	s.gen++
	detail := fmt.Sprintf("hue %d speed %ds", s.soothe.Hue, s.soothe.Speed)
	return s, startReliefCmd(s.store, store.KindSoothe, detail, s.gen)
}

// stop closes the run. Each full swing there and back counts as a cycle.
func (s sootheModel) stop() (sootheModel, tea.Cmd) {
	if !s.running {
		return s, nil
	}
	cycles := int(s.elapsed()) / (2 * s.soothe.Speed)
	s.running = false
	s.gen++
	status := store.StatusCancelled
	if cycles > 0 {
		status = store.StatusCompleted
	}
	cmd := finishReliefCmd(s.store, s.sessionID, status, cycles)
	s.sessionID = ""
	return s, cmd
}

func (s sootheModel) adjust(hueDelta, speedDelta int) (sootheModel, tea.Cmd) {
	s.soothe.Hue += hueDelta
	s.soothe.Speed += speedDelta
	s.soothe = s.soothe.Normalize()
	return s, saveSettingsCmd(s.store, map[string]string{
		store.SettingSootheHue:   strconv.Itoa(s.soothe.Hue),
		store.SettingSootheSpeed: strconv.Itoa(s.soothe.Speed),
	})
}

func (s sootheModel) update(msg tea.Msg) (sootheModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		s.now = time.Time(msg)
		return s, nil

	case reliefStartedMsg:
		if msg.gen == s.gen && s.running {
			s.sessionID = msg.id
			return s, nil
		}
		return s, finishReliefCmd(s.store, msg.id, store.StatusCancelled, 0)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if s.running {
				return s.stop()
			}
			return s.start()
		case key.Matches(msg, keys.Stop):
			return s.stop()
		case key.Matches(msg, keys.Up):
			return s.adjust(hueStep, 0)
		case key.Matches(msg, keys.Down):
			return s.adjust(-hueStep, 0)
		case key.Matches(msg, keys.Right):
			return s.adjust(0, 1)
		case key.Matches(msg, keys.Left):
			return s.adjust(0, -1)
		}
	}
	return s, nil
}

// gradient renders width cells blending through the three stops.
func gradient(stops []string, width int) string {
	if width < 2 || len(stops) < 2 {
		return ""
	}
	colors := make([]colorful.Color, 0, len(stops))
	for _, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return ""
		}
		colors = append(colors, c)
	}

	var b strings.Builder
	segments := float64(len(colors) - 1)
	for i := 0; i < width; i++ {
		pos := float64(i) / float64(width-1) * segments
		idx := int(pos)
		if idx >= len(colors)-1 {
			idx = len(colors) - 2
		}
		c := colors[idx].BlendHcl(colors[idx+1], pos-float64(idx)).Clamped()
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}
	return b.String()
}

func (s sootheModel) view(w int) string {
	stops := s.soothe.StopsAt(s.elapsed())
	band := gradient(stops, clamp(w, 2, 120))
	rows := []string{band, band, band, band}

	state := mutedStyle.Render("Paused")
	controls := "s: start  ↑/↓: hue  ←/→: speed"
	if s.running {
		state = successStyle.Render("● Soothing")
		controls = "s/x: stop  ↑/↓: hue  ←/→: speed"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(rows, "\n"),
		"",
		fmt.Sprintf("%s  hue %s  speed %s  %s",
			state,
			highlightStyle.Render(strconv.Itoa(s.soothe.Hue)),
			highlightStyle.Render(fmt.Sprintf("%ds", s.soothe.Speed)),
			mutedStyle.Render(strings.Join(stops, " → ")),
		),
		"",
		mutedStyle.Render("Soft gradients to downshift. Try it while journaling."),
		mutedStyle.Render(controls),
	)
}
