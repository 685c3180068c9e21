package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

var insightTips = []string{
	"When stress gets above 6, try 4-7-8 breathing for 3 minutes.",
	"If afternoons trend higher, schedule a short walk or a focus playlist.",
	"Use Color Soothe while journaling to downshift arousal.",
}

type insightsModel struct {
	session *session.Session
	store   *store.Store
	width   int
	height  int

	moods []store.MoodCount
	stats store.ReliefStats

	daily barchart.Model
	slots barchart.Model
}

func newInsightsModel(sess *session.Session, s *store.Store) insightsModel {
	return insightsModel{
		session: sess,
		store:   s,
		daily:   barchart.New(60, 10),
		slots:   barchart.New(40, 10),
	}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildCharts()
}

type insightsDataMsg struct {
	moods []store.MoodCount
	stats store.ReliefStats
	err   error
}

// refresh loads the store side aggregates for the trend window. The record
// series come from the session.
func (m insightsModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()
		since := wellness.TrendWindowStart(now)
		moods, err := s.MoodCounts(ctx, since)
		if err != nil {
			return insightsDataMsg{err: err}
		}
		stats, err := s.ReliefStats(ctx, since, now)
		return insightsDataMsg{moods: moods, stats: stats, err: err}
	}
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsDataMsg:
		if msg.err != nil {
			return m, errorCmd(msg.err)
		}
		m.moods = msg.moods
		m.stats = msg.stats
		return m, nil
	case sessionRefreshedMsg:
		m.buildCharts()
		return m, m.refresh()
	}
	return m, nil
}

func (m *insightsModel) buildCharts() {
	st := m.session.Snapshot()

	chartWidth := max(m.width-8, 28)
	chartHeight := 10
	if m.height > 36 {
		chartHeight = 14
	}

	m.daily = barchart.New(chartWidth*3/5, chartHeight)
	var days []barchart.BarData
	for _, d := range st.Daily {
		days = append(days, barchart.BarData{
			Label: d.Day.Format("01-02"),
			Values: []barchart.BarValue{{
				Name:  d.Key(),
				Value: d.Avg,
				Style: lipgloss.NewStyle().Foreground(stressColor(d.Avg)),
			}},
		})
	}
	m.daily.PushAll(days)
	m.daily.Draw()

	m.slots = barchart.New(chartWidth*2/5, chartHeight)
	var slots []barchart.BarData
	for _, s := range st.Slots {
		slots = append(slots, barchart.BarData{
			Label: string(s.Slot)[:3],
			Values: []barchart.BarValue{{
				Name:  string(s.Slot),
				Value: s.Avg,
				Style: lipgloss.NewStyle().Foreground(stressColor(s.Avg)),
			}},
		})
	}
	m.slots.PushAll(slots)
	m.slots.Draw()
}

func (m insightsModel) view() string {
	w := m.width - 4
	st := m.session.Snapshot()

	title := titleStyle.Render("Smart Analytics")
	sub := subtitleStyle.Render("Patterns from your recent check-ins help predict when support might help.")

	dailyPanel := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Average stress, last 7 days"),
		m.daily.View(),
		m.renderDailyValues(st.Daily),
	)
	slotPanel := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Stress by time of day"),
		m.slots.View(),
		m.renderSlotValues(st.Slots),
	)
	charts := lipgloss.JoinHorizontal(lipgloss.Top, dailyPanel, "   ", slotPanel)

	nudge := mutedStyle.Render("No nudge right now.")
	if st.Advisory != nil {
		nudge = warningStyle.Render("⚑ " + st.Advisory.Message)
	}

	var tips []string
	for _, t := range insightTips {
		tips = append(tips, "  • "+t)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, sub, "",
		charts, "",
		nudge, "",
		m.renderMoods(), "",
		m.renderRelief(), "",
		titleStyle.Render("Suggested quick actions"),
		strings.Join(tips, "\n"),
	))
}

func (m insightsModel) renderDailyValues(days []wellness.DayAverage) string {
	var parts []string
	for _, d := range days {
		parts = append(parts, fmt.Sprintf("%.1f", d.Avg))
	}
	return mutedStyle.Render(strings.Join(parts, " "))
}

func (m insightsModel) renderSlotValues(slots []wellness.SlotAverage) string {
	var parts []string
	for _, s := range slots {
		parts = append(parts, fmt.Sprintf("%s %.1f", s.Slot, s.Avg))
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}

func (m insightsModel) renderMoods() string {
	header := titleStyle.Render("Moods this week")
	if len(m.moods) == 0 {
		return header + "\n" + mutedStyle.Render("  No moods tagged yet")
	}
	var parts []string
	for _, mc := range m.moods {
		parts = append(parts, fmt.Sprintf("%s %s", mc.Label, highlightStyle.Render(fmt.Sprint(mc.Count))))
	}
	return header + "\n  " + strings.Join(parts, "  ")
}

func (m insightsModel) renderRelief() string {
	return titleStyle.Render("Relief sessions this week") + "\n" + fmt.Sprintf("  %s completed  %s stopped early  %s cycles",
		successStyle.Render(fmt.Sprint(m.stats.Completed)),
		warningStyle.Render(fmt.Sprint(m.stats.Cancelled)),
		highlightStyle.Render(fmt.Sprint(m.stats.Cycles)),
	)
}
