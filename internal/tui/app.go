package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/export"
	"github.com/sadopc/unwind/internal/logger"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	session  *session.Session
	store    *store.Store
	notifier notify.Notifier
	width    int
	height   int

	showHelp      bool
	exportPicking bool
	exportCursor  int

	home     homeModel
	relief   reliefModel
	insights insightsModel
	journal  journalModel
	profile  profileModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp wires the tabs to a shared session. notifier may be nil.
func NewApp(sess *session.Session, s *store.Store, n notify.Notifier) App {
	h := help.New()
	h.ShowAll = false

	return App{
		session:  sess,
		store:    s,
		notifier: n,
		home:     newHomeModel(sess),
		relief:   newReliefModel(s),
		insights: newInsightsModel(sess, s),
		journal:  newJournalModel(sess, s),
		profile:  newProfileModel(s, n),
		help:     h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		refreshSessionCmd(a.session),
		a.relief.loadSettings(),
		a.profile.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) activeTab() session.Tab { return a.session.Tab() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.relief.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A child view capturing input (form, puzzle) gets every key.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTab(session.TabHome)
		case key.Matches(msg, keys.Tab2):
			return a.switchTab(session.TabRelief)
		case key.Matches(msg, keys.Tab3):
			return a.switchTab(session.TabInsights)
		case key.Matches(msg, keys.Tab4):
			return a.switchTab(session.TabJournal)
		case key.Matches(msg, keys.Tab5):
			return a.switchTab(session.TabProfile)
		case key.Matches(msg, keys.Tab):
			return a.switchTab((a.activeTab() + 1) % session.Tab(len(session.Tabs)))
		case key.Matches(msg, keys.ShiftTab):
			n := session.Tab(len(session.Tabs))
			return a.switchTab((a.activeTab() + n - 1) % n)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Relief tools animate in the background.
		var cmd tea.Cmd
		a.relief, cmd = a.relief.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case breathTickMsg, reliefStartedMsg, reliefSettingsMsg:
		var cmd tea.Cmd
		a.relief, cmd = a.relief.update(msg)
		return a, cmd

	case sessionRefreshedMsg:
		if msg.err != nil {
			a.setStatus("Refresh failed: "+describeError(msg.err), true)
		}
		var icmd, jcmd tea.Cmd
		a.insights, icmd = a.insights.update(msg)
		a.journal, jcmd = a.journal.update(msg)
		return a, tea.Batch(icmd, jcmd)

	case checkinSavedMsg:
		a.home, _ = a.home.update(msg)
		switch {
		case msg.id == "":
			a.setStatus(describeError(msg.err), true)
			return a, nil
		case msg.err != nil:
			a.setStatus("Check-in saved, but refresh failed: "+describeError(msg.err), true)
		default:
			a.setStatus("Check-in saved", false)
		}
		// Save already refreshed the session; rebuild the dependent views.
		return a, func() tea.Msg { return sessionRefreshedMsg{} }

	case trySuggestionMsg:
		a.session.SetTab(session.TabRelief)
		var cmd tea.Cmd
		a.relief, cmd = a.relief.try(msg.suggestion)
		a.setStatus("Starting "+msg.suggestion.Title, false)
		return a, cmd

	case settingsSavedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.update(msg)
		return a, tea.Batch(cmd, a.relief.loadSettings())

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
	if isError {
		logger.Warn("tui status", "message", text)
	}
}

func (a App) switchTab(t session.Tab) (tea.Model, tea.Cmd) {
	a.session.SetTab(t)
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeTab() {
	case session.TabHome:
		a.home, cmd = a.home.update(msg)
	case session.TabRelief:
		a.relief, cmd = a.relief.update(msg)
	case session.TabInsights:
		a.insights, cmd = a.insights.update(msg)
	case session.TabJournal:
		a.journal, cmd = a.journal.update(msg)
	case session.TabProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeTab() {
	case session.TabHome:
		return a.home.formActive
	case session.TabRelief:
		return a.relief.capturing()
	case session.TabProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeTab() {
	case session.TabHome, session.TabInsights:
		return refreshSessionCmd(a.session)
	case session.TabJournal:
		return a.journal.refresh()
	case session.TabProfile:
		return a.profile.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeTab() {
	case session.TabHome:
		content = a.home.view()
	case session.TabRelief:
		content = a.relief.view()
	case session.TabInsights:
		content = a.insights.view()
	case session.TabJournal:
		content = a.journal.view()
	case session.TabProfile:
		content = a.profile.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for _, t := range session.Tabs {
		if t == a.activeTab() {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.String()))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("unwind")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Breathing indicator in footer
	breathInfo := ""
	if a.relief.breath.running() {
		c := a.relief.breath.cycle
		breathInfo = successStyle.Render(fmt.Sprintf(" ● %s %ds", c.Phase(), c.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := breathInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Check-Ins")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		records, err := s.QueryRecords(context.Background(), store.RecordFilter{Ascending: true})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("unwind-export-%s.csv", dateStr))
			if err := export.ToCSV(records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("unwind-export-%s.json", dateStr))
			if err := export.ToJSON(records, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		logger.Info("exported check-ins", "path", path, "count", len(records))
		return exportDoneMsg{path: path}
	}
}
