package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// breathTickMsg steps the breathing cycle. Ticks from an older generation
// are dropped.
type breathTickMsg struct {
	gen int
}

type sessionRefreshedMsg struct {
	err error
}

type checkinSavedMsg struct {
	id  string
	err error
}

type trySuggestionMsg struct {
	suggestion wellness.Suggestion
}

// reliefStartedMsg carries the store id of a relief session started for
// the given kind and generation.
type reliefStartedMsg struct {
	kind string
	gen  int
	id   string
}

type reliefSettingsMsg struct {
	preset wellness.Preset
	custom wellness.Pattern
	soothe wellness.Soothe
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Commands ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: describeError(err), isError: true} }
}

func refreshSessionCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return sessionRefreshedMsg{err: sess.Refresh(context.Background())}
	}
}

func startReliefCmd(s *store.Store, kind, detail string, gen int) tea.Cmd {
	return func() tea.Msg {
		rs, err := s.StartReliefSession(context.Background(), kind, detail)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reliefStartedMsg{kind: kind, gen: gen, id: rs.ID}
	}
}

// finishReliefCmd closes a relief session. An empty id means the start
// never reached the store and there is nothing to close.
func finishReliefCmd(s *store.Store, id, status string, cycles int) tea.Cmd {
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		if err := s.FinishReliefSession(context.Background(), id, status, cycles); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return nil
	}
}

func saveSettingsCmd(s *store.Store, kv map[string]string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		for k, v := range kv {
			if err := s.SetSetting(ctx, k, v); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return settingsSavedMsg{}
	}
}

// --- Helpers ---

// describeError turns domain errors into a short status line.
func describeError(err error) string {
	var verr *wellness.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Invalid " + verr.Field + ": " + verr.Reason
	case errors.Is(err, session.ErrSaveInProgress):
		return "Still saving the last check-in"
	case errors.Is(err, session.ErrStore):
		return "Could not reach storage: " + err.Error()
	}
	return "Error: " + err.Error()
}

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
