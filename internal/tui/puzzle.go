package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

type puzzleModel struct {
	store *store.Store

	puzzle    *wellness.Puzzle
	gen       int
	sessionID string
	misses    int
}

func newPuzzleModel(s *store.Store) puzzleModel {
	return puzzleModel{store: s, puzzle: wellness.NewPuzzle(nil)}
}

func (p puzzleModel) start() (puzzleModel, tea.Cmd) {
	var cancel tea.Cmd
	if p.puzzle.Active() {
		p, cancel = p.stop()
	}
	p.puzzle.Start()
	p.gen++
	p.misses = 0
	return p, tea.Batch(cancel, startReliefCmd(p.store, store.KindPuzzle, "", p.gen))
}

func (p puzzleModel) stop() (puzzleModel, tea.Cmd) {
	if !p.puzzle.Active() {
		return p, nil
	}
	// Stopping discards the board.
	p.puzzle = wellness.NewPuzzle(nil)
	p.gen++
	cmd := finishReliefCmd(p.store, p.sessionID, store.StatusCancelled, 0)
	p.sessionID = ""
	return p, cmd
}

func (p puzzleModel) tap(n int) (puzzleModel, tea.Cmd) {
	switch p.puzzle.Tap(n) {
	case wellness.TapMiss:
		p.misses++
	case wellness.TapComplete:
		cmd := finishReliefCmd(p.store, p.sessionID, store.StatusCompleted, 1)
		p.sessionID = ""
		return p, tea.Batch(cmd, statusCmd(p.puzzle.Message()))
	}
	return p, nil
}

func (p puzzleModel) update(msg tea.Msg) (puzzleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reliefStartedMsg:
		if msg.gen == p.gen {
			if p.puzzle.Active() {
				p.sessionID = msg.id
				return p, nil
			}
			if p.puzzle.Complete() {
				return p, finishReliefCmd(p.store, msg.id, store.StatusCompleted, 1)
			}
		}
		return p, finishReliefCmd(p.store, msg.id, store.StatusCancelled, 0)

	case tea.KeyMsg:
		if p.puzzle.Active() {
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= wellness.PuzzleSize {
				return p.tap(n)
			}
			if key.Matches(msg, keys.Stop) || key.Matches(msg, keys.Back) {
				return p.stop()
			}
			return p, nil
		}
		if key.Matches(msg, keys.Start) {
			return p.start()
		}
	}
	return p, nil
}

func (p puzzleModel) view(w int) string {
	seq := p.puzzle.Sequence()
	if len(seq) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			subtitleStyle.Render("Tap 1 through 9 in order on a shuffled board."),
			"",
			mutedStyle.Render("s: start"),
		)
	}

	next := p.puzzle.Next()
	var rows []string
	for r := 0; r < 3; r++ {
		var cells []string
		for c := 0; c < 3; c++ {
			n := seq[r*3+c]
			style := chipStyle
			switch {
			case p.puzzle.Complete() || n < next:
				style = chipStyle.Foreground(colorCalm).BorderForeground(colorCalm)
			case n == next:
				style = activeChipStyle
			}
			cells = append(cells, style.Render(fmt.Sprintf(" %d ", n)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	board := lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(strings.Join(rows, "\n"))

	msgStyle := highlightStyle
	if p.puzzle.Complete() {
		msgStyle = successStyle
	}
	controls := "1-9: tap  x: stop"
	if !p.puzzle.Active() {
		controls = "s: play again"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		board,
		"",
		msgStyle.Render(p.puzzle.Message()),
		mutedStyle.Render(fmt.Sprintf("Misses: %d", p.misses)),
		"",
		mutedStyle.Render(controls),
	)
}
