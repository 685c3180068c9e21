package wellness

import (
	"fmt"
	"math/rand/v2"
)

const PuzzleSize = 9

type TapOutcome int

const (
	TapIgnored TapOutcome = iota
	TapProgress
	TapMiss
	TapComplete
)

const (
	puzzleStartMessage    = "Tap 1 through 9 in order"
	puzzleCompleteMessage = "Nice! Completed."
	puzzleMissMessage     = "Reset focus. Start from the current number."
)

// Puzzle is the sequential tap focus game: tap 1..9 in order on a
// shuffled board.
type Puzzle struct {
	sequence [PuzzleSize]int
	next     int
	active   bool
	started  bool
	message  string
	rng      *rand.Rand
}

// NewPuzzle returns an idle puzzle. A nil rng uses the global source.
func NewPuzzle(rng *rand.Rand) *Puzzle {
	return &Puzzle{rng: rng, next: 1}
}

// Start deals a fresh permutation and expects 1 first.
func (p *Puzzle) Start() {
	for i := range p.sequence {
		p.sequence[i] = i + 1
	}
	shuffle := rand.Shuffle
	if p.rng != nil {
		shuffle = p.rng.Shuffle
	}
	shuffle(PuzzleSize, func(i, j int) {
		p.sequence[i], p.sequence[j] = p.sequence[j], p.sequence[i]
	})
	p.next = 1
	p.active = true
	p.started = true
	p.message = puzzleStartMessage
}

// Tap registers a press on n and returns what happened.
func (p *Puzzle) Tap(n int) TapOutcome {
	if !p.active {
		return TapIgnored
	}
	if n != p.next {
		p.message = puzzleMissMessage
		return TapMiss
	}
	if n == PuzzleSize {
		p.active = false
		p.message = puzzleCompleteMessage
		return TapComplete
	}
	p.next = n + 1
	p.message = fmt.Sprintf("Good. Next: %d", p.next)
	return TapProgress
}

// Sequence is the board order; empty before the first Start.
func (p *Puzzle) Sequence() []int {
	if !p.started {
		return nil
	}
	out := make([]int, PuzzleSize)
	copy(out, p.sequence[:])
	return out
}

func (p *Puzzle) Next() int { return p.next }

func (p *Puzzle) Active() bool { return p.active }

// Complete reports whether the last run finished.
func (p *Puzzle) Complete() bool { return p.started && !p.active }

func (p *Puzzle) Message() string { return p.message }
