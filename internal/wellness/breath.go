package wellness

import (
	"fmt"
	"strconv"
	"strings"
)

type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold1
	PhaseExhale
	PhaseHold2
)

var phaseNames = map[Phase]string{
	PhaseInhale: "Inhale",
	PhaseHold1:  "Hold",
	PhaseExhale: "Exhale",
	PhaseHold2:  "Hold",
}

func (p Phase) String() string { return phaseNames[p] }

// MaxPhaseSeconds caps a single custom phase.
const MaxPhaseSeconds = 20

// Pattern holds the inhale, hold, exhale and second hold durations in seconds.
type Pattern [4]int

func (p Pattern) Duration(ph Phase) int { return p[ph] }

// Empty reports whether no phase has a positive duration.
func (p Pattern) Empty() bool {
	for _, d := range p {
		if d > 0 {
			return false
		}
	}
	return true
}

// Total is the length of one full round in seconds.
func (p Pattern) Total() int {
	t := 0
	for _, d := range p {
		t += d
	}
	return t
}

func (p Pattern) Validate() error {
	for i, d := range p {
		if d < 0 {
			return &ValidationError{Field: "pattern", Reason: fmt.Sprintf("phase %d is negative", i+1)}
		}
	}
	return nil
}

func (p Pattern) String() string {
	parts := make([]string, 0, 4)
	for _, d := range p {
		parts = append(parts, fmt.Sprint(d))
	}
	return strings.Join(parts, "-")
}

// ParsePattern reads the "4-4-4-4" form produced by String. Each phase is
// clamped to 0..MaxPhaseSeconds.
func ParsePattern(s string) (Pattern, error) {
	fields := strings.Split(strings.TrimSpace(s), "-")
	if len(fields) != 4 {
		return Pattern{}, &ValidationError{Field: "pattern", Reason: fmt.Sprintf("want 4 phases, got %q", s)}
	}
	var p Pattern
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Pattern{}, &ValidationError{Field: "pattern", Reason: fmt.Sprintf("phase %d: %q is not a number", i+1, f)}
		}
		p[i] = ClampPhase(n)
	}
	return p, nil
}

// ClampPhase bounds a custom phase duration to 0..MaxPhaseSeconds.
func ClampPhase(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxPhaseSeconds {
		return MaxPhaseSeconds
	}
	return v
}

type Preset string

const (
	PresetBox    Preset = "Box"
	Preset478    Preset = "4-7-8"
	PresetCustom Preset = "Custom"
)

var Presets = []Preset{PresetBox, Preset478, PresetCustom}

var (
	BoxPattern           = Pattern{4, 4, 4, 4}
	FourSevenEight       = Pattern{4, 7, 8, 0}
	DefaultCustomPattern = Pattern{4, 4, 4, 4}
)

// PatternFor resolves a preset; custom is used for PresetCustom.
func PatternFor(p Preset, custom Pattern) Pattern {
	switch p {
	case PresetBox:
		return BoxPattern
	case Preset478:
		return FourSevenEight
	default:
		return custom
	}
}

func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", &ValidationError{Field: "pattern", Reason: fmt.Sprintf("unknown preset %q", s)}
}

// Step is the state observed after one tick. Advanced is set when the tick
// moved to a new phase, RoundDone when it wrapped back to the first phase.
type Step struct {
	Phase     Phase
	Remaining int
	Advanced  bool
	RoundDone bool
}

// Cycle is the breathing phase state machine. It does not own a timer:
// callers step it once per elapsed second with Tick.
type Cycle struct {
	pattern   Pattern
	phase     Phase
	remaining int
	running   bool
	rounds    int
}

func NewCycle(p Pattern) (*Cycle, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Cycle{pattern: p}
	c.reset()
	return c, nil
}

func (c *Cycle) reset() {
	c.phase = c.first()
	c.remaining = c.pattern.Duration(c.phase)
	c.rounds = 0
}

// first is the first positive phase at or after Inhale.
func (c *Cycle) first() Phase {
	for ph := PhaseInhale; ph <= PhaseHold2; ph++ {
		if c.pattern[ph] > 0 {
			return ph
		}
	}
	return PhaseInhale
}

// next is the next positive phase after ph in cyclic order.
func (c *Cycle) next(ph Phase) Phase {
	for i := 1; i <= 4; i++ {
		cand := Phase((int(ph) + i) % 4)
		if c.pattern[cand] > 0 {
			return cand
		}
	}
	return ph
}

// Start begins a fresh round from the first positive phase.
func (c *Cycle) Start() error {
	if c.pattern.Empty() {
		return &ValidationError{Field: "pattern", Reason: "at least one phase must be longer than 0s"}
	}
	c.reset()
	c.running = true
	return nil
}

// Stop halts the cycle and discards partial progress.
func (c *Cycle) Stop() {
	c.running = false
	c.reset()
}

// SetPattern replaces the durations. A running cycle restarts from Inhale.
func (c *Cycle) SetPattern(p Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.pattern = p
	if !c.running {
		c.reset()
		return nil
	}
	if p.Empty() {
		c.Stop()
		return &ValidationError{Field: "pattern", Reason: "at least one phase must be longer than 0s"}
	}
	c.reset()
	return nil
}

// Tick advances the cycle by one second. ok is false when stopped.
func (c *Cycle) Tick() (step Step, ok bool) {
	if !c.running {
		return Step{}, false
	}
	if c.remaining > 1 {
		c.remaining--
		return Step{Phase: c.phase, Remaining: c.remaining}, true
	}
	first := c.first()
	nxt := c.next(c.phase)
	step.Advanced = true
	if nxt == first {
		c.rounds++
		step.RoundDone = true
	}
	c.phase = nxt
	c.remaining = c.pattern.Duration(nxt)
	step.Phase = c.phase
	step.Remaining = c.remaining
	return step, true
}

func (c *Cycle) Phase() Phase     { return c.phase }
func (c *Cycle) Remaining() int   { return c.remaining }
func (c *Cycle) Running() bool    { return c.running }
func (c *Cycle) Pattern() Pattern { return c.pattern }
func (c *Cycle) Rounds() int      { return c.rounds }
