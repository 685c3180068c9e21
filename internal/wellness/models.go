package wellness

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	MinStress = 0
	MaxStress = 10
)

type Mood string

const (
	MoodCalm        Mood = "Calm"
	MoodFocused     Mood = "Focused"
	MoodEnergetic   Mood = "Energetic"
	MoodAnxious     Mood = "Anxious"
	MoodOverwhelmed Mood = "Overwhelmed"
	MoodContent     Mood = "Content"
	MoodTired       Mood = "Tired"
)

// Moods lists every mood in display order.
var Moods = []Mood{
	MoodCalm,
	MoodFocused,
	MoodEnergetic,
	MoodAnxious,
	MoodOverwhelmed,
	MoodContent,
	MoodTired,
}

// Slug is the lower-case key used to store the mood as a tag.
func (m Mood) Slug() string { return strings.ToLower(string(m)) }

func (m Mood) Valid() bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// ParseMood accepts a label or slug in any case.
func ParseMood(s string) (Mood, error) {
	for _, m := range Moods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", &ValidationError{Field: "mood", Reason: fmt.Sprintf("unknown mood %q", s)}
}

type Mode string

const (
	ModeQuick    Mode = "Quick"
	ModeDaily    Mode = "Daily"
	ModeDetailed Mode = "Detailed"
)

var Modes = []Mode{ModeQuick, ModeDaily, ModeDetailed}

func (m Mode) Valid() bool {
	return m == ModeQuick || m == ModeDaily || m == ModeDetailed
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}

// MoodSet is a set of moods with toggle semantics.
type MoodSet map[Mood]struct{}

func NewMoodSet(moods ...Mood) MoodSet {
	s := make(MoodSet, len(moods))
	for _, m := range moods {
		s[m] = struct{}{}
	}
	return s
}

func (s MoodSet) Has(m Mood) bool {
	_, ok := s[m]
	return ok
}

// Toggle adds m when absent and removes it when present.
func (s MoodSet) Toggle(m Mood) {
	if s.Has(m) {
		delete(s, m)
		return
	}
	s[m] = struct{}{}
}

// Sorted returns the members in display order.
func (s MoodSet) Sorted() []Mood {
	out := make([]Mood, 0, len(s))
	for _, m := range Moods {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	// Moods outside the enumeration sort last, alphabetically.
	var extra []Mood
	for m := range s {
		if !m.Valid() {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func (s MoodSet) Clone() MoodSet {
	c := make(MoodSet, len(s))
	for m := range s {
		c[m] = struct{}{}
	}
	return c
}

// StressRecord is one check-in.
type StressRecord struct {
	ID          string
	CreatedAt   time.Time
	StressLevel int
	Mode        Mode
	Notes       string
	MoodTags    []Mood
}

// Validate checks the fields the user controls.
func (r StressRecord) Validate() error {
	if err := ValidateStress(r.StressLevel); err != nil {
		return err
	}
	if !r.Mode.Valid() {
		return &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", r.Mode)}
	}
	for _, m := range r.MoodTags {
		if !m.Valid() {
			return &ValidationError{Field: "mood", Reason: fmt.Sprintf("unknown mood %q", m)}
		}
	}
	if r.Mode == ModeDetailed && strings.TrimSpace(r.Notes) == "" {
		return &ValidationError{Field: "notes", Reason: "detailed check-ins need notes"}
	}
	return nil
}

func ValidateStress(level int) error {
	if level < MinStress || level > MaxStress {
		return &ValidationError{
			Field:  "stress",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinStress, MaxStress, level),
		}
	}
	return nil
}

// StressLabel names a stress level for display.
func StressLabel(level int) string {
	switch {
	case level <= 2:
		return "Very Low"
	case level <= 4:
		return "Low"
	case level <= 6:
		return "Moderate"
	case level <= 8:
		return "High"
	default:
		return "Very High"
	}
}

type StressBand int

const (
	BandLow StressBand = iota
	BandModerate
	BandHigh
)

func BandFor(level int) StressBand {
	switch {
	case level <= 3:
		return BandLow
	case level <= 6:
		return BandModerate
	default:
		return BandHigh
	}
}
