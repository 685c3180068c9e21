package wellness

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 6

type Intensity string

const (
	IntensityQuick    Intensity = "Quick"
	IntensityModerate Intensity = "Moderate"
	IntensityDeep     Intensity = "Deep"
)

// Action is the relief tool a suggestion opens when tried.
type Action int

const (
	ActionNone Action = iota
	ActionBreathe
	ActionPuzzle
	ActionSoothe
)

// Suggestion is one relief activity. Preset is only meaningful for
// ActionBreathe.
type Suggestion struct {
	Title     string
	Subtitle  string
	Duration  string
	Intensity Intensity
	Action    Action
	Preset    Preset
}

var (
	rescueBreath = Suggestion{Title: "Rescue Breath", Subtitle: "4-7-8 calming cycle", Duration: "2-4 min", Intensity: IntensityQuick, Action: ActionBreathe, Preset: Preset478}
	grounding    = Suggestion{Title: "Grounding 5-4-3-2-1", Subtitle: "Sensory reset", Duration: "3-5 min", Intensity: IntensityQuick}
	bodyScan     = Suggestion{Title: "Body Scan", Subtitle: "Relax your body gradually", Duration: "10-15 min", Intensity: IntensityModerate}
	boxBreathing = Suggestion{Title: "Box Breathing", Subtitle: "Even cadence focus", Duration: "3-5 min", Intensity: IntensityQuick, Action: ActionBreathe, Preset: PresetBox}
	mindfulWalk  = Suggestion{Title: "Mindful Walk", Subtitle: "Slow pace, notice details", Duration: "10-15 min", Intensity: IntensityModerate}
	focusPrimer  = Suggestion{Title: "Focus Primer", Subtitle: "Short breathing + puzzle", Duration: "3-5 min", Intensity: IntensityQuick}
	progressive  = Suggestion{Title: "Progressive Relaxation", Subtitle: "Unwind tension", Duration: "10-20 min", Intensity: IntensityModerate}
	colorSoothe  = Suggestion{Title: "Gentle Color Soothe", Subtitle: "Soft gradients", Duration: "5-10 min", Intensity: IntensityQuick, Action: ActionSoothe}
	focusPuzzle  = Suggestion{Title: "Focus Puzzle", Subtitle: "Channel energy to task", Duration: "2-5 min", Intensity: IntensityQuick, Action: ActionPuzzle}
)

// Suggest maps the current stress level and moods to relief activities.
// Stress picks exactly one base group; each mood rule then appends its own.
func Suggest(stress int, moods MoodSet) []Suggestion {
	var out []Suggestion
	switch {
	case stress >= 7:
		out = append(out, rescueBreath, grounding, bodyScan)
	case stress >= 4 && stress <= 6:
		out = append(out, boxBreathing, mindfulWalk)
	default:
		out = append(out, focusPrimer)
	}

	if moods.Has(MoodAnxious) || moods.Has(MoodOverwhelmed) {
		out = append(out, progressive)
	}
	if moods.Has(MoodTired) {
		out = append(out, colorSoothe)
	}
	if moods.Has(MoodEnergetic) {
		out = append(out, focusPuzzle)
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// Titles is a convenience for rendering and tests.
func Titles(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Title
	}
	return out
}
