package wellness

import (
	"fmt"
	"strings"
)

// DefaultNudgeThreshold is the slot average that triggers an advisory.
const DefaultNudgeThreshold = 6.0

const NudgeTitle = "Time for a quick reset"

// Advisory is a nudge tied to a time slot. Body is the shorter text used
// for the desktop notification.
type Advisory struct {
	Slot    Slot
	Avg     float64
	Message string
	Body    string
}

// PredictNudge looks up the slot for hour in series and returns an advisory
// when its average reaches threshold. ok is false when no advisory applies.
func PredictNudge(series []SlotAverage, hour int, threshold float64) (adv Advisory, ok bool) {
	if threshold <= 0 {
		threshold = DefaultNudgeThreshold
	}
	slot := SlotForHour(hour)
	avg := SlotAvg(series, slot)
	if avg < threshold {
		return Advisory{}, false
	}
	name := strings.ToLower(string(slot))
	return Advisory{
		Slot:    slot,
		Avg:     avg,
		Message: fmt.Sprintf("This %s, your stress tends to be higher. Try a 2-min breathing or calming music.", name),
		Body:    fmt.Sprintf("This %s, your stress tends to be higher. Try a short reset.", name),
	}, true
}
