package wellness

import (
	"math"
	"time"
)

// TrendDays is the length of the daily series.
const TrendDays = 7

type Slot string

const (
	SlotMorning   Slot = "Morning"
	SlotAfternoon Slot = "Afternoon"
	SlotEvening   Slot = "Evening"
	SlotNight     Slot = "Night"
)

// Slots lists the time-of-day slots in report order.
var Slots = []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// SlotForHour maps a local hour (0-23) to its slot.
func SlotForHour(h int) Slot {
	switch {
	case h >= 5 && h < 11:
		return SlotMorning
	case h >= 11 && h < 17:
		return SlotAfternoon
	case h >= 17 && h < 22:
		return SlotEvening
	default:
		return SlotNight
	}
}

type DayAverage struct {
	Day   time.Time // local midnight
	Avg   float64
	Count int
}

// Key is the YYYY-MM-DD form of the day.
func (d DayAverage) Key() string { return d.Day.Format("2006-01-02") }

type SlotAverage struct {
	Slot  Slot
	Avg   float64
	Count int
}

// Mean is the arithmetic mean rounded to one decimal; 0 for no values.
func Mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return math.Round(float64(sum)/float64(len(vals))*10) / 10
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TrendWindowStart is local midnight six days before now, the earliest
// instant that can land in DailySeries.
func TrendWindowStart(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -(TrendDays - 1))
}

// DailySeries averages stress per local calendar day for the seven days
// ending on now's day, oldest first. Records outside the window are ignored.
func DailySeries(records []StressRecord, now time.Time) []DayAverage {
	loc := now.Location()
	start := TrendWindowStart(now)

	buckets := make(map[string][]int, TrendDays)
	for _, r := range records {
		key := r.CreatedAt.In(loc).Format("2006-01-02")
		buckets[key] = append(buckets[key], r.StressLevel)
	}

	series := make([]DayAverage, 0, TrendDays)
	for i := 0; i < TrendDays; i++ {
		day := start.AddDate(0, 0, i)
		vals := buckets[day.Format("2006-01-02")]
		series = append(series, DayAverage{Day: day, Avg: Mean(vals), Count: len(vals)})
	}
	return series
}

// TimeOfDaySeries averages stress per slot by local hour, in Slots order.
func TimeOfDaySeries(records []StressRecord, loc *time.Location) []SlotAverage {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(map[Slot][]int, len(Slots))
	for _, r := range records {
		s := SlotForHour(r.CreatedAt.In(loc).Hour())
		buckets[s] = append(buckets[s], r.StressLevel)
	}

	series := make([]SlotAverage, 0, len(Slots))
	for _, s := range Slots {
		series = append(series, SlotAverage{Slot: s, Avg: Mean(buckets[s]), Count: len(buckets[s])})
	}
	return series
}

// SlotAvg looks up one slot in a time-of-day series; 0 when missing.
func SlotAvg(series []SlotAverage, s Slot) float64 {
	for _, b := range series {
		if b.Slot == s {
			return b.Avg
		}
	}
	return 0
}
