package store

import "time"

type MoodTag struct {
	ID    int64
	Slug  string
	Label string
}

// MoodCount is how often a tag was attached to check-ins in a window.
type MoodCount struct {
	Label string
	Count int
}

// Relief session kinds and statuses.
const (
	KindBreathing = "breathing"
	KindPuzzle    = "puzzle"
	KindSoothe    = "soothe"

	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type ReliefSession struct {
	ID        string
	Kind      string
	Detail    string // breathing pattern, puzzle outcome
	StartedAt time.Time
	EndedAt   *time.Time
	Cycles    int
	Status    string
}

type ReliefStats struct {
	Completed int
	Cancelled int
	Cycles    int
}

type Setting struct {
	Key   string
	Value string
}

// RecordFilter selects check-ins. A zero Since means no lower bound and a
// Limit <= 0 means no limit. Results are newest first unless Ascending.
type RecordFilter struct {
	Since     time.Time
	Limit     int
	Ascending bool
}
