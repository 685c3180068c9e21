// Package session holds the check-in state shared by the TUI and CLI and
// coordinates the record store, trend analytics and nudges.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sadopc/unwind/internal/logger"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

// DefaultStress is the slider position of a fresh session.
const DefaultStress = 3

// DefaultRecentLimit is the size of the recent check-ins window.
const DefaultRecentLimit = 10

// RecordStore is the persistence the session needs.
type RecordStore interface {
	InsertRecord(ctx context.Context, rec wellness.StressRecord) (string, error)
	QueryRecords(ctx context.Context, f store.RecordFilter) ([]wellness.StressRecord, error)
	UpsertTags(ctx context.Context, labels []string) (map[string]int64, error)
	LinkTags(ctx context.Context, recordID string, tagIDs []int64) error
}

// AtomicRecordStore is implemented by stores that can write a check-in and
// its tags in one transaction.
type AtomicRecordStore interface {
	RecordStore
	SaveCheckIn(ctx context.Context, rec wellness.StressRecord) (string, error)
}

type Tab int

const (
	TabHome Tab = iota
	TabRelief
	TabInsights
	TabJournal
	TabProfile
)

var Tabs = []Tab{TabHome, TabRelief, TabInsights, TabJournal, TabProfile}

var tabNames = [...]string{"Home", "Relief", "Insights", "Journal", "Profile"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Options tunes a Session. Zero values pick the defaults.
type Options struct {
	RecentLimit    int
	NudgeThreshold float64
	Now            func() time.Time
}

// State is a consistent copy of everything the UI renders.
type State struct {
	Stress      int
	Mode        wellness.Mode
	Moods       wellness.MoodSet
	Notes       string
	Tab         Tab
	Recent      []wellness.StressRecord
	Week        []wellness.StressRecord
	Daily       []wellness.DayAverage
	Slots       []wellness.SlotAverage
	Advisory    *wellness.Advisory
	Saving      bool
	RefreshedAt time.Time
}

// NudgeMemory is implemented by stores that keep the last delivered
// advisory between runs.
type NudgeMemory interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

var errNoNotifier = errors.New("no notifier")

// Session is safe for concurrent use; store calls happen outside the lock.
type Session struct {
	store    RecordStore
	memory   NudgeMemory
	notifier notify.Notifier
	opts     Options
	loadOnce sync.Once

	mu           sync.Mutex
	stress       int
	mode         wellness.Mode
	moods        wellness.MoodSet
	notes        string
	tab          Tab
	recent       []wellness.StressRecord
	week         []wellness.StressRecord
	daily        []wellness.DayAverage
	slots        []wellness.SlotAverage
	advisory     *wellness.Advisory
	lastNotified string
	saving       bool
	refreshedAt  time.Time
}

// New returns a session with default inputs. notifier may be nil.
func New(st RecordStore, notifier notify.Notifier, opts Options) *Session {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	if opts.NudgeThreshold <= 0 {
		opts.NudgeThreshold = wellness.DefaultNudgeThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	memory, _ := st.(NudgeMemory)
	return &Session{
		store:    st,
		memory:   memory,
		notifier: notifier,
		opts:     opts,
		stress:   DefaultStress,
		mode:     wellness.ModeQuick,
		moods:    wellness.NewMoodSet(),
	}
}

func (s *Session) SetStress(level int) error {
	if err := wellness.ValidateStress(level); err != nil {
		return err
	}
	s.mu.Lock()
	s.stress = level
	s.mu.Unlock()
	return nil
}

func (s *Session) SetMode(m wellness.Mode) error {
	if !m.Valid() {
		return &wellness.ValidationError{Field: "mode", Reason: "unknown mode " + string(m)}
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	return nil
}

func (s *Session) ToggleMood(m wellness.Mood) error {
	if !m.Valid() {
		return &wellness.ValidationError{Field: "mood", Reason: "unknown mood " + string(m)}
	}
	s.mu.Lock()
	s.moods.Toggle(m)
	s.mu.Unlock()
	return nil
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
}

func (s *Session) SetTab(t Tab) {
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
}

// Clear resets notes and moods. Stress and mode are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
}

func (s *Session) clearLocked() {
	s.notes = ""
	s.moods = wellness.NewMoodSet()
}

// Suggestions runs the suggestion engine on the current inputs.
func (s *Session) Suggestions() []wellness.Suggestion {
	s.mu.Lock()
	stress, moods := s.stress, s.moods.Clone()
	s.mu.Unlock()
	return wellness.Suggest(stress, moods)
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Stress:      s.stress,
		Mode:        s.mode,
		Moods:       s.moods.Clone(),
		Notes:       s.notes,
		Tab:         s.tab,
		Recent:      append([]wellness.StressRecord(nil), s.recent...),
		Week:        append([]wellness.StressRecord(nil), s.week...),
		Daily:       append([]wellness.DayAverage(nil), s.daily...),
		Slots:       append([]wellness.SlotAverage(nil), s.slots...),
		Saving:      s.saving,
		RefreshedAt: s.refreshedAt,
	}
	if s.advisory != nil {
		adv := *s.advisory
		st.Advisory = &adv
	}
	return st
}

// pendingLocked builds the record Save will write. Quick check-ins carry no notes.
func (s *Session) pendingLocked() wellness.StressRecord {
	rec := wellness.StressRecord{
		CreatedAt:   s.opts.Now(),
		StressLevel: s.stress,
		Mode:        s.mode,
		MoodTags:    s.moods.Sorted(),
	}
	if s.mode != wellness.ModeQuick {
		rec.Notes = s.notes
	}
	return rec
}

// Save writes the current check-in, clears notes and moods, then refreshes
// the record window. Validation failures and store failures leave the inputs
// untouched. The returned id is set whenever the record was written, even if
// the follow-up refresh fails.
func (s *Session) Save(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return "", ErrSaveInProgress
	}
	rec := s.pendingLocked()
	if err := rec.Validate(); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.saving = true
	s.mu.Unlock()

	id, err := s.write(ctx, rec)

	s.mu.Lock()
	s.saving = false
	if err == nil {
		s.clearLocked()
	}
	s.mu.Unlock()

	if err != nil {
		logger.Error("save check-in failed", "error", err)
		return "", err
	}
	logger.Info("check-in saved", "id", id, "stress", rec.StressLevel, "mode", rec.Mode)
	return id, s.Refresh(ctx)
}

func (s *Session) write(ctx context.Context, rec wellness.StressRecord) (string, error) {
	if atomic, ok := s.store.(AtomicRecordStore); ok {
		id, err := atomic.SaveCheckIn(ctx, rec)
		return id, storeErr("save check-in", err)
	}

	var tagIDs []int64
	if len(rec.MoodTags) > 0 {
		labels := make([]string, len(rec.MoodTags))
		for i, m := range rec.MoodTags {
			labels[i] = string(m)
		}
		ids, err := s.store.UpsertTags(ctx, labels)
		if err != nil {
			return "", storeErr("upsert tags", err)
		}
		for _, l := range labels {
			tagIDs = append(tagIDs, ids[l])
		}
	}

	id, err := s.store.InsertRecord(ctx, rec)
	if err != nil {
		return "", storeErr("insert record", err)
	}
	if len(tagIDs) > 0 {
		if err := s.store.LinkTags(ctx, id, tagIDs); err != nil {
			return id, storeErr("link tags", err)
		}
	}
	return id, nil
}

// Refresh reloads the windows like Reload and notifies when a new advisory
// appears. The advisory is claimed under the lock, so concurrent refreshes
// deliver it at most once.
func (s *Session) Refresh(ctx context.Context) error {
	s.loadNudgeMemory(ctx)
	adv, ok, err := s.reload(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.lastNotified
	notifyNow := ok && adv.Message != prev
	switch {
	case notifyNow:
		s.lastNotified = adv.Message
	case !ok:
		s.lastNotified = ""
	}
	s.mu.Unlock()

	if notifyNow {
		s.deliver(ctx, adv, prev)
	} else if !ok && prev != "" {
		s.rememberNudge(ctx, "")
	}
	return nil
}

// Reload refreshes the recent and seven day windows, trends and the current
// advisory without sending a notification.
func (s *Session) Reload(ctx context.Context) error {
	_, _, err := s.reload(ctx)
	return err
}

func (s *Session) reload(ctx context.Context) (wellness.Advisory, bool, error) {
	now := s.opts.Now()

	recent, err := s.store.QueryRecords(ctx, store.RecordFilter{Limit: s.opts.RecentLimit})
	if err != nil {
		return wellness.Advisory{}, false, storeErr("query recent", err)
	}
	week, err := s.store.QueryRecords(ctx, store.RecordFilter{
		Since:     wellness.TrendWindowStart(now),
		Ascending: true,
	})
	if err != nil {
		return wellness.Advisory{}, false, storeErr("query trend window", err)
	}

	daily := wellness.DailySeries(week, now)
	slots := wellness.TimeOfDaySeries(week, now.Location())
	adv, ok := wellness.PredictNudge(slots, now.Hour(), s.opts.NudgeThreshold)

	s.mu.Lock()
	s.recent = recent
	s.week = week
	s.daily = daily
	s.slots = slots
	s.refreshedAt = now
	if ok {
		s.advisory = &adv
	} else {
		s.advisory = nil
	}
	s.mu.Unlock()
	return adv, ok, nil
}

// deliver sends adv. On failure the claim is released back to prev so a
// later refresh can retry.
func (s *Session) deliver(ctx context.Context, adv wellness.Advisory, prev string) {
	var err error
	if s.notifier == nil {
		err = errNoNotifier
	} else {
		err = s.notifier.Notify(wellness.NudgeTitle, adv.Body)
	}
	if err == nil {
		s.rememberNudge(ctx, adv.Message)
		return
	}

	s.mu.Lock()
	if s.lastNotified == adv.Message {
		s.lastNotified = prev
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, errNoNotifier):
	case errors.Is(err, notify.ErrPermissionDenied), errors.Is(err, notify.ErrRateLimited):
		logger.Debug("nudge not delivered", "reason", err)
	default:
		logger.Warn("nudge notification failed", "error", err)
	}
}

// loadNudgeMemory restores the last delivered advisory once per session.
func (s *Session) loadNudgeMemory(ctx context.Context) {
	if s.memory == nil {
		return
	}
	s.loadOnce.Do(func() {
		v, err := s.memory.GetSetting(ctx, store.SettingNudgeLastMessage)
		if err != nil {
			logger.Debug("no stored nudge", "error", err)
			return
		}
		s.mu.Lock()
		if s.lastNotified == "" {
			s.lastNotified = v
		}
		s.mu.Unlock()
	})
}

func (s *Session) rememberNudge(ctx context.Context, message string) {
	if s.memory == nil {
		return
	}
	if err := s.memory.SetSetting(ctx, store.SettingNudgeLastMessage, message); err != nil {
		logger.Warn("store last nudge failed", "error", err)
	}
}

func (s *Session) Stress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stress
}

func (s *Session) Mode() wellness.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// Advisory returns the current nudge, if any.
func (s *Session) Advisory() (wellness.Advisory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advisory == nil {
		return wellness.Advisory{}, false
	}
	return *s.advisory, true
}
