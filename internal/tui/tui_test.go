package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/unwind/internal/media"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeNotifier struct {
	perm notify.Permission
	sent []string
}

func (f *fakeNotifier) Permission() notify.Permission { return f.perm }

func (f *fakeNotifier) RequestPermission() (notify.Permission, error) {
	if f.perm == notify.PermissionDefault {
		f.perm = notify.PermissionGranted
	}
	return f.perm, nil
}

func (f *fakeNotifier) Notify(title, body string) error {
	if f.perm != notify.PermissionGranted {
		return notify.ErrPermissionDenied
	}
	f.sent = append(f.sent, title)
	return nil
}

func newTestApp(t *testing.T) (App, *store.Store, *fakeNotifier) {
	t.Helper()
	s := newTestStore(t)
	n := &fakeNotifier{perm: notify.PermissionDefault}
	sess := session.New(s, n, session.Options{})
	m, _ := NewApp(sess, s, n).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), s, n
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key through the root model and returns the updated App.
func press(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

// ============================================================
// Breathing guide
// ============================================================

func TestBreathStartStop(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)

	if b.running() {
		t.Fatal("breathing should start idle")
	}

	b, cmd := b.update(runes("s"))
	if !b.running() {
		t.Fatal("s should start the cycle")
	}
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if b.cycle.Phase() != wellness.PhaseInhale || b.cycle.Remaining() != 4 {
		t.Fatalf("phase = %v %d, want Inhale 4", b.cycle.Phase(), b.cycle.Remaining())
	}

	b, _ = b.update(runes("x"))
	if b.running() {
		t.Fatal("x should stop the cycle")
	}
}

func TestBreathIgnoresStaleTicks(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)

	b, _ = b.start()
	first := b.gen

	b, _ = b.stop()
	b, _ = b.start()
	if b.gen == first {
		t.Fatal("restart should bump the generation")
	}

	b, cmd := b.update(breathTickMsg{gen: first})
	if cmd != nil {
		t.Fatal("stale tick should not reschedule")
	}
	if b.cycle.Remaining() != 4 {
		t.Fatalf("stale tick advanced the cycle to %d", b.cycle.Remaining())
	}

	b, cmd = b.update(breathTickMsg{gen: b.gen})
	if cmd == nil {
		t.Fatal("current tick should reschedule")
	}
	if b.cycle.Remaining() != 3 {
		t.Fatalf("remaining = %d, want 3", b.cycle.Remaining())
	}
}

func TestBreathTickAfterStopIsDropped(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)
	b, _ = b.start()
	gen := b.gen
	b, _ = b.stop()

	if _, cmd := b.update(breathTickMsg{gen: gen}); cmd != nil {
		t.Fatal("no tick chain should survive a stop")
	}
}

func TestBreathPresetStopsAndResets(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)
	b, _ = b.start()
	b, _ = b.update(breathTickMsg{gen: b.gen})

	b, _ = b.update(runes("p"))
	if b.running() {
		t.Fatal("changing preset should stop the cycle")
	}
	if b.preset != wellness.Preset478 {
		t.Fatalf("preset = %s, want 4-7-8", b.preset)
	}
	if b.cycle.Pattern() != wellness.FourSevenEight {
		t.Fatalf("pattern = %v", b.cycle.Pattern())
	}
	if b.cycle.Phase() != wellness.PhaseInhale || b.cycle.Remaining() != 4 {
		t.Fatal("preset change should reset to Inhale")
	}

	b, _ = b.update(runes("p"))
	b, _ = b.update(runes("p"))
	if b.preset != wellness.PresetBox {
		t.Fatalf("presets should wrap back to Box, got %s", b.preset)
	}
}

func TestBreathEmptyCustomPatternRefusesStart(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)
	b.custom = wellness.Pattern{}
	b, _ = b.setPreset(wellness.PresetCustom)

	b, cmd := b.start()
	if b.running() {
		t.Fatal("an all-zero pattern must not start")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestBreathRecordsReliefSession(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)
	b, _ = b.start()

	started, ok := startReliefCmd(s, store.KindBreathing, "Box 4-4-4-4", b.gen)().(reliefStartedMsg)
	if !ok {
		t.Fatal("startReliefCmd should report the new session")
	}
	b, _ = b.update(started)
	if b.sessionID != started.id {
		t.Fatal("session id not kept")
	}

	b, cmd := b.stop()
	if cmd == nil {
		t.Fatal("stop should close the session")
	}
	cmd()

	rs, err := s.GetReliefSession(context.Background(), started.id)
	if err != nil {
		t.Fatal(err)
	}
	if rs.Status != store.StatusCancelled {
		t.Fatalf("status = %q, want cancelled for a run with no rounds", rs.Status)
	}
}

func TestBreathLateStartIsCancelled(t *testing.T) {
	s := newTestStore(t)
	b := newBreathModel(s)
	b, _ = b.start()
	gen := b.gen
	b, _ = b.stop()

	started := startReliefCmd(s, store.KindBreathing, "Box", gen)().(reliefStartedMsg)
	b, cmd := b.update(started)
	if b.sessionID != "" {
		t.Fatal("a stopped run must not adopt a late session")
	}
	cmd()

	rs, _ := s.GetReliefSession(context.Background(), started.id)
	if rs.Status != store.StatusCancelled {
		t.Fatalf("late session status = %q, want cancelled", rs.Status)
	}
}

// ============================================================
// Puzzle
// ============================================================

func TestPuzzleKeys(t *testing.T) {
	s := newTestStore(t)
	p := newPuzzleModel(s)

	p, _ = p.update(runes("5"))
	if p.puzzle.Active() {
		t.Fatal("digits should not start the puzzle")
	}

	p, _ = p.update(runes("s"))
	if !p.puzzle.Active() {
		t.Fatal("s should start the puzzle")
	}

	p, _ = p.update(runes("2"))
	if p.misses != 1 || p.puzzle.Next() != 1 {
		t.Fatalf("wrong tap: misses=%d next=%d", p.misses, p.puzzle.Next())
	}

	var cmd tea.Cmd
	for n := 1; n <= wellness.PuzzleSize; n++ {
		p, cmd = p.update(runes(string(rune('0' + n))))
	}
	if !p.puzzle.Complete() {
		t.Fatal("puzzle should be complete after 1..9")
	}
	if cmd == nil {
		t.Fatal("completion should report a status")
	}
}

func TestPuzzleStopDiscardsBoard(t *testing.T) {
	s := newTestStore(t)
	p := newPuzzleModel(s)
	p, _ = p.start()
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEscape})
	if p.puzzle.Active() || len(p.puzzle.Sequence()) != 0 {
		t.Fatal("esc should discard the board")
	}
}

// ============================================================
// Color soothe and music
// ============================================================

func TestSootheAdjustNormalizes(t *testing.T) {
	s := newTestStore(t)
	m := newSootheModel(s)
	m.soothe.Hue = 355

	m, cmd := m.update(runes("k"))
	if m.soothe.Hue != 5 {
		t.Fatalf("hue = %d, want 5 after wrap", m.soothe.Hue)
	}
	if _, ok := cmd().(settingsSavedMsg); !ok {
		t.Fatal("adjust should persist the setting")
	}
	if v, _ := s.GetSetting(context.Background(), store.SettingSootheHue); v != "5" {
		t.Fatalf("stored hue = %q", v)
	}

	for i := 0; i < 20; i++ {
		m, _ = m.adjust(0, 1)
	}
	if m.soothe.Speed != wellness.MaxSpeed {
		t.Fatalf("speed = %d, want clamp to %d", m.soothe.Speed, wellness.MaxSpeed)
	}
}

func TestSootheElapsedFollowsTicks(t *testing.T) {
	s := newTestStore(t)
	m := newSootheModel(s)
	if m.elapsed() != 0 {
		t.Fatal("idle soothe has no elapsed time")
	}
	m, _ = m.start()
	m, _ = m.update(tickMsg(m.startedAt.Add(3 * time.Second)))
	if got := m.elapsed(); got != 3 {
		t.Fatalf("elapsed = %v, want 3", got)
	}
}

func TestGradientWidth(t *testing.T) {
	stops := wellness.NewSoothe().Stops()
	if got := gradient(stops, 30); got == "" || strings.Count(got, " ") < 30 {
		t.Fatalf("gradient should render 30 cells, got %q", got)
	}
	if gradient(stops, 1) != "" {
		t.Fatal("gradient needs at least two cells")
	}
	if gradient([]string{"nope", "#000000"}, 10) != "" {
		t.Fatal("invalid hex should render nothing")
	}
}

func TestMusicFilterAndSelect(t *testing.T) {
	m := newMusicModel()
	want := media.Filter(media.CategoryCalm, 0)

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(want) > 0 {
		if m.selected == nil || m.selected.ID != want[0].ID {
			t.Fatal("enter should select the first item")
		}
		if cmd == nil {
			t.Fatal("selecting should report a status")
		}
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	if m.minMinutes != media.FilterStep {
		t.Fatalf("minMinutes = %d, want %d", m.minMinutes, media.FilterStep)
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.minMinutes != media.FilterMaximum {
		t.Fatalf("filter should wrap to %d, got %d", media.FilterMaximum, m.minMinutes)
	}

	m, _ = m.update(runes("c"))
	if m.category != media.CategoryFocus {
		t.Fatalf("category = %s, want Focus", m.category)
	}
}

// ============================================================
// Home tab
// ============================================================

func TestNextPresetAndMode(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {1, 3}, {4, 5}, {8, 9}, {9, 1}, {10, 1}}
	for _, tt := range tests {
		if got := nextPreset(tt.in); got != tt.want {
			t.Errorf("nextPreset(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if nextMode(wellness.ModeDetailed) != wellness.ModeQuick {
		t.Fatal("modes should wrap")
	}
}

func TestHomeKeysDriveSession(t *testing.T) {
	s := newTestStore(t)
	sess := session.New(s, nil, session.Options{})
	h := newHomeModel(sess)

	h, _ = h.update(tea.KeyMsg{Type: tea.KeyRight})
	if sess.Stress() != 4 {
		t.Fatalf("stress = %d, want 4", sess.Stress())
	}
	h, _ = h.update(runes("p"))
	if sess.Stress() != 5 {
		t.Fatalf("stress = %d, want preset 5", sess.Stress())
	}
	for i := 0; i < 12; i++ {
		h, _ = h.update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if sess.Stress() != wellness.MaxStress {
		t.Fatalf("stress should clamp at %d, got %d", wellness.MaxStress, sess.Stress())
	}

	h, _ = h.update(runes("m"))
	if sess.Mode() != wellness.ModeDaily {
		t.Fatalf("mode = %s, want Daily", sess.Mode())
	}

	h, _ = h.update(tea.KeyMsg{Type: tea.KeyDown})
	h, _ = h.update(runes(" "))
	if !sess.Snapshot().Moods.Has(wellness.Moods[1]) {
		t.Fatalf("space should toggle %s", wellness.Moods[1])
	}
}

func TestHomeNotesSkippedInQuickMode(t *testing.T) {
	s := newTestStore(t)
	sess := session.New(s, nil, session.Options{})
	h := newHomeModel(sess)

	h, cmd := h.update(runes("n"))
	if h.formActive {
		t.Fatal("quick mode should not open the notes form")
	}
	if cmd == nil {
		t.Fatal("expected a status hint")
	}

	sess.SetMode(wellness.ModeDetailed)
	h, _ = h.update(runes("n"))
	if !h.formActive {
		t.Fatal("detailed mode should open the notes form")
	}
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyEscape})
	if h.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestHomeSaveWritesCheckIn(t *testing.T) {
	s := newTestStore(t)
	sess := session.New(s, nil, session.Options{})
	h := newHomeModel(sess)
	sess.SetStress(9)
	sess.ToggleMood(wellness.MoodAnxious)

	_, cmd := h.update(runes("s"))
	msg, ok := cmd().(checkinSavedMsg)
	if !ok {
		t.Fatal("save should report checkinSavedMsg")
	}
	if msg.err != nil || msg.id == "" {
		t.Fatalf("save: id=%q err=%v", msg.id, msg.err)
	}

	rec, err := s.GetRecord(context.Background(), msg.id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.StressLevel != 9 || len(rec.MoodTags) != 1 || rec.MoodTags[0] != wellness.MoodAnxious {
		t.Fatalf("stored record = %+v", rec)
	}
	if len(sess.Snapshot().Moods) != 0 {
		t.Fatal("moods should clear after save")
	}
}

func TestHomeTrySuggestion(t *testing.T) {
	s := newTestStore(t)
	sess := session.New(s, nil, session.Options{})
	sess.SetStress(8)
	h := newHomeModel(sess)

	_, cmd := h.update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(trySuggestionMsg)
	if !ok {
		t.Fatal("Rescue Breath should be tryable")
	}
	if msg.suggestion.Preset != wellness.Preset478 {
		t.Fatalf("preset = %s, want 4-7-8", msg.suggestion.Preset)
	}

	h, _ = h.update(runes("]"))
	_, cmd = h.update(tea.KeyMsg{Type: tea.KeyEnter})
	if st, ok := cmd().(statusMsg); !ok || !strings.Contains(st.text, "Grounding") {
		t.Fatalf("grounding has no tool and should only show a hint, got %#v", st)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.activeTab() != session.TabHome {
		t.Fatal("default tab should be Home")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isCapturing() {
		t.Fatal("nothing should capture input initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, tab := range session.Tabs {
		app.session.SetTab(tab)
		if app.View() == "" {
			t.Fatalf("tab %s rendered empty", tab)
		}
	}
}

func TestAppTabKeys(t *testing.T) {
	app, _, _ := newTestApp(t)

	app, _ = press(t, app, runes("3"))
	if app.activeTab() != session.TabInsights {
		t.Fatalf("tab = %s, want Insights", app.activeTab())
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeTab() != session.TabJournal {
		t.Fatalf("tab = %s, want Journal", app.activeTab())
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.activeTab() != session.TabProfile {
		t.Fatalf("shift+tab should wrap to Profile, got %s", app.activeTab())
	}
}

func TestAppPuzzleCapturesDigits(t *testing.T) {
	app, _, _ := newTestApp(t)
	app, _ = press(t, app, runes("2"))
	app.relief.tool = toolPuzzle
	app, _ = press(t, app, runes("s"))
	if !app.isCapturing() {
		t.Fatal("active puzzle should capture input")
	}

	app, _ = press(t, app, runes("4"))
	if app.activeTab() != session.TabRelief {
		t.Fatal("digits must tap the puzzle, not switch tabs")
	}
}

func TestAppTrySuggestionOpensRelief(t *testing.T) {
	app, _, _ := newTestApp(t)
	sug := wellness.Suggest(9, wellness.NewMoodSet())[0]

	app, _ = press(t, app, trySuggestionMsg{suggestion: sug})
	if app.activeTab() != session.TabRelief {
		t.Fatal("trying a suggestion should open Relief")
	}
	if app.relief.tool != toolBreathing || !app.relief.breath.running() {
		t.Fatal("Rescue Breath should start the breathing guide")
	}
	if app.relief.breath.preset != wellness.Preset478 {
		t.Fatalf("preset = %s, want 4-7-8", app.relief.breath.preset)
	}
	if !containsString(app.renderFooter(), "Inhale") {
		t.Fatal("footer should show the running phase")
	}
}

func TestAppTrySootheOnlyOpens(t *testing.T) {
	app, _, _ := newTestApp(t)
	moods := wellness.NewMoodSet(wellness.MoodTired)
	var soothe wellness.Suggestion
	for _, s := range wellness.Suggest(2, moods) {
		if s.Action == wellness.ActionSoothe {
			soothe = s
		}
	}

	app, _ = press(t, app, trySuggestionMsg{suggestion: soothe})
	if app.relief.tool != toolSoothe {
		t.Fatal("color soothe suggestion should open the soothe tool")
	}
	if app.relief.soothe.running {
		t.Fatal("the soothe tool opens without starting")
	}
}

func TestAppCheckinSavedStatus(t *testing.T) {
	app, _, _ := newTestApp(t)

	app, cmd := press(t, app, checkinSavedMsg{id: "abc"})
	if app.status != "Check-in saved" || app.statusErr {
		t.Fatalf("status = %q err=%v", app.status, app.statusErr)
	}
	if _, ok := cmd().(sessionRefreshedMsg); !ok {
		t.Fatal("saving should rebuild dependent views")
	}

	verr := &wellness.ValidationError{Field: "notes", Reason: "detailed check-ins need notes"}
	app, _ = press(t, app, checkinSavedMsg{err: verr})
	if !app.statusErr || !containsString(app.status, "notes") {
		t.Fatalf("status = %q", app.status)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _, _ := newTestApp(t)
	header := app.renderHeader()
	for _, tab := range session.Tabs {
		if !containsString(header, tab.String()) {
			t.Fatalf("header missing tab %q", tab)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 0
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _, _ := newTestApp(t)
	app, _ = press(t, app, statusMsg{text: "test status"})
	if !containsString(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _, _ := newTestApp(t)
	app, _ = press(t, app, runes("e"))
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatal("down should move to JSON")
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEscape})
	if app.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

// ============================================================
// Profile tab
// ============================================================

func TestProfileRequestPermission(t *testing.T) {
	s := newTestStore(t)
	n := &fakeNotifier{perm: notify.PermissionDefault}
	p := newProfileModel(s, n)

	_, cmd := p.update(runes("n"))
	msg, ok := cmd().(permissionMsg)
	if !ok {
		t.Fatal("n should request permission")
	}
	if msg.permission != notify.PermissionGranted {
		t.Fatalf("permission = %s", msg.permission)
	}
	if !containsString(p.renderNotifications(), "enabled") {
		t.Fatal("profile should show notifications as enabled")
	}
}

func TestProfileFormSavesSettings(t *testing.T) {
	s := newTestStore(t)
	p := newProfileModel(s, nil)

	*p.preset = string(wellness.Preset478)
	*p.custom = "5-5-5-5"
	*p.hue = "120"
	*p.speed = "8"
	if _, ok := p.saveSettings()().(settingsSavedMsg); !ok {
		t.Fatal("saveSettings should report success")
	}

	ctx := context.Background()
	want := map[string]string{
		store.SettingBreathPreset: "4-7-8",
		store.SettingBreathCustom: "5-5-5-5",
		store.SettingSootheHue:    "120",
		store.SettingSootheSpeed:  "8",
	}
	for k, v := range want {
		if got, _ := s.GetSetting(ctx, k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	msg := newReliefModel(s).loadSettings()().(reliefSettingsMsg)
	if msg.preset != wellness.Preset478 || msg.custom != (wellness.Pattern{5, 5, 5, 5}) || msg.soothe.Hue != 120 {
		t.Fatalf("relief settings = %+v", msg)
	}
}

func TestProfileHidesNudgeBookkeeping(t *testing.T) {
	s := newTestStore(t)
	p := newProfileModel(s, nil)
	p.setSize(120, 40)
	p, _ = p.update(p.refresh()())

	view := p.view()
	if !containsString(view, "Soothe hue") {
		t.Fatal("profile should list preferences")
	}
	for _, k := range []string{store.SettingNudgeLastMessage, store.SettingNotificationLastSent} {
		if containsString(view, k) {
			t.Fatalf("profile shows internal key %s", k)
		}
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct{ key, val, want string }{
		{store.SettingSootheSpeed, "6", "6s"},
		{store.SettingSootheHue, "210", "210°"},
		{store.SettingBreathCustom, "4-7-8-0", "4-7-8-0 (19s per round)"},
		{store.SettingBreathPreset, "Box", "Box"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.val); got != tt.want {
			t.Errorf("formatSettingValue(%s, %s) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{7, "00:07"},
		{65, "01:05"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestDescribeError(t *testing.T) {
	verr := &wellness.ValidationError{Field: "stress", Reason: "must be 0-10"}
	if got := describeError(verr); got != "Invalid stress: must be 0-10" {
		t.Fatalf("got %q", got)
	}
	if got := describeError(session.ErrSaveInProgress); !strings.Contains(got, "saving") {
		t.Fatalf("got %q", got)
	}
	if got := describeError(errors.New("boom")); got != "Error: boom" {
		t.Fatalf("got %q", got)
	}
}

// containsString reports whether rendered output contains substr.
func containsString(s, substr string) bool {
	return len(s) > 0 && len(substr) > 0 && strings.Contains(s, substr)
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"advisory", func() string { return advisoryStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"chip", func() string { return chipStyle.Render("test") }},
		{"activeChip", func() string { return activeChipStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"stress", func() string { return stressStyle(9).Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
