package update

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/activity"
	"github.com/sandeepkv93/streakd/internal/focus"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/scheduler"
	"github.com/sandeepkv93/streakd/internal/storage"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, clock *testClock) Model {
	t.Helper()
	dir := t.TempDir()
	repo, err := storage.OpenSQLite(filepath.Join(dir, "streakd.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	n := 0
	tr, err := tracker.Open(t.Context(), repo, tracker.Options{
		Now:      clock.Now,
		NewID:    func() string { n++; return fmt.Sprintf("id-%d", n) },
		Log:      activity.Discard(),
		LockPath: filepath.Join(dir, "streakd.lock"),
	})
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return NewModel(Options{
		Tracker: tr,
		Modes: focus.Modes{
			focus.ModePomodoro: {Work: 2, Break: 1},
			focus.ModeLong:     {Work: 4, Break: 2},
		},
		Context: t.Context(),
	})
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{})
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Analysis.Tab != TabWeek {
		t.Fatalf("expected default analysis tab week, got %q", m.Analysis.Tab)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Focus.Timer.Mode != focus.ModePomodoro || m.Focus.Timer.Remaining != 25*60 {
		t.Fatalf("unexpected default timer: %+v", m.Focus.Timer)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := NewModel(Options{})
	cases := map[string]View{"2": ViewFocus, "3": ViewAnalysis, "4": ViewAchievements, "5": ViewJournal, "1": ViewToday}
	for _, key := range []string{"2", "3", "4", "5", "1"} {
		m = press(t, m, runes(key))
		if m.CurrentView != cases[key] {
			t.Fatalf("key %s: expected %q, got %q", key, cases[key], m.CurrentView)
		}
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := NewModel(Options{})
	updated, _ := m.Update(SwitchViewMsg{View: ViewJournal})
	next := updated.(Model)
	if next.CurrentView != ViewJournal {
		t.Fatalf("expected journal view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewJournal {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel(Options{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || len(next.Notifications) != 1 {
		t.Fatalf("expected error status and notification, got %+v / %d", next.Status, len(next.Notifications))
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestAddAndToggleTaskStartsStreak(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)

	m = press(t, m, runes("a"), runes("08:30 Read chapter !high #study"), enter)
	if m.Today.Adding {
		t.Fatal("expected add mode to end after enter")
	}
	if len(m.Report.TodayTasks) != 1 {
		t.Fatalf("expected one task, got %d (status %+v)", len(m.Report.TodayTasks), m.Status)
	}
	task := m.Report.TodayTasks[0]
	if task.Text != "Read chapter" || task.Time != "08:30" || task.Priority != model.PriorityHigh || task.Category != model.CategoryStudy {
		t.Fatalf("unexpected task: %+v", task)
	}

	m = press(t, m, space)
	if !m.Report.TodayTasks[0].Completed {
		t.Fatal("expected task completed after space")
	}
	if m.Report.Streak.Count != 1 || m.Report.TodayProductivity != 100 {
		t.Fatalf("expected streak 1 at 100%%, got %d at %d%%", m.Report.Streak.Count, m.Report.TodayProductivity)
	}

	m = press(t, m, runes("x"))
	if m.Report.TodayTasks[0].Completed {
		t.Fatal("expected task reopened after x")
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m = press(t, m, runes("a"), runes("09:00 !low"), enter)
	if len(m.Report.TodayTasks) != 0 || !m.Status.IsError {
		t.Fatalf("expected validation error, got %d tasks and %+v", len(m.Report.TodayTasks), m.Status)
	}
}

func TestPaletteDoneMarksByIndex(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	if _, err := m.Tracker.SaveSchedule(t.Context(), m.Report.Today, []model.TaskRecord{
		{Text: "Gym", Priority: model.PriorityMedium, Category: model.CategoryHealth},
		{Text: "Write", Priority: model.PriorityMedium, Category: model.CategoryWork},
	}); err != nil {
		t.Fatalf("save schedule: %v", err)
	}
	m.refresh()

	m = press(t, m, runes("/"), runes("done 2"), enter)
	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	if m.Report.TodayTasks[0].Completed || !m.Report.TodayTasks[1].Completed {
		t.Fatalf("expected only task 2 completed: %+v (status %+v)", m.Report.TodayTasks, m.Status)
	}

	m = press(t, m, runes("/"), runes("done 9"), enter)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "out of range") {
		t.Fatalf("expected out of range error, got %+v", m.Status)
	}

	m = press(t, m, runes("/"), runes("show task Gym"), enter)
	if m.CurrentView != ViewAnalysis || m.Analysis.Tab != TabHistory || m.Report.TaskNames[m.Analysis.HistoryIndex] != "Gym" {
		t.Fatalf("expected Gym history, got view %q tab %q idx %d", m.CurrentView, m.Analysis.Tab, m.Analysis.HistoryIndex)
	}
}

func TestPaletteLogAndMode(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)

	m = press(t, m, runes("/"), runes("log 30m"), enter)
	if len(m.Report.TodayTasks) != 1 || m.Report.TodayTasks[0].Text != model.MiscellaneousTask || m.Report.TodayTasks[0].PomodoroTime != 1800 {
		t.Fatalf("expected 30m on miscellaneous, got %+v (status %+v)", m.Report.TodayTasks, m.Status)
	}

	m = press(t, m, runes("/"), runes("mode long-pomodoro"), enter)
	if m.Focus.Timer.Mode != focus.ModeLong || m.Focus.Timer.Remaining != 4 {
		t.Fatalf("expected long mode, got %+v", m.Focus.Timer)
	}

	m = press(t, m, runes("/"), runes("mode sprint"), enter)
	if !m.Status.IsError {
		t.Fatalf("expected error for unknown mode, got %+v", m.Status)
	}
}

func TestFocusTickLogsWorkedTime(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)

	m = press(t, m, runes("2"), runes("e"), runes("Deep work"), enter)
	if m.Focus.TaskName != "Deep work" {
		t.Fatalf("expected focus task set, got %q", m.Focus.TaskName)
	}
	m = press(t, m, space)
	if !m.Focus.Timer.Running {
		t.Fatal("expected timer running")
	}
	for range 2 {
		updated, _ := m.Update(FocusTickMsg{Seq: m.Focus.TickSeq})
		m = updated.(Model)
	}
	if m.Focus.Timer.Running || m.Focus.Timer.Session != focus.SessionBreak || m.Focus.Timer.Completed != 1 {
		t.Fatalf("expected break after work session, got %+v", m.Focus.Timer)
	}
	if len(m.Report.TodayTasks) != 1 || m.Report.TodayTasks[0].PomodoroTime != 2 {
		t.Fatalf("expected 2s logged on Deep work, got %+v", m.Report.TodayTasks)
	}
	if len(m.Notifications) == 0 {
		t.Fatal("expected session-complete notification")
	}
}

func TestFocusPauseLogsAndQuitFlushes(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m.Focus.Timer = focus.NewTimer(focus.Modes{focus.ModePomodoro: {Work: 10, Break: 5}, focus.ModeLong: {Work: 20, Break: 5}})

	m = press(t, m, runes("2"), space)
	updated, _ := m.Update(FocusTickMsg{Seq: m.Focus.TickSeq})
	m = updated.(Model)
	m = press(t, m, space)
	if m.Focus.Timer.Running {
		t.Fatal("expected timer paused")
	}
	if got := m.Report.TodayTasks[0].PomodoroTime; got != 1 {
		t.Fatalf("expected 1s logged on pause, got %d", got)
	}

	m = press(t, m, space)
	for range 3 {
		updated, _ = m.Update(FocusTickMsg{Seq: m.Focus.TickSeq})
		m = updated.(Model)
	}
	updated, cmd := m.Update(runes("q"))
	m = updated.(Model)
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if got := m.Report.TodayTasks[0].PomodoroTime; got != 4 {
		t.Fatalf("expected 4s logged after quit, got %d", got)
	}
}

func TestFocusResumeDropsStaleTicks(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m.Focus.Timer = focus.NewTimer(focus.Modes{focus.ModePomodoro: {Work: 100, Break: 5}, focus.ModeLong: {Work: 200, Break: 5}})

	m = press(t, m, runes("2"), space)
	staleSeq := m.Focus.TickSeq
	m = press(t, m, space, space)
	if !m.Focus.Timer.Running {
		t.Fatal("expected timer running after resume")
	}

	updated, cmd := m.Update(FocusTickMsg{Seq: staleSeq})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("expected stale tick chain to end")
	}
	if m.Focus.Timer.Remaining != 100 {
		t.Fatalf("expected stale tick ignored, remaining %d", m.Focus.Timer.Remaining)
	}

	updated, cmd = m.Update(FocusTickMsg{Seq: m.Focus.TickSeq})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected live tick chain to continue")
	}
	if m.Focus.Timer.Remaining != 99 {
		t.Fatalf("expected one second counted, remaining %d", m.Focus.Timer.Remaining)
	}
}

func TestFocusDueEventCompletesSession(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m = press(t, m, runes("2"), space)

	updated, _ := m.Update(SchedulerEventMsg{Event: scheduler.Event{ID: focusDueID, Kind: scheduler.KindFocusDue, At: clock.now}})
	m = updated.(Model)
	if m.Focus.Timer.Running || m.Focus.Timer.Session != focus.SessionBreak {
		t.Fatalf("expected overdue session completed, got %+v", m.Focus.Timer)
	}
}

func TestRolloverEventMovesToNextDay(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 23, 59, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	if m.Report.Today != "2024-05-06" {
		t.Fatalf("unexpected today %q", m.Report.Today)
	}
	clock.now = time.Date(2024, time.May, 7, 0, 0, 1, 0, time.Local)
	updated, _ := m.Update(SchedulerEventMsg{Event: scheduler.Rollover(clock.now)})
	m = updated.(Model)
	if m.Report.Today != "2024-05-07" || !strings.Contains(m.Status.Text, "new day") {
		t.Fatalf("expected rollover to 2024-05-07, got %q / %+v", m.Report.Today, m.Status)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	if _, err := m.Tracker.LogFocus(t.Context(), "Read", 60); err != nil {
		t.Fatalf("log focus: %v", err)
	}
	if len(m.Report.TodayTasks) != 0 {
		t.Fatal("expected stale report before reload")
	}
	updated, _ := m.Update(ReloadMsg{})
	m = updated.(Model)
	if len(m.Report.TodayTasks) != 1 {
		t.Fatalf("expected reloaded task, got %+v", m.Report.TodayTasks)
	}
}

func TestJournalEditSaves(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 21, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m = press(t, m, runes("5"), runes("e"))
	if !m.Journal.Editing {
		t.Fatal("expected journal edit mode")
	}
	m = press(t, m, runes("Shipped the release"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Journal.Editing {
		t.Fatal("expected edit mode to end after save")
	}
	if got := m.Report.Journal["2024-05-06"]; got != "Shipped the release" {
		t.Fatalf("unexpected journal entry %q", got)
	}

	m = press(t, m, runes("a"))
	if got := m.Report.Journal["2024-05-06"]; !strings.Contains(got, "Saved Affirmation (09:00 PM)") {
		t.Fatalf("expected affirmation appended, got %q", got)
	}
}

func TestAnalysisTabsAndMonthNavigation(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	m = press(t, m, runes("3"), runes("y"))
	if m.Analysis.Tab != TabYear {
		t.Fatalf("expected year tab, got %q", m.Analysis.Tab)
	}
	m = press(t, m, runes("["))
	if m.Analysis.Tab != TabMonth || m.Report.Month.Month != time.February || len(m.Report.Month.Days) != 29 {
		t.Fatalf("expected February 2024 series, got %s with %d days", m.Report.Month.Month, len(m.Report.Month.Days))
	}
	if !strings.Contains(m.renderAnalysisView(), "February 2024") {
		t.Fatal("expected month title in analysis view")
	}
}

func TestParseQuickAdd(t *testing.T) {
	task, err := parseQuickAdd("07:15 Morning run !low #health")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if task.Time != "07:15" || task.Text != "Morning run" || task.Priority != model.PriorityLow || task.Category != model.CategoryHealth {
		t.Fatalf("unexpected task: %+v", task)
	}

	task, err = parseQuickAdd("Call mom #family")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if task.Text != "Call mom #family" || task.Priority != model.PriorityMedium || task.Category != model.CategoryPersonal {
		t.Fatalf("expected defaults with unknown tag kept in text, got %+v", task)
	}

	if _, err := parseQuickAdd("   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestViewRendersCurrentPanels(t *testing.T) {
	clock := &testClock{now: time.Date(2024, time.May, 6, 9, 0, 0, 0, time.Local)}
	m := newTestModel(t, clock)
	out := m.View()
	if !strings.Contains(out, "2024-05-06") || !strings.Contains(out, "no tasks scheduled") {
		t.Fatalf("unexpected today view:\n%s", out)
	}
	m = press(t, m, runes("4"))
	if !strings.Contains(m.View(), "achievements: 0/29") {
		t.Fatalf("expected empty achievements view:\n%s", m.View())
	}
	m = press(t, m, runes("?"))
	if !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel")
	}
}
