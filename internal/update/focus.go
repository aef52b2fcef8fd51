package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/focus"
	"github.com/sandeepkv93/streakd/internal/scheduler"
	"github.com/sandeepkv93/streakd/internal/views"
)

const focusDueID = "focus-session"

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Timer.Running {
			m.logWorked(m.Focus.Timer.Pause())
			m.stopFocusTicks()
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		m.Focus.Timer.Start()
		m.Focus.TickSeq++
		m.scheduleFocusDue()
		m.Status = StatusBar{Text: fmt.Sprintf("%s session running", m.Focus.Timer.Session)}
		return m, focusTickCmd(m.Focus.TickSeq)
	case "r":
		m.logWorked(m.Focus.Timer.Reset())
		m.stopFocusTicks()
		m.Status = StatusBar{Text: "focus reset"}
	case "n":
		worked, finished := m.Focus.Timer.Complete()
		m.logWorked(worked)
		m.stopFocusTicks()
		m.Status = StatusBar{Text: fmt.Sprintf("%s session skipped", finished)}
	case "m":
		next := focus.ModeLong
		if m.Focus.Timer.Mode == focus.ModeLong {
			next = focus.ModePomodoro
		}
		if err := m.switchMode(next); err != nil {
			m.setError(err)
		}
	case "e":
		m.Focus.EditingTask = true
		m.taskInput.SetValue(m.Focus.TaskName)
		m.taskInput.Focus()
	case "t":
		if task, ok := m.selectedTask(); ok {
			m.Focus.TaskName = task.Text
			m.Status = StatusBar{Text: "focus task: " + task.Text}
		}
	}
	return m, nil
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Focus.EditingTask = false
		m.taskInput.Blur()
	case "enter":
		m.Focus.TaskName = strings.TrimSpace(m.taskInput.Value())
		m.Focus.EditingTask = false
		m.taskInput.Blur()
		m.Status = StatusBar{Text: "focus task: " + m.focusTaskLabel()}
	default:
		m.taskInput = updateTextInput(m.taskInput, msg)
	}
	return m
}

// onFocusTick advances the timer. Ticks from a chain started before the
// last start, pause or reset carry a stale Seq and are dropped.
func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	if !m.Focus.Timer.Running || msg.Seq != m.Focus.TickSeq {
		return m, nil
	}
	done, worked, finished := m.Focus.Timer.Tick()
	if !done {
		return m, focusTickCmd(m.Focus.TickSeq)
	}
	m.logWorked(worked)
	m.stopFocusTicks()
	m.announceFinished(finished)
	return m, nil
}

// finishOverdueSession completes a running session whose deadline passed
// without the tick loop reaching zero, e.g. after the machine slept.
func (m *Model) finishOverdueSession() {
	if !m.Focus.Timer.Running {
		return
	}
	worked, finished := m.Focus.Timer.Complete()
	m.Focus.TickSeq++
	m.logWorked(worked)
	m.announceFinished(finished)
}

func (m *Model) announceFinished(finished focus.Session) {
	if finished == focus.SessionWork {
		m.Status = StatusBar{Text: "work session complete; press space to start the break"}
		m.notify("Focus", "Work session complete. Time for a break!", "info")
		return
	}
	m.Status = StatusBar{Text: "break complete; press space for the next focus block"}
	m.notify("Focus", "Break over. Ready to focus again?", "info")
}

func (m *Model) switchMode(mode focus.Mode) error {
	worked, err := m.Focus.Timer.SetMode(mode)
	if err != nil {
		return err
	}
	m.logWorked(worked)
	m.stopFocusTicks()
	m.Status = StatusBar{Text: "mode: " + string(mode)}
	return nil
}

// logWorked credits worked seconds to the focus task.
func (m *Model) logWorked(seconds int) {
	if seconds <= 0 || m.Tracker == nil {
		return
	}
	task, err := m.Tracker.LogFocus(m.ctx, m.Focus.TaskName, seconds)
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("logged %ds on %s", seconds, task.Text)}
}

// flushFocus logs the running session before quitting.
func (m *Model) flushFocus() {
	if m.Focus.Timer.Running {
		m.logWorked(m.Focus.Timer.Pause())
	}
}

func (m *Model) scheduleFocusDue() {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.Cancel(focusDueID)
	at := m.now().Add(time.Duration(m.Focus.Timer.Remaining) * time.Second)
	_ = m.Scheduler.Schedule(scheduler.Event{ID: focusDueID, Kind: scheduler.KindFocusDue, At: at})
}

// stopFocusTicks invalidates the in-flight tick chain and the due event.
func (m *Model) stopFocusTicks() {
	m.Focus.TickSeq++
	m.cancelFocusDue()
}

func (m *Model) cancelFocusDue() {
	if m.Scheduler != nil {
		m.Scheduler.Cancel(focusDueID)
	}
}

func (m Model) focusTaskLabel() string {
	if m.Focus.TaskName == "" {
		return "Miscellaneous"
	}
	return m.Focus.TaskName
}

func (m Model) renderFocusView() string {
	t := m.Focus.Timer
	taskView := m.focusTaskLabel()
	if m.Focus.EditingTask {
		taskView = m.taskInput.View()
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskView:     taskView,
		Mode:         string(t.Mode),
		Session:      string(t.Session),
		Timer:        t.Clock(),
		Running:      t.Running,
		ProgressView: m.progressBar.ViewAs(t.Progress()),
		Completed:    t.Completed,
	})
}

func (m Model) renderFocusLogPane() string {
	entries := make([]views.FocusLogEntry, 0, len(m.Report.TodayTasks))
	for _, task := range m.Report.TodayTasks {
		if task.PomodoroTime <= 0 {
			continue
		}
		entries = append(entries, views.FocusLogEntry{Text: task.Text, Seconds: task.PomodoroTime})
	}
	return views.RenderFocusLog(entries)
}

func focusTickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Seq: seq} })
}
