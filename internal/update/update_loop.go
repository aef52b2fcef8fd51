package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/scheduler"
	"github.com/sandeepkv93/streakd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler == nil {
		return nil
	}
	_ = m.Scheduler.Schedule(scheduler.Rollover(m.now()))
	return waitForSchedulerCmd(m.Scheduler.C())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case SchedulerEventMsg:
		m.onSchedulerEvent(typed.Event)
		if m.Scheduler != nil {
			return m, waitForSchedulerCmd(m.Scheduler.C())
		}
		return m, nil
	case ReloadMsg:
		if m.Tracker != nil {
			if err := m.Tracker.Reload(m.ctx); err != nil {
				m.setError(err)
				return m, nil
			}
			m.refresh()
			m.Status = StatusBar{Text: "reloaded external changes"}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch {
	case m.Palette.Active:
		return m.handlePaletteKey(msg), nil
	case m.Today.Adding:
		return m.handleAddKey(msg), nil
	case m.Focus.EditingTask:
		return m.handleTaskInputKey(msg), nil
	case m.Journal.Editing:
		return m.handleJournalEditKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Today:
		m.CurrentView = ViewToday
		return m, nil
	case m.Keys.Focus:
		m.CurrentView = ViewFocus
		return m, nil
	case m.Keys.Analysis:
		m.CurrentView = ViewAnalysis
		return m, nil
	case m.Keys.Achievements:
		m.CurrentView = ViewAchievements
		return m, nil
	case m.Keys.Journal:
		m.CurrentView = ViewJournal
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		m.flushFocus()
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewToday:
		return m.handleTodayKey(msg), nil
	case ViewFocus:
		return m.handleFocusKey(msg)
	case ViewAnalysis:
		return m.handleAnalysisKey(msg), nil
	case ViewJournal:
		return m.handleJournalKey(msg), nil
	}
	return m, nil
}

func (m *Model) onSchedulerEvent(ev scheduler.Event) {
	switch ev.Kind {
	case scheduler.KindRollover:
		if m.Tracker != nil {
			if err := m.Tracker.CheckStaleness(m.ctx); err != nil {
				m.setError(err)
			}
		}
		m.refresh()
		m.Status = StatusBar{Text: "new day: " + m.Report.Today}
		if m.Scheduler != nil {
			_ = m.Scheduler.Schedule(scheduler.Rollover(m.now()))
		}
	case scheduler.KindFocusDue:
		m.finishOverdueSession()
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderTaskDetailPane()
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderFocusLogPane()
	case ViewAnalysis:
		leftPane = m.renderAnalysisView()
		rightPane = m.renderCategoryPane()
	case ViewAchievements:
		leftPane = m.renderAchievementsView()
		rightPane = m.renderStreakPane()
	case ViewJournal:
		leftPane = m.renderJournalView()
		rightPane = m.renderAffirmationPane()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))

	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("streakd | view: %s | %s | streak: %d | today: %d%%",
			m.CurrentView, m.Report.Today, m.Report.Streak.Count, m.Report.TodayProductivity),
		Accent:       m.Report.Theme.Primary(),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: strings.TrimSpace(m.renderNotificationsView()),
		Footer: fmt.Sprintf("keys: %s today | %s focus | %s analysis | %s achievements | %s journal | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Focus, m.Keys.Analysis, m.Keys.Achievements, m.Keys.Journal, m.Keys.Help, m.Keys.Quit),
	})
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewFocus, ViewAnalysis, ViewAchievements, ViewJournal:
		return true
	default:
		return false
	}
}

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}
