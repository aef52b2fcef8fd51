package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
	case "down", "j":
		if m.Today.Cursor < len(m.Report.TodayTasks)-1 {
			m.Today.Cursor++
		}
	case " ", "x":
		m.toggleSelected()
	case "a":
		m.Today.Adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.Status = StatusBar{Text: "add task: [HH:MM] text [!priority] [#category]"}
	case "p":
		m.copyPreviousDay()
	case "C":
		m.runMutation(func() (string, error) {
			n, err := m.Tracker.CloneTodayRoutine(m.ctx, m.now())
			return fmt.Sprintf("routine copied to %d days", n), err
		})
	case "U":
		m.runMutation(func() (string, error) {
			n, err := m.Tracker.UncloneMonth(m.ctx, m.now())
			return fmt.Sprintf("removed tasks from %d future days", n), err
		})
	}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Today.Adding = false
		m.addInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
	case "enter":
		raw := m.addInput.Value()
		m.Today.Adding = false
		m.addInput.Blur()
		task, err := parseQuickAdd(raw)
		if err != nil {
			m.setError(err)
			return m
		}
		m.runMutation(func() (string, error) {
			schedule := append(m.Report.TodayTasks, task)
			_, err := m.Tracker.SaveSchedule(m.ctx, m.Report.Today, schedule)
			return fmt.Sprintf("added: %s", task.Text), err
		})
	default:
		m.addInput = updateTextInput(m.addInput, msg)
	}
	return m
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok || m.Tracker == nil {
		return
	}
	m.runMutation(func() (string, error) {
		updated, err := m.Tracker.SetCompleted(m.ctx, m.Report.Today, task.ID, !task.Completed)
		if err != nil {
			return "", err
		}
		if updated.Completed {
			return "completed: " + updated.Text, nil
		}
		return "reopened: " + updated.Text, nil
	})
	if m.Report.StreakActive && len(m.Report.TodayTasks) > 0 && model.IsPerfectDay(m.Report.TodayTasks) {
		m.notify("Perfect day", fmt.Sprintf("streak is now %d days", m.Report.Streak.Count), "info")
	}
}

func (m *Model) copyPreviousDay() {
	if m.Tracker == nil {
		return
	}
	if len(m.Report.TodayTasks) > 0 {
		m.Status = StatusBar{Text: "today already has tasks", IsError: true}
		return
	}
	m.runMutation(func() (string, error) {
		copies, err := m.Tracker.ClonePreviousDay(m.Report.Today)
		if err != nil {
			return "", err
		}
		_, err = m.Tracker.SaveSchedule(m.ctx, m.Report.Today, copies)
		return fmt.Sprintf("copied %d tasks from yesterday", len(copies)), err
	})
}

// runMutation applies fn, refreshes the report and reports the outcome in
// the status bar.
func (m *Model) runMutation(fn func() (string, error)) {
	if m.Tracker == nil {
		return
	}
	text, err := fn()
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: text}
}

func (m Model) selectedTask() (model.TaskRecord, bool) {
	tasks := m.Report.TodayTasks
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(tasks) {
		return model.TaskRecord{}, false
	}
	return tasks[m.Today.Cursor], true
}

// parseQuickAdd reads "[HH:MM] text [!priority] [#category]".
func parseQuickAdd(raw string) (model.TaskRecord, error) {
	task := model.TaskRecord{Priority: model.PriorityMedium, Category: model.CategoryPersonal}
	var words []string
	for i, tok := range strings.Fields(raw) {
		switch {
		case i == 0 && model.ValidClock(tok):
			task.Time = tok
		case strings.HasPrefix(tok, "!") && model.Priority(strings.ToLower(tok[1:])).IsValid():
			task.Priority = model.Priority(strings.ToLower(tok[1:]))
		case strings.HasPrefix(tok, "#") && model.Category(strings.ToLower(tok[1:])).IsValid():
			task.Category = model.Category(strings.ToLower(tok[1:]))
		default:
			words = append(words, tok)
		}
	}
	task.Text = strings.Join(words, " ")
	if err := task.Validate(); err != nil {
		return model.TaskRecord{}, err
	}
	return task, nil
}

func (m Model) renderTodayView() string {
	items := make([]views.ChecklistItem, 0, len(m.Report.TodayTasks))
	for _, t := range m.Report.TodayTasks {
		items = append(items, views.ChecklistItem{
			Text:      t.Text,
			Time:      t.Time,
			Priority:  string(t.Priority),
			Category:  string(t.Category),
			Completed: t.Completed,
			Focus:     t.PomodoroTime,
		})
	}
	addView := ""
	if m.Today.Adding {
		addView = m.addInput.View()
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:         m.Report.Today,
		Items:        items,
		Cursor:       m.Today.Cursor,
		Productivity: m.Report.TodayProductivity,
		AddView:      addView,
	})
}

func (m Model) renderTaskDetailPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return "task:\n(no selection)"
	}
	h := m.Tracker.History(task.Text)
	return views.RenderTaskDetail(views.TaskDetailData{
		Text:           task.Text,
		Priority:       string(task.Priority),
		Category:       string(task.Category),
		Time:           task.Time,
		Focus:          task.PomodoroTime,
		Scheduled:      h.Scheduled,
		Completed:      h.Completed,
		CompletionRate: h.CompletionRate,
	})
}
