package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/commands"
	"github.com/sandeepkv93/streakd/internal/focus"
	"github.com/sandeepkv93/streakd/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput = updateTextInput(m.commandInput, msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if m.Tracker == nil {
		m.Status = StatusBar{Text: "no tracker attached", IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Done: func(a commands.MarkArgs) (commands.Result, error) {
			return m.markByIndex(a.Index, true)
		},
		Undo: func(a commands.MarkArgs) (commands.Result, error) {
			return m.markByIndex(a.Index, false)
		},
		Log: func(a commands.LogArgs) (commands.Result, error) {
			task, err := m.Tracker.LogFocus(m.ctx, a.Task, a.Minutes*60)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("logged %dm on %s", a.Minutes, task.Text)}, nil
		},
		Journal: func(a commands.JournalArgs) (commands.Result, error) {
			entry := m.Report.Journal[m.Report.Today]
			if entry != "" {
				entry += "\n\n"
			}
			if err := m.Tracker.SaveJournal(m.ctx, m.Report.Today, entry+a.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "journal updated"}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.Subject {
			case commands.SubjectAchievements:
				m.CurrentView = ViewAchievements
			case commands.SubjectTask:
				idx := indexOfName(m.Report.TaskNames, a.Task)
				if idx < 0 {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task named %q", a.Task)}
				}
				m.CurrentView = ViewAnalysis
				m.Analysis.Tab = TabHistory
				m.Analysis.HistoryIndex = idx
			default:
				m.CurrentView = ViewAnalysis
				m.Analysis.Tab = AnalysisTab(a.Subject)
			}
			return commands.Result{Message: "show " + string(a.Subject)}, nil
		},
		Clear: func(a commands.ClearArgs) (commands.Result, error) {
			out, err := m.Tracker.Clear(m.ctx, tracker.Range(a.Range))
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("cleared %s: %d task days, %d journal days", out.Range, out.TaskDays, out.JournalDays)}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			if err := m.Tracker.SelectTheme(m.ctx, a.Key); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme: " + a.Key}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			if err := m.switchMode(focus.Mode(a.Mode)); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: "mode: " + a.Mode}, nil
		},
	})
	m.refresh()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	return m
}

func (m *Model) markByIndex(index int, done bool) (commands.Result, error) {
	tasks := m.Report.TodayTasks
	if index < 1 || index > len(tasks) {
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("task %d out of range (today has %d)", index, len(tasks)),
		}
	}
	task, err := m.Tracker.SetCompleted(m.ctx, m.Report.Today, tasks[index-1].ID, done)
	if err != nil {
		return commands.Result{}, err
	}
	verb := "completed"
	if !done {
		verb = "reopened"
	}
	return commands.Result{Message: fmt.Sprintf("%s: %s", verb, task.Text)}, nil
}

func indexOfName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
