package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/streakd/internal/analytics"
	"github.com/sandeepkv93/streakd/internal/output"
	"github.com/sandeepkv93/streakd/internal/views"
)

func (m Model) handleAnalysisKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "w":
		m.Analysis.Tab = TabWeek
	case "m":
		m.Analysis.Tab = TabMonth
	case "y":
		m.Analysis.Tab = TabYear
	case "t":
		m.Analysis.Tab = TabTree
	case "h":
		m.Analysis.Tab = TabHistory
	case "[":
		m.shiftMonth(-1)
	case "]":
		m.shiftMonth(1)
	case "up", "k":
		if m.Analysis.HistoryIndex > 0 {
			m.Analysis.HistoryIndex--
		}
	case "down", "j":
		if m.Analysis.HistoryIndex < len(m.Report.TaskNames)-1 {
			m.Analysis.HistoryIndex++
		}
	}
	return m
}

func (m *Model) shiftMonth(delta int) {
	base := m.Analysis.Month
	if base.IsZero() {
		base = m.now()
	}
	first := base.AddDate(0, 0, 1-base.Day())
	m.Analysis.Month = first.AddDate(0, delta, 0)
	m.Analysis.Tab = TabMonth
	m.refresh()
}

func (m Model) renderAnalysisView() string {
	data := views.AnalysisPanelData{Tab: string(m.Analysis.Tab)}
	switch m.Analysis.Tab {
	case TabWeek:
		data.Title = "Last 7 days"
		data.Rows = dayRows(m.Report.Week)
	case TabMonth:
		data.Title = fmt.Sprintf("%s %d", m.Report.Month.Month, m.Report.Month.Year)
		data.Rows = dayRows(m.Report.Month.Days)
	case TabYear:
		data.Title = fmt.Sprintf("%d by month", m.now().Year())
		for _, p := range m.Report.Year {
			data.Rows = append(data.Rows, views.SeriesRow{
				Label: p.Label, Scheduled: p.Scheduled, Completed: p.Completed,
				Productivity: p.Productivity, Focus: p.FocusSeconds,
			})
		}
	case TabTree:
		data.Title = "History tree"
		data.Tree = treeLines(m.Report.Tree)
	case TabHistory:
		data.Title = "Task history"
		data.Names = m.Report.TaskNames
		data.NameCursor = m.Analysis.HistoryIndex
		if m.Analysis.HistoryIndex < len(m.Report.TaskNames) && m.Tracker != nil {
			h := m.Tracker.History(m.Report.TaskNames[m.Analysis.HistoryIndex])
			data.History = historyRows(h)
			data.Footer = fmt.Sprintf("%d/%d done (%d%%), %s focused",
				h.Completed, h.Scheduled, h.CompletionRate, output.FormatSeconds(h.FocusSeconds))
		}
	}
	return views.RenderAnalysisPanel(data)
}

func (m Model) renderCategoryPane() string {
	ct := m.Report.CategoryTime
	if m.Analysis.Tab == TabMonth {
		ct = m.Report.Month.CategoryTime
	}
	rows := make([]views.CategoryRow, 0, len(analytics.Buckets))
	total := ct.Total()
	for _, b := range analytics.Buckets {
		share := 0.0
		if total > 0 {
			share = float64(ct[b]) / float64(total)
		}
		rows = append(rows, views.CategoryRow{Name: string(b), Seconds: ct[b], Share: share})
	}
	return views.RenderCategoryPanel(rows, total)
}

func dayRows(points []analytics.DayPoint) []views.SeriesRow {
	out := make([]views.SeriesRow, 0, len(points))
	for _, p := range points {
		out = append(out, views.SeriesRow{
			Label: p.Label, Scheduled: p.Scheduled, Completed: p.Completed,
			Productivity: p.Productivity, Focus: p.FocusSeconds,
		})
	}
	return out
}

func treeLines(tree analytics.Tree) []views.TreeLine {
	var out []views.TreeLine
	for _, y := range tree.Years {
		out = append(out, views.TreeLine{Depth: 0, Label: fmt.Sprint(y.Year), Productivity: y.Productivity, Tasks: len(y.Tasks)})
		for _, mo := range y.Months {
			out = append(out, views.TreeLine{Depth: 1, Label: mo.Month.String(), Productivity: mo.Productivity, Tasks: len(mo.Tasks)})
			for _, w := range mo.Weeks {
				out = append(out, views.TreeLine{Depth: 2, Label: fmt.Sprintf("Week %d", w.Week), Productivity: w.Productivity, Tasks: len(w.Tasks)})
				for _, d := range w.Days {
					out = append(out, views.TreeLine{Depth: 3, Label: d.Key, Productivity: d.Productivity, Tasks: len(d.Tasks)})
				}
			}
		}
	}
	return out
}

func historyRows(h analytics.History) []views.HistoryRow {
	out := make([]views.HistoryRow, 0, len(h.Instances))
	for _, inst := range h.Instances {
		out = append(out, views.HistoryRow{
			Date:      inst.Key,
			TimeOfDay: string(inst.TimeOfDay),
			Completed: inst.Task.Completed,
			Focus:     inst.Task.PomodoroTime,
		})
	}
	return out
}
