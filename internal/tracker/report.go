package tracker

import (
	"time"

	"github.com/sandeepkv93/streakd/internal/achievements"
	"github.com/sandeepkv93/streakd/internal/analytics"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/streak"
)

// Report is everything the views render, recomputed from the current state
// on every call.
type Report struct {
	Today             string
	TodayTasks        []model.TaskRecord
	TodayProductivity int
	Streak            model.DailyStreak
	StreakActive      bool
	Tree              analytics.Tree
	Achievements      achievements.Partition
	Week              []analytics.DayPoint
	Month             analytics.MonthSeries
	Year              []analytics.MonthPoint
	CategoryTime      analytics.CategoryTime
	TaskNames         []string
	Journal           map[string]string
	Theme             model.Theme
}

// Report builds the views' data. viewMonth selects the month series; the
// zero time means the current month.
func (t *Tracker) Report(viewMonth time.Time) Report {
	state := t.State()
	return BuildReport(&state, t.now(), viewMonth, t.trailingDays)
}

func BuildReport(state *model.State, now, viewMonth time.Time, trailingDays int) Report {
	if viewMonth.IsZero() {
		viewMonth = now
	}
	today := datekey.Today(now)
	todayTasks := Checklist(state.Tasks.Get(today))
	return Report{
		Today:             today,
		TodayTasks:        todayTasks,
		TodayProductivity: analytics.Productivity(todayTasks),
		Streak:            state.Streak,
		StreakActive:      streak.Active(state.Streak, now),
		Tree:              analytics.BuildTree(state.Tasks),
		Achievements:      achievements.EvaluateAll(state),
		Week:              analytics.TrailingDays(state.Tasks, now, trailingDays),
		Month:             analytics.Month(state.Tasks, viewMonth.Year(), viewMonth.Month()),
		Year:              analytics.Year(state.Tasks, now.Year()),
		CategoryTime:      analytics.TimeByCategory(state.Tasks.All()),
		TaskNames:         analytics.TaskNames(state.Tasks),
		Journal:           state.Journal,
		Theme:             model.ResolveTheme(state.SelectedTheme, state.Themes),
	}
}

// History returns the cross-store history of one task name.
func (t *Tracker) History(name string) analytics.History {
	state := t.State()
	return analytics.TaskHistory(state.Tasks, name)
}
