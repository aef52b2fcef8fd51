package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/streakd/internal/activity"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

// futureDaysOf returns the keys of the days in month that come after today.
// For the current month that is tomorrow onwards, for a later month every
// day, for an earlier month none.
func futureDaysOf(month, now time.Time) []string {
	year, mon := month.Year(), month.Month()
	first := 1
	switch {
	case year == now.Year() && mon == now.Month():
		first = now.Day() + 1
	case year < now.Year() || (year == now.Year() && mon < now.Month()):
		return nil
	}
	days := datekey.DaysIn(year, mon)
	out := make([]string, 0, max(days-first+1, 0))
	for d := first; d <= days; d++ {
		out = append(out, datekey.Format(time.Date(year, mon, d, 0, 0, 0, 0, now.Location())))
	}
	return out
}

// CloneTodayRoutine copies today's tasks onto every future day of month,
// overwriting what is there. Copies are open, have fresh IDs and no focus
// time. It returns the number of days written.
func (t *Tracker) CloneTodayRoutine(ctx context.Context, month time.Time) (int, error) {
	var written int
	err := t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		today := s.Tasks.Get(datekey.Today(now))
		if len(today) == 0 {
			return nil, fmt.Errorf("%w: nothing scheduled today", ErrNoTasks)
		}
		keys := futureDaysOf(month, now)
		for _, key := range keys {
			s.Tasks[key] = t.freshCopies(today)
		}
		written = len(keys)
		return &activity.Entry{Action: "clone_routine", Date: datekey.Today(now), Detail: fmt.Sprintf("%d days", written)}, nil
	})
	return written, err
}

// UncloneMonth deletes the task buckets of every future day of month.
func (t *Tracker) UncloneMonth(ctx context.Context, month time.Time) (int, error) {
	var removed int
	err := t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		for _, key := range futureDaysOf(month, now) {
			if _, ok := s.Tasks[key]; ok {
				delete(s.Tasks, key)
				removed++
			}
		}
		return &activity.Entry{Action: "unclone_month", Detail: fmt.Sprintf("%d days", removed)}, nil
	})
	return removed, err
}

// ClonePreviousDay returns open copies of the tasks of the day before key,
// ready to be edited and passed to SaveSchedule. Nothing is stored.
func (t *Tracker) ClonePreviousDay(key string) ([]model.TaskRecord, error) {
	prev, err := datekey.Yesterday(key)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	tasks := t.state.Tasks.Get(prev)
	t.mu.Unlock()
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: nothing scheduled on %s", ErrNoTasks, prev)
	}
	return t.freshCopies(tasks), nil
}

func (t *Tracker) freshCopies(tasks []model.TaskRecord) []model.TaskRecord {
	out := make([]model.TaskRecord, 0, len(tasks))
	for _, task := range tasks {
		task.ID = t.newID()
		task.Completed = false
		task.PomodoroTime = 0
		out = append(out, task)
	}
	return out
}
