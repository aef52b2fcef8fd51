package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/streakd/internal/activity"
	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
	"github.com/sandeepkv93/streakd/internal/streak"
)

type Range string

const (
	RangeToday      Range = "today"
	RangePast7Days  Range = "past_7_days"
	RangePast30Days Range = "past_30_days"
	RangeThisMonth  Range = "this_month"
	RangeThisYear   Range = "this_year"
	RangeAll        Range = "all"
)

var ErrInvalidRange = fmt.Errorf("tracker: invalid clear range (want one of %s)", strings.Join(rangeNames(), ", "))

var ranges = []Range{RangeToday, RangePast7Days, RangePast30Days, RangeThisMonth, RangeThisYear, RangeAll}

func rangeNames() []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, string(r))
	}
	return out
}

func (r Range) IsValid() bool {
	for _, v := range ranges {
		if r == v {
			return true
		}
	}
	return false
}

// Matches reports whether key falls inside r as seen from now.
func (r Range) Matches(key string, now time.Time) bool {
	switch r {
	case RangeAll:
		return true
	case RangeThisYear:
		return strings.HasPrefix(key, datekey.Today(now)[:5])
	case RangeThisMonth:
		return strings.HasPrefix(key, datekey.Today(now)[:8])
	case RangeToday:
		return key == datekey.Today(now)
	case RangePast7Days, RangePast30Days:
		days := 7
		if r == RangePast30Days {
			days = 30
		}
		date, err := datekey.Parse(key)
		if err != nil {
			return false
		}
		age := datekey.DayNumber(now) - datekey.DayNumber(date)
		return age >= 0 && age < days
	}
	return false
}

// ClearResult counts what a clear removed.
type ClearResult struct {
	Range       Range `json:"range"`
	TaskDays    int   `json:"task_days"`
	JournalDays int   `json:"journal_days"`
	StreakReset bool  `json:"streak_reset"`
}

// Clear deletes the task and journal buckets inside r. RangeAll also resets
// the streak. The streak is re-checked for staleness afterwards.
func (t *Tracker) Clear(ctx context.Context, r Range) (ClearResult, error) {
	if !r.IsValid() {
		return ClearResult{}, fmt.Errorf("%w: %q", ErrInvalidRange, r)
	}
	res := ClearResult{Range: r}
	err := t.mutate(ctx, func(now time.Time, s *model.State) (*activity.Entry, error) {
		for key := range s.Tasks {
			if r.Matches(key, now) {
				delete(s.Tasks, key)
				res.TaskDays++
			}
		}
		for key := range s.Journal {
			if r.Matches(key, now) {
				delete(s.Journal, key)
				res.JournalDays++
			}
		}
		if r == RangeAll {
			res.StreakReset = s.Streak != (model.DailyStreak{})
			s.Streak = model.DailyStreak{}
		}
		if streak.CheckStaleness(s, now) {
			res.StreakReset = true
		}
		return &activity.Entry{Action: "clear", Detail: fmt.Sprintf("%s: %d task days, %d journal days", r, res.TaskDays, res.JournalDays)}, nil
	})
	return res, err
}
