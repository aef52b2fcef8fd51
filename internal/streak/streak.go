// Package streak maintains the perfect-day streak. The streak only moves
// forward through completion events; it is ended by elapsed time alone.
package streak

import (
	"time"

	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

// RecordCompletion advances the streak if key is a perfect day. An imperfect
// day leaves the streak as it is, even if the day was perfect before. It
// reports whether the streak changed.
func RecordCompletion(state *model.State, key string) bool {
	if state == nil || !model.IsPerfectDay(state.Tasks[key]) {
		return false
	}
	last := state.Streak.LastCompletionDate
	if last == key {
		return false
	}
	yesterday, err := datekey.Yesterday(key)
	if err != nil {
		return false
	}
	if last == yesterday {
		state.Streak.Count++
	} else {
		state.Streak.Count = 1
	}
	state.Streak.LastCompletionDate = key
	return true
}

// CheckStaleness resets the streak when its last perfect day is earlier than
// yesterday relative to now. An unreadable last date also resets it.
func CheckStaleness(state *model.State, now time.Time) bool {
	if state == nil || state.Streak.LastCompletionDate == "" {
		return false
	}
	last, err := datekey.Parse(state.Streak.LastCompletionDate)
	if err == nil {
		yesterday := datekey.Midnight(now).AddDate(0, 0, -1)
		if datekey.DayNumber(last) >= datekey.DayNumber(yesterday) {
			return false
		}
	}
	state.Streak = model.DailyStreak{}
	return true
}

// Active reports whether the streak still counts as of now: its last perfect
// day is today or yesterday.
func Active(s model.DailyStreak, now time.Time) bool {
	if s.Count == 0 || s.LastCompletionDate == "" {
		return false
	}
	last, err := datekey.Parse(s.LastCompletionDate)
	if err != nil {
		return false
	}
	return datekey.DayNumber(datekey.Midnight(now))-datekey.DayNumber(last) <= 1
}
