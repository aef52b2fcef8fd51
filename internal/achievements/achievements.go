// Package achievements evaluates the fixed achievement catalog against the
// tracker state. Unlock status is recomputed on every call and never stored.
package achievements

import (
	"sort"

	"github.com/sandeepkv93/streakd/internal/datekey"
	"github.com/sandeepkv93/streakd/internal/model"
)

// Definition is one catalog entry. Predicate must be a pure function of the
// snapshot.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Predicate   func(*Snapshot) bool
}

// Partition splits the catalog, each side in catalog order.
type Partition struct {
	Unlocked []Definition
	Locked   []Definition
}

// IsUnlocked reports whether id is in the unlocked partition.
func (p Partition) IsUnlocked(id string) bool {
	for _, d := range p.Unlocked {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Snapshot holds the aggregate figures every predicate reads. It is built
// once per evaluation.
type Snapshot struct {
	TotalCompleted      int
	FocusSeconds        int
	ScheduledDays       int
	PerfectDays         int
	MaxDayCompleted     int
	MaxDayFocusSeconds  int
	CompletedByPriority map[model.Priority]int
	CompletedByCategory map[model.Category]int
	EarlyBird           bool
	NightOwl            bool
	PerfectWeek         bool
	JournalEntries      int
	LongestJournalRun   int
	CustomThemes        int
	Streak              model.DailyStreak
}

// Catalog returns a copy of the ordered catalog.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// NewSnapshot derives the aggregate figures from state.
func NewSnapshot(state *model.State) *Snapshot {
	s := &Snapshot{
		CompletedByPriority: make(map[model.Priority]int),
		CompletedByCategory: make(map[model.Category]int),
	}
	if state == nil {
		return s
	}
	s.Streak = state.Streak
	s.CustomThemes = len(state.Themes)

	for _, key := range state.Tasks.Keys() {
		tasks := state.Tasks.Get(key)
		if len(tasks) == 0 {
			continue
		}
		s.ScheduledDays++
		if model.IsPerfectDay(tasks) {
			s.PerfectDays++
		}
		dayCompleted, dayFocus := 0, 0
		for _, t := range tasks {
			dayFocus += max(t.PomodoroTime, 0)
			if !t.Completed {
				continue
			}
			dayCompleted++
			s.CompletedByPriority[t.Priority]++
			category := t.Category
			if category == "" {
				category = model.CategoryPersonal
			}
			s.CompletedByCategory[category]++
			if model.ValidClock(t.Time) {
				if t.Time < "08:00" {
					s.EarlyBird = true
				}
				if t.Time > "22:00" {
					s.NightOwl = true
				}
			}
		}
		s.TotalCompleted += dayCompleted
		s.FocusSeconds += dayFocus
		s.MaxDayCompleted = max(s.MaxDayCompleted, dayCompleted)
		s.MaxDayFocusSeconds = max(s.MaxDayFocusSeconds, dayFocus)
	}
	s.PerfectWeek = hasPerfectWeek(state.Tasks)

	days := make([]int, 0, len(state.Journal))
	for key, text := range state.Journal {
		if text == "" {
			continue
		}
		s.JournalEntries++
		if t, err := datekey.Parse(key); err == nil {
			days = append(days, datekey.DayNumber(t))
		}
	}
	s.LongestJournalRun = longestRun(days)
	return s
}

// EvaluateAll partitions the catalog for state.
func EvaluateAll(state *model.State) Partition {
	return Evaluate(NewSnapshot(state), catalog)
}

// Evaluate partitions defs against a prepared snapshot.
func Evaluate(s *Snapshot, defs []Definition) Partition {
	p := Partition{
		Unlocked: make([]Definition, 0, len(defs)),
		Locked:   make([]Definition, 0, len(defs)),
	}
	for _, d := range defs {
		if d.Predicate != nil && d.Predicate(s) {
			p.Unlocked = append(p.Unlocked, d)
		} else {
			p.Locked = append(p.Locked, d)
		}
	}
	return p
}

// hasPerfectWeek tries every date with tasks as the start of a 7-day window
// of perfect days. Windows need not line up with calendar weeks.
func hasPerfectWeek(store model.TaskStore) bool {
	for _, key := range store.Keys() {
		if len(store.Get(key)) == 0 {
			continue
		}
		start, err := datekey.Parse(key)
		if err != nil {
			continue
		}
		perfect := true
		for i := 0; i < 7 && perfect; i++ {
			perfect = model.IsPerfectDay(store[datekey.Format(start.AddDate(0, 0, i))])
		}
		if perfect {
			return true
		}
	}
	return false
}

// longestRun returns the longest run of consecutive day numbers.
func longestRun(days []int) int {
	if len(days) == 0 {
		return 0
	}
	sort.Ints(days)
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		switch days[i] - days[i-1] {
		case 0:
		case 1:
			run++
			best = max(best, run)
		default:
			run = 1
		}
	}
	return best
}
