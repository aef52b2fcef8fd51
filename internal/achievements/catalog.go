package achievements

import (
	"strconv"

	"github.com/sandeepkv93/streakd/internal/model"
)

const hour = 3600

var catalog = []Definition{
	// Getting started
	{ID: "first-task", Title: "First Step", Description: "Complete your very first task.", Icon: "👟",
		Predicate: func(s *Snapshot) bool { return s.TotalCompleted > 0 }},
	{ID: "first-journal", Title: "Dear Diary", Description: "Write your first journal entry.", Icon: "✍️",
		Predicate: func(s *Snapshot) bool { return s.JournalEntries > 0 }},
	{ID: "first-pomo", Title: "Time Boxer", Description: "Log your first Pomodoro session.", Icon: "🍅",
		Predicate: func(s *Snapshot) bool { return s.FocusSeconds > 0 }},
	{ID: "first-theme", Title: "Decorator", Description: "Create your first custom theme.", Icon: "🎨",
		Predicate: func(s *Snapshot) bool { return s.CustomThemes > 0 }},
	{ID: "planner", Title: "The Planner", Description: "Schedule tasks for 7 different days.", Icon: "🗺️",
		Predicate: func(s *Snapshot) bool { return s.ScheduledDays >= 7 }},

	// Task completion
	completedAtLeast("ten-tasks", "Task Rabbit", "Complete 10 tasks in total.", "🐰", 10),
	completedAtLeast("fifty-tasks", "Task Master", "Complete 50 tasks in total.", "👑", 50),
	completedAtLeast("hundred-tasks", "Centurion", "Complete 100 tasks in total.", "🛡️", 100),
	completedAtLeast("five-hundred-tasks", "Task Hero", "Complete 500 tasks in total.", "🦸", 500),
	completedAtLeast("thousand-tasks", "Task Legend", "Complete 1,000 tasks in total.", "✨", 1000),

	// Streaks and consistency
	{ID: "perfect-day", Title: "Perfect Day", Description: "Complete all tasks in a single day.", Icon: "⭐",
		Predicate: func(s *Snapshot) bool { return s.PerfectDays > 0 }},
	streakAtLeast("streak-3", "On a Roll", "🔥", 3),
	streakAtLeast("streak-7", "Unstoppable", "🚀", 7),
	streakAtLeast("streak-14", "Fortnight of Focus", "💫", 14),
	streakAtLeast("streak-30", "Habit Hero", "🏆", 30),
	streakAtLeast("streak-100", "True Dedication", "💎", 100),
	{ID: "journal-week", Title: "Consistent Chronicler", Description: "Write a journal entry for 7 days in a row.", Icon: "📜",
		Predicate: func(s *Snapshot) bool { return s.LongestJournalRun >= 7 }},

	// Focus
	focusAtLeast("focused-hour", "Hour of Power", "Log over 1 hour of focused work.", "🧠", 1),
	focusAtLeast("focused-ten", "Deep Work", "Log over 10 hours of focused work.", "🧘", 10),
	focusAtLeast("focused-fifty", "Flow State", "Log over 50 hours of focused work.", "🌊", 50),
	focusAtLeast("focused-hundred", "Time Bender", "Log over 100 hours of focused work.", "⏳", 100),
	{ID: "marathon", Title: "Marathon Session", Description: "Log over 4 hours of focus time in a single day.", Icon: "🏃",
		Predicate: func(s *Snapshot) bool { return s.MaxDayFocusSeconds >= 4*hour }},

	// Advanced
	{ID: "high-priority", Title: "Priority Punisher", Description: "Complete 25 high-priority tasks.", Icon: "🎯",
		Predicate: func(s *Snapshot) bool { return s.CompletedByPriority[model.PriorityHigh] >= 25 }},
	{ID: "perfect-week", Title: "Perfect Week", Description: "Achieve a 100% completion rate for an entire week.", Icon: "🗓️",
		Predicate: func(s *Snapshot) bool { return s.PerfectWeek }},
	{ID: "category-master", Title: "Category Specialist", Description: "Complete 50 tasks in a single category.", Icon: "🎓",
		Predicate: func(s *Snapshot) bool {
			for _, n := range s.CompletedByCategory {
				if n >= 50 {
					return true
				}
			}
			return false
		}},
	{ID: "diverse-designer", Title: "Diverse Designer", Description: "Create 3 or more custom themes.", Icon: "🌈",
		Predicate: func(s *Snapshot) bool { return s.CustomThemes >= 3 }},
	{ID: "early-bird", Title: "Early Bird", Description: "Complete a task before 8 AM.", Icon: "☀️",
		Predicate: func(s *Snapshot) bool { return s.EarlyBird }},
	{ID: "night-owl", Title: "Night Owl", Description: "Complete a task after 10 PM.", Icon: "🌙",
		Predicate: func(s *Snapshot) bool { return s.NightOwl }},
	{ID: "full-day", Title: "Busy Bee", Description: "Complete 10 or more tasks in a single day.", Icon: "🐝",
		Predicate: func(s *Snapshot) bool { return s.MaxDayCompleted >= 10 }},
}

func completedAtLeast(id, title, desc, icon string, n int) Definition {
	return Definition{ID: id, Title: title, Description: desc, Icon: icon,
		Predicate: func(s *Snapshot) bool { return s.TotalCompleted >= n }}
}

func streakAtLeast(id, title, icon string, days int) Definition {
	return Definition{ID: id, Title: title, Icon: icon,
		Description: "Maintain a " + strconv.Itoa(days) + "-day perfect day streak.",
		Predicate:   func(s *Snapshot) bool { return s.Streak.Count >= days }}
}

func focusAtLeast(id, title, desc, icon string, hours int) Definition {
	return Definition{ID: id, Title: title, Description: desc, Icon: icon,
		Predicate: func(s *Snapshot) bool { return s.FocusSeconds >= hours*hour }}
}
