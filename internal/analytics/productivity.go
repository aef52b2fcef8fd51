// Package analytics derives productivity scores, rollups and focus-time
// series from the task store. Every function here is a pure pass over its
// input; nothing is cached between calls.
package analytics

import "github.com/sandeepkv93/streakd/internal/model"

// Productivity returns the rounded percentage of completed tasks, ignoring
// placeholder rows. An empty list scores 0.
func Productivity(tasks []model.TaskRecord) int {
	total, completed := Counts(tasks)
	return Percent(completed, total)
}

// Counts returns the number of non-blank tasks and how many are completed.
func Counts(tasks []model.TaskRecord) (total int, completed int) {
	for _, t := range tasks {
		if t.IsBlank() {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return total, completed
}

// Percent rounds 100*part/whole half-up using integer arithmetic.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// FocusSeconds sums the logged focus time of the non-blank tasks.
func FocusSeconds(tasks []model.TaskRecord) int {
	sum := 0
	for _, t := range tasks {
		if t.IsBlank() || t.PomodoroTime <= 0 {
			continue
		}
		sum += t.PomodoroTime
	}
	return sum
}
